package memberpolicy_test

import (
	"testing"

	"github.com/campus-council/clubs/internal/app/policy/memberpolicy"
	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/campus-council/clubs/internal/domain/models"
)

var (
	ccUser     = identity.Identity{UID: "cc", Role: identity.RoleCC}
	chessClub  = identity.Identity{UID: "chess", Role: identity.RoleClub}
	debateClub = identity.Identity{UID: "debate", Role: identity.RoleClub}
	student    = identity.Identity{UID: "alice", Role: identity.RolePublic}
)

func TestCanCreate(t *testing.T) {
	cases := []struct {
		name     string
		id       identity.Identity
		present  bool
		cid      string
		wantKind apperr.Kind
	}{
		{"club for itself", chessClub, true, "chess", apperr.KindUnknown},
		{"club for another club", chessClub, true, "debate", apperr.KindUnauthorized},
		{"cc cannot create", ccUser, true, "chess", apperr.KindUnauthorized},
		{"student cannot create", student, true, "chess", apperr.KindUnauthorized},
		{"anonymous", identity.Identity{}, false, "chess", apperr.KindUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := memberpolicy.CanCreate(tc.id, tc.present, tc.cid)
			if got := apperr.KindOf(err); got != tc.wantKind {
				t.Errorf("kind: got %v, want %v (err=%v)", got, tc.wantKind, err)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	if err := memberpolicy.CanDelete(chessClub, true, "chess"); err != nil {
		t.Errorf("owning club should delete: %v", err)
	}
	if err := memberpolicy.CanDelete(ccUser, true, "chess"); err != nil {
		t.Errorf("cc should delete: %v", err)
	}
	if err := memberpolicy.CanDelete(debateClub, true, "chess"); err == nil {
		t.Error("foreign club should not delete")
	}
	if err := memberpolicy.CanDelete(student, true, "chess"); err == nil {
		t.Error("student should not delete")
	}
}

func TestCanApprove_CCOnly(t *testing.T) {
	if err := memberpolicy.CanApprove(ccUser, true); err != nil {
		t.Errorf("cc should approve: %v", err)
	}
	if err := memberpolicy.CanApprove(chessClub, true); err == nil {
		t.Error("club should not approve")
	}
	if err := memberpolicy.CanApprove(identity.Identity{}, false); apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Errorf("anonymous should be unauthenticated, got %v", err)
	}
}

func TestScopeFor(t *testing.T) {
	if got := memberpolicy.ScopeFor(ccUser, true, "chess"); got != memberpolicy.ScopeAdmin {
		t.Errorf("cc scope: got %v, want ScopeAdmin", got)
	}
	if got := memberpolicy.ScopeFor(chessClub, true, "chess"); got != memberpolicy.ScopeClub {
		t.Errorf("own club scope: got %v, want ScopeClub", got)
	}
	if got := memberpolicy.ScopeFor(chessClub, true, "debate"); got != memberpolicy.ScopePublic {
		t.Errorf("foreign club scope: got %v, want ScopePublic", got)
	}
	if got := memberpolicy.ScopeFor(identity.Identity{}, false, "chess"); got != memberpolicy.ScopePublic {
		t.Errorf("anonymous scope: got %v, want ScopePublic", got)
	}
}

// TestVisible_ScopeOrdering verifies that each scope sees a superset of the
// scope below it on the same membership.
func TestVisible_ScopeOrdering(t *testing.T) {
	m := models.Member{
		CID: "chess", UID: "alice",
		Roles: []models.Role{
			{RID: "1", Name: "Member", StartYear: 2022, Approved: true},
			{RID: "2", Name: "Captain", StartYear: 2023},                // pending
			{RID: "3", Name: "Coach", StartYear: 2021, Deleted: true},   // deleted
			{RID: "4", Name: "Judge", StartYear: 2020, Rejected: true},  // rejected
		},
	}

	public := memberpolicy.Visible(m, student, true)
	club := memberpolicy.Visible(m, chessClub, true)
	admin := memberpolicy.Visible(m, ccUser, true)

	if len(public.Roles) != 1 || public.Roles[0].RID != "1" {
		t.Errorf("public sees approved only: got %d roles", len(public.Roles))
	}
	// Club and CC both see pending and rejected, never deleted.
	if len(club.Roles) != 3 {
		t.Errorf("club roles: got %d, want 3", len(club.Roles))
	}
	if len(admin.Roles) != 3 {
		t.Errorf("admin roles: got %d, want 3", len(admin.Roles))
	}

	for _, set := range [][]models.Role{public.Roles, club.Roles, admin.Roles} {
		for _, r := range set {
			if r.Deleted {
				t.Errorf("deleted role %s visible", r.RID)
			}
		}
	}

	// Superset check: everything public sees, club sees; everything club
	// sees, admin sees.
	contains := func(set []models.Role, rid string) bool {
		for _, r := range set {
			if r.RID == rid {
				return true
			}
		}
		return false
	}
	for _, r := range public.Roles {
		if !contains(club.Roles, r.RID) {
			t.Errorf("club missing public-visible role %s", r.RID)
		}
	}
	for _, r := range club.Roles {
		if !contains(admin.Roles, r.RID) {
			t.Errorf("admin missing club-visible role %s", r.RID)
		}
	}
}

func TestVisible_ForeignClubGetsPublicView(t *testing.T) {
	m := models.Member{
		CID: "chess", UID: "alice",
		Roles: []models.Role{
			{RID: "1", Name: "Member", StartYear: 2022, Approved: true},
			{RID: "2", Name: "Captain", StartYear: 2023},
		},
	}
	got := memberpolicy.Visible(m, debateClub, true)
	if len(got.Roles) != 1 {
		t.Errorf("foreign club roles: got %d, want 1", len(got.Roles))
	}
}
