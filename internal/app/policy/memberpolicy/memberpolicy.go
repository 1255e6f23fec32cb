// Package memberpolicy holds the authorization rules for membership
// mutations and the viewer-dependent visibility of role data.
//
// Authorization rules:
//   - A club may grant and edit roles only for its own members
//     (requester.UID == cid and requester role "club").
//   - Soft-deleting a role is allowed to the owning club or to CC.
//   - Approving a role is CC-only.
//   - The pending queue is CC-only.
//
// Visibility (per membership, most to least privileged):
//   - CC sees every non-deleted role, across all clubs.
//   - The owning club sees its own non-deleted roles, approved or not.
//   - Everyone else sees only approved, non-deleted roles.
package memberpolicy

import (
	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/campus-council/clubs/internal/domain/models"
)

// ViewScope is the role-visibility level a requester has over one club's
// memberships.
type ViewScope int

const (
	// ScopePublic sees approved, non-deleted roles only.
	ScopePublic ViewScope = iota
	// ScopeClub is the owning club: all non-deleted roles.
	ScopeClub
	// ScopeAdmin is CC: all non-deleted roles, any club.
	ScopeAdmin
)

func requireIdentity(id identity.Identity, present bool) error {
	if !present {
		return apperr.Unauthenticated("not authenticated")
	}
	return nil
}

// CanCreate reports whether the requester may create a membership under the
// given club. Only the club's own service account may.
func CanCreate(id identity.Identity, present bool, cid string) error {
	if err := requireIdentity(id, present); err != nil {
		return err
	}
	if id.EffectiveRole() != identity.RoleClub || id.UID != cid {
		return apperr.Unauthorized("only the club may manage its members")
	}
	return nil
}

// CanEdit has the same rule as CanCreate: self-service only.
func CanEdit(id identity.Identity, present bool, cid string) error {
	return CanCreate(id, present, cid)
}

// CanDelete allows the owning club or CC to soft-delete a role.
func CanDelete(id identity.Identity, present bool, cid string) error {
	if err := requireIdentity(id, present); err != nil {
		return err
	}
	switch id.EffectiveRole() {
	case identity.RoleCC:
		return nil
	case identity.RoleClub:
		if id.UID == cid {
			return nil
		}
	}
	return apperr.Unauthorized("only the club or CC may remove member roles")
}

// CanApprove is CC-exclusive.
func CanApprove(id identity.Identity, present bool) error {
	if err := requireIdentity(id, present); err != nil {
		return err
	}
	if id.EffectiveRole() != identity.RoleCC {
		return apperr.Unauthorized("only CC may approve member roles")
	}
	return nil
}

// CanViewPending is CC-exclusive.
func CanViewPending(id identity.Identity, present bool) error {
	return CanApprove(id, present)
}

// ScopeFor resolves the requester's visibility scope over the given club.
func ScopeFor(id identity.Identity, present bool, cid string) ViewScope {
	if !present {
		return ScopePublic
	}
	switch id.EffectiveRole() {
	case identity.RoleCC:
		return ScopeAdmin
	case identity.RoleClub:
		if id.UID == cid {
			return ScopeClub
		}
	}
	return ScopePublic
}

// roleVisible applies the visibility table to one role.
func roleVisible(r models.Role, scope ViewScope) bool {
	if r.Deleted {
		return false
	}
	if scope == ScopePublic {
		return r.Approved
	}
	return true
}

// Visible returns a copy of the membership with only the roles the
// requester may see. A membership whose visible role set is empty should be
// omitted from list results entirely; callers check len(Roles).
func Visible(m models.Member, id identity.Identity, present bool) models.Member {
	scope := ScopeFor(id, present, m.CID)
	kept := make([]models.Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		if roleVisible(r, scope) {
			kept = append(kept, r)
		}
	}
	m.Roles = kept
	return m
}
