package models_test

import (
	"strings"
	"testing"

	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/domain/models"
)

func intPtr(y int) *int { return &y }

func TestRoleValidate_AcceptsMinimalRole(t *testing.T) {
	r := models.Role{Name: "Coordinator", StartYear: 2023}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestRoleValidate_NameBounds(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{"single char ok", "X", false},
		{"max length ok", strings.Repeat("a", 99), false},
		{"empty rejected", "", true},
		{"whitespace only rejected", "   ", true},
		{"too long rejected", strings.Repeat("a", 100), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := models.Role{Name: tc.role, StartYear: 2023}
			err := r.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("expected error for name %q, got nil", tc.role)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for name %q: %v", tc.role, err)
			}
		})
	}
}

func TestRoleValidate_StartYearBounds(t *testing.T) {
	for _, year := range []int{2010, 2050} {
		r := models.Role{Name: "Member", StartYear: year}
		if err := r.Validate(); err != nil {
			t.Errorf("start_year %d should be valid: %v", year, err)
		}
	}
	for _, year := range []int{2009, 2051, 0} {
		r := models.Role{Name: "Member", StartYear: year}
		if err := r.Validate(); err == nil {
			t.Errorf("start_year %d should be rejected", year)
		}
	}
}

func TestRoleValidate_EndYearCoercion(t *testing.T) {
	// end_year not strictly greater than start_year is silently dropped,
	// never rejected.
	r := models.Role{Name: "Member", StartYear: 2023, EndYear: intPtr(2023)}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if r.EndYear != nil {
		t.Errorf("end_year == start_year: got %d, want nil", *r.EndYear)
	}

	r = models.Role{Name: "Member", StartYear: 2023, EndYear: intPtr(2020)}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if r.EndYear != nil {
		t.Errorf("end_year < start_year: got %d, want nil", *r.EndYear)
	}

	r = models.Role{Name: "Member", StartYear: 2023, EndYear: intPtr(2024)}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if r.EndYear == nil || *r.EndYear != 2024 {
		t.Errorf("valid end_year should be kept, got %v", r.EndYear)
	}
}

func TestRoleValidate_ApprovedAndRejectedConflict(t *testing.T) {
	r := models.Role{Name: "Member", StartYear: 2023, Approved: true, Rejected: true}
	err := r.Validate()
	if err == nil {
		t.Fatal("expected error for approved+rejected role")
	}
	if apperr.KindOf(err) != apperr.KindConstraintViolation {
		t.Errorf("error kind: got %v, want KindConstraintViolation", apperr.KindOf(err))
	}
}

func TestRoleClampFuture(t *testing.T) {
	r := models.Role{Name: "Member", StartYear: 2030, EndYear: intPtr(2035)}
	r.ClampFuture(2024)
	if r.StartYear != 2024 {
		t.Errorf("start_year: got %d, want 2024", r.StartYear)
	}
	if r.EndYear != nil {
		t.Errorf("end_year: got %d, want nil", *r.EndYear)
	}

	// A past start year is untouched.
	r = models.Role{Name: "Member", StartYear: 2020, EndYear: intPtr(2022)}
	r.ClampFuture(2024)
	if r.StartYear != 2020 || r.EndYear == nil || *r.EndYear != 2022 {
		t.Errorf("past role should be untouched, got start=%d end=%v", r.StartYear, r.EndYear)
	}
}

func TestMemberValidate_NormalizesIdentifiers(t *testing.T) {
	m := models.Member{CID: "  Chess.Club ", UID: "ALICE"}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if m.CID != "chess.club" {
		t.Errorf("cid: got %q, want %q", m.CID, "chess.club")
	}
	if m.UID != "alice" {
		t.Errorf("uid: got %q, want %q", m.UID, "alice")
	}
}

func TestMemberValidate_RequiresIdentifiers(t *testing.T) {
	m := models.Member{UID: "alice"}
	if err := m.Validate(); err == nil {
		t.Error("expected error for missing cid")
	}
	m = models.Member{CID: "chess"}
	if err := m.Validate(); err == nil {
		t.Error("expected error for missing uid")
	}
}

func TestMemberWithoutDeleted(t *testing.T) {
	m := models.Member{
		CID: "chess", UID: "alice",
		Roles: []models.Role{
			{RID: "1", Name: "Member", StartYear: 2022},
			{RID: "2", Name: "Captain", StartYear: 2023, Deleted: true},
			{RID: "3", Name: "Coach", StartYear: 2024},
		},
	}

	got := m.WithoutDeleted()
	if len(got.Roles) != 2 {
		t.Fatalf("roles: got %d, want 2", len(got.Roles))
	}
	if got.Roles[0].RID != "1" || got.Roles[1].RID != "3" {
		t.Errorf("kept rids: got %q,%q, want 1,3", got.Roles[0].RID, got.Roles[1].RID)
	}

	// The projection never mutates the original.
	if len(m.Roles) != 3 {
		t.Errorf("original roles mutated: got %d, want 3", len(m.Roles))
	}

	// Idempotent: projecting a projection changes nothing.
	again := got.WithoutDeleted()
	if len(again.Roles) != len(got.Roles) {
		t.Errorf("projection not idempotent: got %d, want %d", len(again.Roles), len(got.Roles))
	}
}

func TestMemberFindRole(t *testing.T) {
	m := models.Member{Roles: []models.Role{{RID: "10"}, {RID: "11"}}}
	if i := m.FindRole("11"); i != 1 {
		t.Errorf("FindRole(11): got %d, want 1", i)
	}
	if i := m.FindRole("99"); i != -1 {
		t.Errorf("FindRole(99): got %d, want -1", i)
	}
}
