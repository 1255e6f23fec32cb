// internal/domain/models/member.go
package models

import (
	"strings"

	"github.com/campus-council/clubs/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role bounds. Years are calendar years; the lower bound predates the
// platform, the upper bound is a sanity ceiling.
const (
	RoleNameMinLen = 1
	RoleNameMaxLen = 99
	RoleMinYear    = 2010
	RoleMaxYear    = 2050

	roleStrMax   = 100
	memberStrMax = 600
)

// Role is one time-bounded title held by a member within a club.
//
// Rid is assigned by the roleid generator after every structural change to
// the parent membership's roles array and is unique across the whole role-id
// namespace at any instant. It is absent only before first assignment.
type Role struct {
	RID       string `bson:"rid,omitempty" json:"rid"`
	Name      string `bson:"name" json:"name"`
	StartYear int    `bson:"start_year" json:"start_year"`
	EndYear   *int   `bson:"end_year" json:"end_year"` // nil means ongoing
	Approved  bool   `bson:"approved" json:"approved"`
	Rejected  bool   `bson:"rejected" json:"rejected"`
	Deleted   bool   `bson:"deleted" json:"deleted"`
}

// Member aggregates all roles a user holds within a club. Exactly one
// document per (cid, uid); new role grants append to Roles, they never
// create a second document.
type Member struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CID   string             `bson:"cid" json:"cid"`
	UID   string             `bson:"uid" json:"uid"`
	POC   bool               `bson:"poc" json:"poc"`
	Roles []Role             `bson:"roles" json:"roles"`
}

// Validate normalizes and checks one role entry.
//
// end_year gets the tolerant treatment: a value that is not strictly greater
// than start_year is coerced to nil instead of rejected. Every other field
// hard-fails. The asymmetry is deliberate and load-bearing; clients send
// half-filled year ranges all the time.
func (r *Role) Validate() error {
	r.RID = strings.TrimSpace(r.RID)
	r.Name = strings.TrimSpace(r.Name)

	if len(r.Name) < RoleNameMinLen || len(r.Name) > RoleNameMaxLen {
		return apperr.ConstraintViolation("role name must be %d-%d characters", RoleNameMinLen, RoleNameMaxLen)
	}
	if len(r.RID) > roleStrMax {
		return apperr.ConstraintViolation("rid exceeds %d characters", roleStrMax)
	}
	if r.StartYear < RoleMinYear || r.StartYear > RoleMaxYear {
		return apperr.ConstraintViolation("start_year must be within [%d, %d]", RoleMinYear, RoleMaxYear)
	}
	if r.EndYear != nil && *r.EndYear <= r.StartYear {
		r.EndYear = nil
	}
	if r.Approved && r.Rejected {
		return apperr.ConstraintViolation("a role cannot be both approved and rejected")
	}
	return nil
}

// ClampFuture pulls a start_year beyond now back to the current year and
// drops end_year. Applied on editMember input.
func (r *Role) ClampFuture(currentYear int) {
	if r.StartYear > currentYear {
		r.StartYear = currentYear
		r.EndYear = nil
	}
}

// Ongoing reports whether the role has no end year.
func (r *Role) Ongoing() bool {
	return r.EndYear == nil
}

// Validate normalizes and checks the membership document and every role in
// it.
func (m *Member) Validate() error {
	m.CID = strings.ToLower(strings.TrimSpace(m.CID))
	m.UID = strings.ToLower(strings.TrimSpace(m.UID))

	if m.CID == "" {
		return apperr.ConstraintViolation("cid is required")
	}
	if m.UID == "" {
		return apperr.ConstraintViolation("uid is required")
	}
	if len(m.CID) > memberStrMax || len(m.UID) > memberStrMax {
		return apperr.ConstraintViolation("identifier exceeds %d characters", memberStrMax)
	}
	for i := range m.Roles {
		if err := m.Roles[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WithoutDeleted returns a copy whose roles exclude soft-deleted entries.
// This is the response-shaping projection; it never touches storage and is
// idempotent.
func (m Member) WithoutDeleted() Member {
	kept := make([]Role, 0, len(m.Roles))
	for _, r := range m.Roles {
		if !r.Deleted {
			kept = append(kept, r)
		}
	}
	m.Roles = kept
	return m
}

// FindRole returns the index of the role with the given rid, or -1.
func (m *Member) FindRole(rid string) int {
	for i := range m.Roles {
		if m.Roles[i].RID == rid {
			return i
		}
	}
	return -1
}
