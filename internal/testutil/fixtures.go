package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/campus-council/clubs/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateClub inserts an active club with sensible defaults.
func (f *Fixtures) CreateClub(ctx context.Context, cid, code, name string) models.Club {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Club{
		ID:          primitive.NewObjectID(),
		CID:         cid,
		Code:        code,
		State:       models.StateActive,
		Category:    models.CategoryOther,
		Name:        name,
		Email:       cid + "@clubs.iiit.ac.in",
		Description: "No Description Provided!",
		CreatedTime: now,
		UpdatedTime: now,
	}

	if _, err := f.db.Collection("clubs").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test club: %v", err)
	}
	return c
}

// CreateMember inserts a membership document with a single unapproved role.
func (f *Fixtures) CreateMember(ctx context.Context, cid, uid string) models.Member {
	f.t.Helper()
	return f.CreateMemberWithRoles(ctx, cid, uid, []models.Role{
		{RID: "1", Name: "Member", StartYear: 2023, Approved: false},
	})
}

// CreateMemberWithRoles inserts a membership document with the given roles.
func (f *Fixtures) CreateMemberWithRoles(ctx context.Context, cid, uid string, roles []models.Role) models.Member {
	f.t.Helper()

	m := models.Member{
		ID:    primitive.NewObjectID(),
		CID:   cid,
		UID:   uid,
		Roles: roles,
	}

	if _, err := f.db.Collection("members").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return m
}

// IntPtr returns a pointer to y, for building end_year values inline.
func IntPtr(y int) *int {
	return &y
}
