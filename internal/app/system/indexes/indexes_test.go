package indexes_test

import (
	"testing"

	"github.com/campus-council/clubs/internal/app/system/indexes"
	"github.com/campus-council/clubs/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_CreatesAndIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	// Second run must be a no-op, not a conflict.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}

	cur, err := db.Collection("members").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	var specs []bson.M
	if err := cur.All(ctx, &specs); err != nil {
		t.Fatalf("decode indexes: %v", err)
	}

	found := false
	for _, s := range specs {
		if s["name"] == "unique_members" {
			found = true
			if unique, _ := s["unique"].(bool); !unique {
				t.Error("unique_members index is not unique")
			}
		}
	}
	if !found {
		t.Error("unique_members index missing")
	}
}
