// internal/app/store/members/memberstore.go
package memberstore

// Terminology: Identifiers
//   - cid: club identifier (also the club service account's uid)
//   - uid: user identifier, stored lowercase
//   - rid: role entry identifier, reassigned wholesale after any structural
//     change to a membership's roles array

import (
	"context"
	"errors"

	"github.com/campus-council/clubs/internal/app/system/roleid"
	"github.com/campus-council/clubs/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateMember is returned when a membership for (cid, uid) already
// exists; the unique compound index backs this.
var ErrDuplicateMember = errors.New("membership already exists for this club and user")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// Get loads the membership document for (cid, uid).
// Returns mongo.ErrNoDocuments when absent.
func (s *Store) Get(ctx context.Context, cid, uid string) (*models.Member, error) {
	var m models.Member
	if err := s.c.FindOne(ctx, bson.M{"cid": cid, "uid": uid}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert creates the membership document. The caller validates first.
func (s *Store) Insert(ctx context.Context, m *models.Member) error {
	_, err := s.c.InsertOne(ctx, m)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMember
		}
		return err
	}
	return nil
}

// ReplaceRoles swaps the stored roles array and poc flag wholesale. This is
// a full replace, not a merge, per the edit contract. The read-modify-write
// around it is not CAS-guarded; last write wins on the single document.
func (s *Store) ReplaceRoles(ctx context.Context, cid, uid string, roles []models.Role, poc bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"cid": cid, "uid": uid},
		bson.M{"$set": bson.M{"roles": roles, "poc": poc}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetRoles updates only the roles array, leaving poc untouched.
func (s *Store) SetRoles(ctx context.Context, cid, uid string, roles []models.Role) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"cid": cid, "uid": uid},
		bson.M{"$set": bson.M{"roles": roles}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AssignRoleIDs re-derives the rid of every role in the document (deleted
// roles included) from one generator batch and writes the array back. It is
// a follow-up write: if it fails, the primary write stands and rids stay
// stale until the next mutation.
func (s *Store) AssignRoleIDs(ctx context.Context, cid, uid string, gen roleid.Generator) (*models.Member, error) {
	m, err := s.Get(ctx, cid, uid)
	if err != nil {
		return nil, err
	}
	if len(m.Roles) == 0 {
		return m, nil
	}

	ids := gen.Batch(len(m.Roles))
	for i := range m.Roles {
		m.Roles[i].RID = ids[i]
	}
	if err := s.SetRoles(ctx, cid, uid, m.Roles); err != nil {
		return nil, err
	}
	return m, nil
}

// ByClub returns all membership documents for a club, in insertion order.
func (s *Store) ByClub(ctx context.Context, cid string) ([]models.Member, error) {
	return s.find(ctx, bson.M{"cid": cid})
}

// ByUser returns all membership documents for a user across clubs.
func (s *Store) ByUser(ctx context.Context, uid string) ([]models.Member, error) {
	return s.find(ctx, bson.M{"uid": uid})
}

// All returns every membership document. Admin-scoped queries only.
func (s *Store) All(ctx context.Context) ([]models.Member, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Member, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var members []models.Member
	if err := cur.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateCid bulk-renames the cid field across all of a club's membership
// documents. Backs the inter-service updateMembersCid mutation, invoked when
// a club's identity changes. Returns the number of documents modified.
func (s *Store) UpdateCid(ctx context.Context, oldCid, newCid string) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"cid": oldCid},
		bson.M{"$set": bson.M{"cid": newCid}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
