// internal/app/store/clubs/clubstore.go
package clubstore

import (
	"context"
	"errors"
	"time"

	"github.com/campus-council/clubs/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateClub is returned when a club with the same cid or code exists.
var ErrDuplicateClub = errors.New("a club with this cid or code already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clubs")}
}

// GetByCID loads a club by cid. Returns mongo.ErrNoDocuments when absent.
func (s *Store) GetByCID(ctx context.Context, cid string) (*models.Club, error) {
	var c models.Club
	if err := s.c.FindOne(ctx, bson.M{"cid": cid}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCode loads a club by its short code.
func (s *Store) GetByCode(ctx context.Context, code string) (*models.Club, error) {
	var c models.Club
	if err := s.c.FindOne(ctx, bson.M{"code": code}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns clubs, optionally filtered by lifecycle state ("" means all),
// sorted by name.
func (s *Store) List(ctx context.Context, state string) ([]models.Club, error) {
	filter := bson.M{}
	if state != "" {
		filter["state"] = state
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clubs []models.Club
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// Insert creates a club document, stamping created/updated times.
func (s *Store) Insert(ctx context.Context, c *models.Club) error {
	now := time.Now().UTC()
	c.CreatedTime = now
	c.UpdatedTime = now
	_, err := s.c.InsertOne(ctx, c)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateClub
		}
		return err
	}
	return nil
}

// Replace overwrites the document matched by code, preserving _id and
// created_time and refreshing updated_time. Full document replace, matching
// the edit contract.
func (s *Store) Replace(ctx context.Context, c *models.Club) error {
	c.UpdatedTime = time.Now().UTC()
	res, err := s.c.ReplaceOne(ctx, bson.M{"code": c.Code}, c)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateClub
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetState flips the lifecycle state (soft delete / restart).
func (s *Store) SetState(ctx context.Context, cid, state string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"cid": cid},
		bson.M{"$set": bson.M{"state": state, "updated_time": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
