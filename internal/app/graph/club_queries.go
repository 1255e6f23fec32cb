// internal/app/graph/club_queries.go
package graph

import (
	"context"
	"strings"

	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/campus-council/clubs/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActiveClubs lists active clubs. Public.
func (r *Resolver) ActiveClubs(ctx context.Context) ([]*ClubResolver, error) {
	clubs, err := r.clubs.List(ctx, models.StateActive)
	if err != nil {
		return nil, err
	}
	return wrapClubs(clubs), nil
}

// AllClubs lists every club for CC, active clubs for everyone else.
func (r *Resolver) AllClubs(ctx context.Context) ([]*ClubResolver, error) {
	id, present := identity.FromContext(ctx)

	state := models.StateActive
	if present && id.EffectiveRole() == identity.RoleCC {
		state = ""
	}

	clubs, err := r.clubs.List(ctx, state)
	if err != nil {
		return nil, err
	}
	return wrapClubs(clubs), nil
}

// Club fetches one club by cid. Deleted clubs are visible to CC only;
// everyone else gets the same NotFound as a club that never existed.
func (r *Resolver) Club(ctx context.Context, args struct{ Cid string }) (*ClubResolver, error) {
	id, present := identity.FromContext(ctx)

	c, err := r.clubs.GetByCID(ctx, strings.ToLower(args.Cid))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("no club found")
		}
		return nil, err
	}

	if c.State == models.StateDeleted {
		if !present || id.EffectiveRole() != identity.RoleCC {
			return nil, apperr.NotFound("no club found")
		}
	}

	return &ClubResolver{c: *c}, nil
}

func wrapClubs(clubs []models.Club) []*ClubResolver {
	out := make([]*ClubResolver, len(clubs))
	for i := range clubs {
		out[i] = &ClubResolver{c: clubs[i]}
	}
	return out
}
