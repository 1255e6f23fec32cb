// internal/app/graph/club_mutations.go
package graph

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/app/system/gateway"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/campus-council/clubs/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (r *Resolver) requireCC(ctx context.Context) error {
	id, present := identity.FromContext(ctx)
	if !present {
		return apperr.Unauthenticated("not authenticated")
	}
	if id.EffectiveRole() != identity.RoleCC {
		return apperr.Unauthorized("only CC may perform this operation")
	}
	return nil
}

// CreateClub registers a new club. CC-only. The cid is derived from the club
// email's local part and must belong to an existing user account (the club's
// service account); the Users service then flips that account's role to
// "club", and a failure there fails the whole mutation.
func (r *Resolver) CreateClub(ctx context.Context, args struct{ ClubInput ClubInput }) (*ClubResolver, error) {
	if err := r.requireCC(ctx); err != nil {
		return nil, err
	}

	c := args.ClubInput.toModel()
	c.CID = "" // always derived from the email on create
	if err := c.Validate(r.allowedDomains); err != nil {
		return nil, err
	}

	if _, err := r.clubs.GetByCID(ctx, c.CID); err == nil {
		return nil, apperr.AlreadyExists("a club with cid %s already exists", c.CID)
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	if _, res := r.Gateway.UserProfile(ctx, c.CID); res != gateway.OK {
		return nil, apperr.ConstraintViolation("invalid club id/club email: no such user account")
	}

	if _, err := r.clubs.GetByCode(ctx, c.Code); err == nil {
		return nil, apperr.AlreadyExists("a club with code %s already exists", c.Code)
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	if err := r.clubs.Insert(ctx, &c); err != nil {
		return nil, err
	}

	if res := r.Gateway.UpdateRole(ctx, c.CID, "club"); res != gateway.OK {
		return nil, apperr.UpstreamUnavailable("error updating the role for the club")
	}

	return &ClubResolver{c: c}, nil
}

// EditClub updates a club profile.
//
// CC has full access, including changing the cid; a cid change cascades to
// the Users service (old account back to public, new to club), the Events
// service, and this service's own membership documents. The club itself may
// edit its profile but not its name, email, or category.
func (r *Resolver) EditClub(ctx context.Context, args struct{ ClubInput ClubInput }) (*ClubResolver, error) {
	id, present := identity.FromContext(ctx)
	if !present {
		return nil, apperr.Unauthenticated("not authenticated")
	}

	c := args.ClubInput.toModel()

	switch id.EffectiveRole() {
	case identity.RoleCC:
		return r.editClubAsCC(ctx, c)
	case identity.RoleClub:
		return r.editClubAsClub(ctx, id, c)
	default:
		return nil, apperr.Unauthorized("not authorized to edit clubs")
	}
}

func (r *Resolver) editClubAsCC(ctx context.Context, c models.Club) (*ClubResolver, error) {
	if err := c.Validate(r.allowedDomains); err != nil {
		return nil, err
	}

	existing, err := r.clubs.GetByCode(ctx, c.Code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("a club with code %s doesn't exist", c.Code)
		}
		return nil, err
	}

	if _, res := r.Gateway.UserProfile(ctx, c.CID); res != gateway.OK {
		return nil, apperr.ConstraintViolation("invalid club id/club email: no such user account")
	}

	// Lifecycle state and provenance are not editable through this path.
	c.ID = existing.ID
	c.State = existing.State
	c.CreatedTime = existing.CreatedTime

	if err := r.clubs.Replace(ctx, &c); err != nil {
		return nil, err
	}

	if existing.CID != c.CID {
		if err := r.cascadeCidChange(ctx, existing.CID, c.CID); err != nil {
			return nil, err
		}
	}

	updated, err := r.clubs.GetByCode(ctx, c.Code)
	if err != nil {
		return nil, err
	}
	return &ClubResolver{c: *updated}, nil
}

func (r *Resolver) editClubAsClub(ctx context.Context, id identity.Identity, c models.Club) (*ClubResolver, error) {
	if err := c.Validate(r.allowedDomains); err != nil {
		return nil, err
	}

	if id.UID != c.CID {
		return nil, apperr.Unauthorized("a club may only edit itself")
	}

	existing, err := r.clubs.GetByCID(ctx, c.CID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("a club with cid %s doesn't exist", c.CID)
		}
		return nil, err
	}

	if c.Name != existing.Name || c.Email != existing.Email {
		return nil, apperr.Unauthorized("only CC may change the name or email of a club")
	}
	if c.Category != existing.Category {
		return nil, apperr.Unauthorized("only CC may change the category of a club")
	}

	c.ID = existing.ID
	c.Code = existing.Code
	c.State = existing.State
	c.CreatedTime = existing.CreatedTime

	if err := r.clubs.Replace(ctx, &c); err != nil {
		return nil, err
	}

	updated, err := r.clubs.GetByCID(ctx, c.CID)
	if err != nil {
		return nil, err
	}
	return &ClubResolver{c: *updated}, nil
}

// cascadeCidChange propagates a club identity change: role swap at the
// Users service, event rename at the Events service, and the local bulk
// rename of membership documents. Any remote failure fails the mutation;
// the club document itself has already been replaced at this point, which
// matches the original's ordering.
func (r *Resolver) cascadeCidChange(ctx context.Context, oldCid, newCid string) error {
	if res := r.Gateway.UpdateRole(ctx, oldCid, "public"); res != gateway.OK {
		return apperr.UpstreamUnavailable("error updating the role/cid")
	}
	if res := r.Gateway.UpdateRole(ctx, newCid, "club"); res != gateway.OK {
		return apperr.UpstreamUnavailable("error updating the role/cid")
	}
	if res := r.Gateway.UpdateEventsCid(ctx, oldCid, newCid); res != gateway.OK {
		return apperr.UpstreamUnavailable("error updating the role/cid")
	}

	n, err := r.members.UpdateCid(ctx, oldCid, newCid)
	if err != nil {
		return err
	}
	r.Log.Info("renamed membership documents after cid change",
		zap.String("old_cid", oldCid),
		zap.String("new_cid", newCid),
		zap.Int64("count", n))
	return nil
}

// DeleteClub soft-deletes a club (state "deleted"). CC-only. The role
// downgrade at the Users service is best-effort: a dead Users service must
// not block retiring a club.
func (r *Resolver) DeleteClub(ctx context.Context, args struct{ Cid string }) (*ClubResolver, error) {
	return r.setClubState(ctx, strings.ToLower(args.Cid), models.StateDeleted, "public")
}

// RestartClub reactivates a deleted club. CC-only.
func (r *Resolver) RestartClub(ctx context.Context, args struct{ Cid string }) (*ClubResolver, error) {
	return r.setClubState(ctx, strings.ToLower(args.Cid), models.StateActive, "club")
}

func (r *Resolver) setClubState(ctx context.Context, cid, state, userRole string) (*ClubResolver, error) {
	if err := r.requireCC(ctx); err != nil {
		return nil, err
	}

	if err := r.clubs.SetState(ctx, cid, state); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("no club found")
		}
		return nil, err
	}

	if res := r.Gateway.UpdateRole(ctx, cid, userRole); res != gateway.OK {
		r.Log.Warn("role update not applied at users service",
			zap.String("cid", cid),
			zap.String("role", userRole),
			zap.String("result", res.String()))
	}

	c, err := r.clubs.GetByCID(ctx, cid)
	if err != nil {
		return nil, err
	}
	return &ClubResolver{c: *c}, nil
}

// UpdateMembersCid bulk-renames the cid on membership documents. This is the
// inter-service contract consumed by the sibling services when a club's
// identity changes; it is guarded by the shared secret, not by requester
// role.
func (r *Resolver) UpdateMembersCid(ctx context.Context, args struct {
	OldCid                   string
	NewCid                   string
	InterCommunicationSecret *string
}) (int32, error) {
	provided := ""
	if args.InterCommunicationSecret != nil {
		provided = *args.InterCommunicationSecret
	}
	if r.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(r.secret)) != 1 {
		return 0, apperr.Unauthorized("invalid inter-communication secret")
	}

	n, err := r.members.UpdateCid(ctx, strings.ToLower(args.OldCid), strings.ToLower(args.NewCid))
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}
