// internal/app/graph/member_mutations.go
package graph

import (
	"context"
	"strings"

	"github.com/campus-council/clubs/internal/app/policy/memberpolicy"
	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/campus-council/clubs/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateMember registers a user's first role(s) within a club. One document
// aggregates all of a user's roles in that club, so a second create for the
// same (cid, uid) fails with AlreadyExists even when every role is
// soft-deleted.
func (r *Resolver) CreateMember(ctx context.Context, args struct {
	Cid   string
	Uid   string
	Roles []RoleInput
}) (*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)
	uid := strings.ToLower(args.Uid)

	if err := memberpolicy.CanCreate(id, present, cid); err != nil {
		return nil, err
	}

	m := models.Member{CID: cid, UID: uid, Roles: rolesFromInput(args.Roles)}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if _, err := r.members.Get(ctx, cid, uid); err == nil {
		return nil, apperr.AlreadyExists("membership already exists for %s in %s", uid, cid)
	} else if err != mongo.ErrNoDocuments {
		return nil, err
	}

	if err := r.members.Insert(ctx, &m); err != nil {
		return nil, err
	}

	return r.reassignAndProject(ctx, cid, uid)
}

// EditMember replaces the stored roles array and poc flag wholesale. Roles
// starting in the future are clamped to the current year with no end year.
// Omitting poc keeps the stored flag.
func (r *Resolver) EditMember(ctx context.Context, args struct {
	Cid   string
	Uid   string
	Roles []RoleInput
	Poc   *bool
}) (*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)
	uid := strings.ToLower(args.Uid)

	if err := memberpolicy.CanEdit(id, present, cid); err != nil {
		return nil, err
	}

	existing, err := r.members.Get(ctx, cid, uid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("no membership for %s in %s", uid, cid)
		}
		return nil, err
	}

	roles := rolesFromInput(args.Roles)
	currentYear := r.now().Year()
	for i := range roles {
		roles[i].ClampFuture(currentYear)
		if err := roles[i].Validate(); err != nil {
			return nil, err
		}
	}

	poc := existing.POC
	if args.Poc != nil {
		poc = *args.Poc
	}

	if err := r.members.ReplaceRoles(ctx, cid, uid, roles, poc); err != nil {
		return nil, err
	}

	return r.reassignAndProject(ctx, cid, uid)
}

// DeleteMember soft-deletes one role by rid, leaving its siblings untouched.
// The follow-up rid pass then renumbers every role, the deleted one
// included; a cached rid is stale after any mutation.
func (r *Resolver) DeleteMember(ctx context.Context, args struct {
	Cid string
	Uid string
	Rid string
}) (*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)
	uid := strings.ToLower(args.Uid)

	if err := memberpolicy.CanDelete(id, present, cid); err != nil {
		return nil, err
	}

	m, err := r.members.Get(ctx, cid, uid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("no membership for %s in %s", uid, cid)
		}
		return nil, err
	}

	i := m.FindRole(args.Rid)
	if i < 0 {
		return nil, apperr.NotFound("no role with rid %s", args.Rid)
	}
	m.Roles[i].Deleted = true

	if err := r.members.SetRoles(ctx, cid, uid, m.Roles); err != nil {
		return nil, err
	}

	return r.reassignAndProject(ctx, cid, uid)
}

// ApproveMember marks one role approved. CC-only. A soft-deleted role is
// excluded from re-approval.
func (r *Resolver) ApproveMember(ctx context.Context, args struct {
	Cid string
	Uid string
	Rid string
}) (*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)
	uid := strings.ToLower(args.Uid)

	if err := memberpolicy.CanApprove(id, present); err != nil {
		return nil, err
	}

	m, err := r.members.Get(ctx, cid, uid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("no membership for %s in %s", uid, cid)
		}
		return nil, err
	}

	i := m.FindRole(args.Rid)
	if i < 0 || m.Roles[i].Deleted {
		return nil, apperr.NotFound("no role with rid %s", args.Rid)
	}
	m.Roles[i].Approved = true
	m.Roles[i].Rejected = false

	if err := r.members.SetRoles(ctx, cid, uid, m.Roles); err != nil {
		return nil, err
	}

	return r.reassignAndProject(ctx, cid, uid)
}

// reassignAndProject runs the rid follow-up write and shapes the response
// through the non-deleted projection. If the follow-up write fails, the
// primary write already stands; we surface the error and rids stay stale
// until the next mutation.
func (r *Resolver) reassignAndProject(ctx context.Context, cid, uid string) (*MemberResolver, error) {
	m, err := r.members.AssignRoleIDs(ctx, cid, uid, r.roleIDs)
	if err != nil {
		r.Log.Warn("rid reassignment failed; ids stale until next mutation",
			zap.String("cid", cid),
			zap.String("uid", uid),
			zap.Error(err))
		return nil, err
	}
	return &MemberResolver{m: m.WithoutDeleted()}, nil
}

func rolesFromInput(in []RoleInput) []models.Role {
	roles := make([]models.Role, len(in))
	for i, ri := range in {
		roles[i] = ri.toModel()
	}
	return roles
}
