// internal/app/graph/member_queries.go
package graph

import (
	"context"
	"strings"

	"github.com/campus-council/clubs/internal/app/policy/memberpolicy"
	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/campus-council/clubs/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// allClubsSentinel widens currentMembers to every club; CC-only.
const allClubsSentinel = "clubs"

// Members lists a club's memberships, each filtered to the roles the
// requester may see. Memberships whose visible role set is empty are omitted
// entirely, not returned with an empty array.
func (r *Resolver) Members(ctx context.Context, args struct{ Cid string }) ([]*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)

	docs, err := r.members.ByClub(ctx, cid)
	if err != nil {
		return nil, err
	}

	return visibleList(docs, func(m models.Member) models.Member {
		return memberpolicy.Visible(m, id, present)
	}), nil
}

// Member fetches a single membership by (cid, uid). Unlike the list
// queries, a missing document is an error here.
func (r *Resolver) Member(ctx context.Context, args struct{ Cid, Uid string }) (*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)
	uid := strings.ToLower(args.Uid)

	m, err := r.members.Get(ctx, cid, uid)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("no such member record")
		}
		return nil, err
	}

	filtered := memberpolicy.Visible(*m, id, present)
	return &MemberResolver{m: filtered}, nil
}

// MemberRoles lists a user's memberships across all clubs. Visibility is
// resolved per club: CC sees unapproved roles everywhere, a club only within
// itself, everyone else only approved roles.
func (r *Resolver) MemberRoles(ctx context.Context, args struct{ Uid string }) ([]*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	uid := strings.ToLower(args.Uid)

	docs, err := r.members.ByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	return visibleList(docs, func(m models.Member) models.Member {
		return memberpolicy.Visible(m, id, present)
	}), nil
}

// CurrentMembers lists ongoing (no end year), approved, non-deleted roles of
// a club. The "clubs" sentinel cid spans every club and is CC-only.
func (r *Resolver) CurrentMembers(ctx context.Context, args struct{ Cid string }) ([]*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	cid := strings.ToLower(args.Cid)

	var docs []models.Member
	var err error
	if cid == allClubsSentinel {
		if err := memberpolicy.CanViewPending(id, present); err != nil {
			return nil, err
		}
		docs, err = r.members.All(ctx)
	} else {
		docs, err = r.members.ByClub(ctx, cid)
	}
	if err != nil {
		return nil, err
	}

	return visibleList(docs, func(m models.Member) models.Member {
		return filterRoles(m, func(role models.Role) bool {
			return !role.Deleted && role.Approved && role.Ongoing()
		})
	}), nil
}

// PendingMembers lists roles still awaiting a CC decision, across all
// memberships. CC-only.
func (r *Resolver) PendingMembers(ctx context.Context) ([]*MemberResolver, error) {
	id, present := identity.FromContext(ctx)
	if err := memberpolicy.CanViewPending(id, present); err != nil {
		return nil, err
	}

	docs, err := r.members.All(ctx)
	if err != nil {
		return nil, err
	}

	return visibleList(docs, func(m models.Member) models.Member {
		return filterRoles(m, func(role models.Role) bool {
			return !role.Deleted && !role.Approved && !role.Rejected
		})
	}), nil
}

func filterRoles(m models.Member, keep func(models.Role) bool) models.Member {
	kept := make([]models.Role, 0, len(m.Roles))
	for _, role := range m.Roles {
		if keep(role) {
			kept = append(kept, role)
		}
	}
	m.Roles = kept
	return m
}

func visibleList(docs []models.Member, project func(models.Member) models.Member) []*MemberResolver {
	out := make([]*MemberResolver, 0, len(docs))
	for _, m := range docs {
		filtered := project(m)
		if len(filtered.Roles) == 0 {
			continue
		}
		out = append(out, &MemberResolver{m: filtered})
	}
	return out
}
