package testutil

import (
	"context"

	"github.com/campus-council/clubs/internal/app/system/identity"
)

// CCIdentity returns an identity with the CC role.
func CCIdentity(uid string) identity.Identity {
	return identity.Identity{UID: uid, Role: identity.RoleCC}
}

// ClubIdentity returns an identity with the club role. The uid is the club's
// cid since clubs authenticate as their own service account.
func ClubIdentity(cid string) identity.Identity {
	return identity.Identity{UID: cid, Role: identity.RoleClub}
}

// PublicIdentity returns an ordinary authenticated user identity.
func PublicIdentity(uid string) identity.Identity {
	return identity.Identity{UID: uid, Role: identity.RolePublic}
}

// ContextWithIdentity injects an identity into a context, bypassing the
// header-decoding middleware the same way WithUser bypasses sessions in
// handler tests.
func ContextWithIdentity(ctx context.Context, id identity.Identity) context.Context {
	return identity.WithIdentity(ctx, id)
}
