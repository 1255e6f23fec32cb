// internal/app/system/identity/identity.go
package identity

// Terminology: Identifiers
//   - cid: the club identifier; doubles as the login uid of the club's own
//     service account, so "requester.UID == cid" means "the club itself".
//   - uid: an individual user's identifier, always compared lowercase.

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Role is the requester's role category as assigned by the Users service.
type Role string

const (
	// RolePublic is any unauthenticated or ordinary-user requester.
	RolePublic Role = "public"
	// RoleClub is a club's own service account.
	RoleClub Role = "club"
	// RoleCC is the Clubs Council administrative role.
	RoleCC Role = "cc"
)

// Identity is the pre-validated requester identity injected by the upstream
// gateway. The zero value is the anonymous (public, unauthenticated) caller.
type Identity struct {
	UID  string `json:"uid"`
	Role Role   `json:"role"`
}

// Authenticated reports whether any identity was present on the request.
func (id Identity) Authenticated() bool {
	return id.UID != "" || (id.Role != "" && id.Role != RolePublic)
}

// EffectiveRole normalizes an absent role to public.
func (id Identity) EffectiveRole() Role {
	if id.Role == "" {
		return RolePublic
	}
	return Role(strings.ToLower(string(id.Role)))
}

type ctxKey string

const (
	identityKey ctxKey = "identity"
	cookiesKey  ctxKey = "cookies"
)

// FromContext returns the requester identity and whether one was attached.
// ok=false means the request carried no user header at all.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// CookiesFromContext returns the raw forwarded cookies header, if any.
// The gateway client passes it through on outbound calls unchanged.
func CookiesFromContext(ctx context.Context) string {
	s, _ := ctx.Value(cookiesKey).(string)
	return s
}

// WithIdentity attaches an identity to ctx. Used by the middleware and by
// tests that exercise resolvers directly.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// WithCookies attaches a forwarded cookies header to ctx.
func WithCookies(ctx context.Context, cookies string) context.Context {
	return context.WithValue(ctx, cookiesKey, cookies)
}

// Middleware decodes the gateway-injected "user" header (JSON {uid, role})
// and the opaque "cookies" header into the request context. A missing or
// malformed user header leaves the request anonymous; the gateway is the
// authenticator, we only carry what it forwarded.
func Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := r.Header.Get("user"); raw != "" {
				var id Identity
				if err := json.Unmarshal([]byte(raw), &id); err != nil {
					logger.Warn("malformed user header, treating as anonymous", zap.Error(err))
				} else {
					id.UID = strings.ToLower(strings.TrimSpace(id.UID))
					id.Role = id.EffectiveRole()
					ctx = WithIdentity(ctx, id)
				}
			}

			if cookies := r.Header.Get("cookies"); cookies != "" {
				ctx = WithCookies(ctx, cookies)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
