// internal/app/graph/resolver.go
package graph

import (
	"time"

	clubstore "github.com/campus-council/clubs/internal/app/store/clubs"
	memberstore "github.com/campus-council/clubs/internal/app/store/members"
	"github.com/campus-council/clubs/internal/app/system/gateway"
	"github.com/campus-council/clubs/internal/app/system/roleid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Resolver is the GraphQL root. It is the shared dependency container for
// every query and mutation, the same way a feature Handler carries DB and
// logger for its routes.
type Resolver struct {
	Log     *zap.Logger
	Gateway *gateway.Client

	members *memberstore.Store
	clubs   *clubstore.Store

	roleIDs        roleid.Generator
	allowedDomains []string
	secret         string

	// now is injectable for the year-clamp tests.
	now func() time.Time
}

// Config carries the pieces BuildHandler wires into the root resolver.
type Config struct {
	DB             *mongo.Database
	Log            *zap.Logger
	Gateway        *gateway.Client
	RoleIDs        roleid.Generator
	AllowedDomains []string
	Secret         string
	Now            func() time.Time
}

// NewResolver constructs the root resolver.
func NewResolver(cfg Config) *Resolver {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.RoleIDs == nil {
		cfg.RoleIDs = roleid.NewClock()
	}
	return &Resolver{
		Log:            cfg.Log,
		Gateway:        cfg.Gateway,
		members:        memberstore.New(cfg.DB),
		clubs:          clubstore.New(cfg.DB),
		roleIDs:        cfg.RoleIDs,
		allowedDomains: cfg.AllowedDomains,
		secret:         cfg.Secret,
		now:            cfg.Now,
	}
}
