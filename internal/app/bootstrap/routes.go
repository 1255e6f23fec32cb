// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/campus-council/clubs/internal/app/features/health"
	"github.com/campus-council/clubs/internal/app/graph"
	"github.com/campus-council/clubs/internal/app/system/gateway"
	"github.com/campus-council/clubs/internal/app/system/identity"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The clubs service exposes two surfaces: the GraphQL endpoint that the
// federation gateway routes to, and a health endpoint for orchestrators.
// Identity middleware decodes the gateway's user/cookies headers into the
// request context before any resolver runs.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	gw := gateway.New(appCfg.GatewayURL, appCfg.InterCommunicationSecret, logger)

	resolver := graph.NewResolver(graph.Config{
		DB:             deps.ClubsMongoDatabase,
		Log:            logger,
		Gateway:        gw,
		AllowedDomains: appCfg.AllowedEmailDomains,
		Secret:         appCfg.InterCommunicationSecret,
	})

	graphHandler, err := graph.NewHandler(resolver, logger)
	if err != nil {
		logger.Error("graphql schema init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Global identity middleware: decodes the gateway-forwarded headers so
	// every handler sees the caller via identity.FromContext.
	r.Use(identity.Middleware(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ClubsMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// The GraphQL endpoint (queries and mutations alike go through POST /graphql)
	r.Mount("/graphql", graph.Routes(graphHandler))

	return r, nil
}
