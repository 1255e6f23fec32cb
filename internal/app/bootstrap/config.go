// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the clubs service.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, gateway_url, etc.
//   - Environment variables: CLUBS_MONGO_URI, CLUBS_GATEWAY_URL, etc.
//   - Command-line flags: --mongo_uri, --gateway_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "clubs", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Federation gateway
	{Name: "gateway_url", Default: "http://gateway/graphql", Desc: "URL of the federation gateway for inter-service calls"},
	{Name: "inter_communication_secret", Default: "", Desc: "Shared secret for privileged inter-service mutations"},

	// Club account email policy
	{Name: "allowed_email_domains", Default: "clubs.iiit.ac.in,students.iiit.ac.in", Desc: "Comma-separated email domains accepted for club accounts"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CLUBS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLUBS", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		GatewayURL:               appValues.String("gateway_url"),
		InterCommunicationSecret: appValues.String("inter_communication_secret"),

		AllowedEmailDomains: splitDomains(appValues.String("allowed_email_domains")),
	}

	return coreCfg, appCfg, nil
}

func splitDomains(s string) []string {
	var out []string
	for _, d := range strings.Split(s, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// The clubs service validates the MongoDB URI format to catch
// configuration errors early, before attempting to connect, and warns
// when the inter-communication secret is unset (the updateMembersCid
// mutation rejects all callers in that case).
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if len(appCfg.AllowedEmailDomains) == 0 {
		return fmt.Errorf("allowed_email_domains must list at least one domain")
	}

	if appCfg.InterCommunicationSecret == "" {
		logger.Warn("inter_communication_secret is unset; updateMembersCid will reject all callers")
	}

	return nil
}
