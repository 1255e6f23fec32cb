// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, log level, timeouts); AppConfig is
// everything specific to this service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Federation gateway for outbound calls to the Users/Events services.
	GatewayURL string

	// Shared secret attached to privileged inter-service mutations and
	// required by our own updateMembersCid resolver.
	InterCommunicationSecret string

	// Email domains accepted for club accounts; the club cid is the local
	// part of such an address.
	AllowedEmailDomains []string
}
