// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, request limits); AppConfig is everything specific to
// this application. The struct is passed to most lifecycle hooks, so
// any value needed during startup, request handling, or shutdown
// should live here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections the driver keeps warm

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: edcenter-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Admin bootstrap: if AdminEmail is set and no user exists with
	// that email, an admin account is created on startup.
	AdminEmail    string
	AdminName     string
	AdminPassword string

	// Database operation timeouts, in seconds. Zero keeps the built-in
	// default for that tier.
	DBTimeoutShortSecs  int // single-document reads
	DBTimeoutMediumSecs int // list queries and simple writes
	DBTimeoutLongSecs   int // orchestrated multi-collection writes
	DBTimeoutBatchSecs  int // bulk student adds
}
