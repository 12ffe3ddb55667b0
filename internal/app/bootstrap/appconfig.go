// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where everything specific to the directory lives: where the
// advocates API is, how long views are kept, and how pages look.
type AppConfig struct {
	// Advocates API
	APIBaseURL string        // Absolute base URL of the API (e.g., http://localhost:3000)
	APIPath    string        // Listing path (default: /api/advocates)
	APITimeout time.Duration // Transport-level bound on one request (0 = none)

	// View lifecycle
	ViewTTL           time.Duration // Idle time after which a view is deactivated
	ViewSweepInterval time.Duration // How often idle views are swept
	PollWait          time.Duration // Longest a results request waits for a load
	ActivationLimit   int           // New views per client per minute (0 = unlimited)
	TrustProxyHeaders bool          // Key the activation limit on X-Forwarded-For/X-Real-IP

	// Timeouts
	PingTimeout  time.Duration // Health probe of the API
	FlushTimeout time.Duration // Flushing error reports on shutdown

	// Presentation
	SiteName          string // Shown in the page header and <title>
	FooterHTML        string // Operator footer, sanitized before display
	SpecialtiesLayout string // "inline" or "list"

	// Observability
	SentryDSN      string // Blank disables Sentry
	MetricsEnabled bool   // Serve /metrics
}
