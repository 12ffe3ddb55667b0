// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/advocates/internal/app/system/timeouts"
	"github.com/dalemusser/advocates/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the directory.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, view_ttl, etc.
//   - Environment variables: ADVOCATES_API_BASE_URL, ADVOCATES_VIEW_TTL, etc.
//   - Command-line flags: --api_base_url, --view_ttl, etc.
var appConfigKeys = []config.AppKey{
	// Advocates API
	{Name: "api_base_url", Default: "http://localhost:3000", Desc: "Base URL of the advocates API"},
	{Name: "api_path", Default: "/api/advocates", Desc: "Path of the advocates listing"},
	{Name: "api_timeout", Default: "15s", Desc: "Timeout for one advocates API request (e.g., 15s, 1m)"},

	// View lifecycle
	{Name: "view_ttl", Default: "15m", Desc: "Idle time after which a directory view is dropped"},
	{Name: "view_sweep_interval", Default: "1m", Desc: "How often idle directory views are swept"},
	{Name: "poll_wait", Default: "25s", Desc: "Longest a results request waits for a pending load"},
	{Name: "activation_limit", Default: 30, Desc: "New directory views per client per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Identify clients by X-Forwarded-For/X-Real-IP (enable only behind a proxy that sets them)"},

	// Timeouts
	{Name: "ping_timeout", Default: "2s", Desc: "Timeout for the health probe of the advocates API"},
	{Name: "flush_timeout", Default: "5s", Desc: "Timeout for flushing error reports on shutdown"},

	// Presentation
	{Name: "site_name", Default: models.DefaultSiteName, Desc: "Site name shown in the header"},
	{Name: "footer_html", Default: "", Desc: "Footer text or HTML (sanitized)"},
	{Name: "specialties_layout", Default: models.SpecialtiesLayoutInline, Desc: "Specialties display: 'inline' or 'list'"},

	// Observability
	{Name: "sentry_dsn", Default: "", Desc: "Sentry DSN (blank disables error reporting)"},
	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus metrics at /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ADVOCATES_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ADVOCATES", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		// Advocates API
		APIBaseURL: appValues.String("api_base_url"),
		APIPath:    appValues.String("api_path"),
		APITimeout: appValues.Duration("api_timeout", 15*time.Second),

		// View lifecycle
		ViewTTL:           appValues.Duration("view_ttl", 15*time.Minute),
		ViewSweepInterval: appValues.Duration("view_sweep_interval", time.Minute),
		PollWait:          appValues.Duration("poll_wait", 25*time.Second),
		ActivationLimit:   appValues.Int("activation_limit"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		// Timeouts
		PingTimeout:  appValues.Duration("ping_timeout", timeouts.DefaultPing),
		FlushTimeout: appValues.Duration("flush_timeout", timeouts.DefaultShort),

		// Presentation
		SiteName:          appValues.String("site_name"),
		FooterHTML:        appValues.String("footer_html"),
		SpecialtiesLayout: appValues.String("specialties_layout"),

		// Observability
		SentryDSN:      appValues.String("sentry_dsn"),
		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The API URL must be absolute, every duration positive (api_timeout may
// be zero for no timeout), and the layout one of the known values.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		logger.Error("invalid advocates API URL", zap.String("api_base_url", appCfg.APIBaseURL))
		return fmt.Errorf("api_base_url must be an absolute URL, got %q", appCfg.APIBaseURL)
	}

	if appCfg.ActivationLimit < 0 {
		return fmt.Errorf("activation_limit must not be negative, got %d", appCfg.ActivationLimit)
	}
	if appCfg.APITimeout < 0 {
		return fmt.Errorf("api_timeout must not be negative, got %s", appCfg.APITimeout)
	}
	for _, d := range []struct {
		name string
		val  time.Duration
	}{
		{"view_ttl", appCfg.ViewTTL},
		{"view_sweep_interval", appCfg.ViewSweepInterval},
		{"poll_wait", appCfg.PollWait},
		{"ping_timeout", appCfg.PingTimeout},
		{"flush_timeout", appCfg.FlushTimeout},
	} {
		if d.val <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.val)
		}
	}

	switch appCfg.SpecialtiesLayout {
	case models.SpecialtiesLayoutInline, models.SpecialtiesLayoutList:
	default:
		return fmt.Errorf("specialties_layout must be %q or %q, got %q",
			models.SpecialtiesLayoutInline, models.SpecialtiesLayoutList, appCfg.SpecialtiesLayout)
	}

	return nil
}

// siteSettings derives the page chrome settings from the app config.
func siteSettings(appCfg AppConfig) models.SiteSettings {
	name := appCfg.SiteName
	if name == "" {
		name = models.DefaultSiteName
	}
	return models.SiteSettings{
		SiteName:          name,
		FooterHTML:        appCfg.FooterHTML,
		SpecialtiesLayout: appCfg.SpecialtiesLayout,
	}
}
