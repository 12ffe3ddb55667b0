// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	advocatesfeature "github.com/dalemusser/advocates/internal/app/features/advocates"
	errorsfeature "github.com/dalemusser/advocates/internal/app/features/errors"
	healthfeature "github.com/dalemusser/advocates/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/advocates/internal/app/features/heartbeat"
	"github.com/dalemusser/advocates/internal/app/system/metrics"
	"github.com/dalemusser/advocates/internal/app/system/reporting"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, back-end setup, and the Startup
// hook have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the advocates API client and view registry in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The directory initializes the template engine and mounts the directory
// view, health, metrics and static assets.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()
	r.Use(reporting.Middleware)
	if appCfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.API, deps.Views, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if appCfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// The directory: GET / activates a view; the rest address it by id.
	advHandler := advocatesfeature.NewHandler(
		deps.Views,
		siteSettings(appCfg).ListSpecialties(),
		appCfg.PollWait,
		logger,
	)
	if deps.Activations != nil {
		advHandler.Activations = deps.Activations
		advHandler.TrustProxy = appCfg.TrustProxyHeaders
	}
	// Open pages report in well within the idle TTL.
	advHandler.Heartbeat = appCfg.ViewTTL / 3
	r.Get("/", advHandler.ServeIndex)
	r.Mount("/advocates", advocatesfeature.Routes(advHandler))

	heartbeatHandler := heartbeatfeature.NewHandler(deps.Views, logger)
	r.Mount(advocatesfeature.HeartbeatPath, heartbeatfeature.Routes(heartbeatHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
