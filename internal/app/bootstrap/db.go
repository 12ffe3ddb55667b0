// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	errorsfeature "github.com/dalemusser/advocates/internal/app/features/errors"
	"github.com/dalemusser/advocates/internal/app/system/advocateapi"
	"github.com/dalemusser/advocates/internal/app/system/ratelimit"
	"github.com/dalemusser/advocates/internal/app/system/viewstate"
	"github.com/dalemusser/advocates/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the back-end dependencies: the advocates API client and
// the registry of directory views. Nothing is dialed here; the API is
// probed by the health endpoint.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	api := advocateapi.New(appCfg.APIBaseURL, appCfg.APIPath, appCfg.APITimeout, logger.Named("advocateapi"))

	errLog := errorsfeature.NewErrorLogger(logger)
	views := viewstate.NewRegistry(api, viewstate.Options{
		TTL:         appCfg.ViewTTL,
		OnLoadError: errLog.LoadFailed,
	}, logger.Named("views"))

	logger.Info("advocates API configured",
		zap.String("url", api.URL()),
		zap.Duration("timeout", appCfg.APITimeout))

	deps := DBDeps{
		API:     api,
		Views:   views,
		Sweeper: workers.NewViewSweeper(views, logger, appCfg.ViewSweepInterval),
	}
	if appCfg.ActivationLimit > 0 {
		deps.Activations = ratelimit.New(appCfg.ActivationLimit, time.Minute)
	}
	return deps, nil
}

// EnsureSchema has nothing to set up: the directory stores nothing.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
