// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/advocates/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Shutdown stops the sweeper, deactivates every live view (canceling any
// pending loads), and flushes buffered error reports.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Sweeper != nil {
		deps.Sweeper.Stop()
	}
	if deps.Activations != nil {
		deps.Activations.Stop()
	}
	if deps.Views != nil {
		logger.Info("deactivating directory views", zap.Int("count", deps.Views.Len()))
		deps.Views.Close()
	}
	if appCfg.SentryDSN != "" && !sentry.Flush(timeouts.Short()) {
		logger.Warn("sentry flush timed out")
	}
	return nil
}
