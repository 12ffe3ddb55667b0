// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/advocates/internal/app/resources"
	"github.com/dalemusser/advocates/internal/app/system/metrics"
	"github.com/dalemusser/advocates/internal/app/system/timeouts"
	"github.com/dalemusser/advocates/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the back-end
// dependencies are built, but before the HTTP handler is. It loads shared
// templates, applies site settings, enables error reporting and metrics,
// and starts the view sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.Init(siteSettings(appCfg))
	timeouts.Configure(timeouts.Config{
		Ping:  appCfg.PingTimeout,
		Short: appCfg.FlushTimeout,
	})
	tc := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("ping", tc.Ping),
		zap.Duration("flush", tc.Short),
	)

	if appCfg.SentryDSN != "" {
		if err := initSentry(appCfg.SentryDSN, coreCfg.Env); err != nil {
			logger.Error("sentry init failed", zap.Error(err))
			return err
		}
		logger.Info("sentry error reporting enabled")
	}

	if appCfg.MetricsEnabled {
		metrics.Init()
	}

	deps.Sweeper.Start()
	return nil
}

func initSentry(dsn, env string) error {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     "advocates",
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	return nil
}
