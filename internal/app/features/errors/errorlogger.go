// internal/app/features/errors/errorlogger.go
package errors

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

// ErrorLogger logs handler and background failures and reports them to
// Sentry. Reporting is a no-op when Sentry was not initialized.
type ErrorLogger struct {
	Log *zap.Logger
	Hub *sentry.Hub // nil means sentry.CurrentHub()
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// Capture reports err to Sentry with extra context.
func (e *ErrorLogger) Capture(err error, extra map[string]interface{}) {
	if err == nil {
		return
	}
	hub := e.Hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for k, v := range extra {
				scope.SetExtra(k, v)
			}
			hub.CaptureException(err)
		})
	}
}

// LoadFailed reports a failed directory load. It has the signature of
// viewstate.Options.OnLoadError. The failure is already logged by the view.
func (e *ErrorLogger) LoadFailed(viewID string, err error) {
	e.Log.Debug("reporting load failure", zap.String("view", viewID))
	e.Capture(err, map[string]interface{}{"view": viewID})
}
