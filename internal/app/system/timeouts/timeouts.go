// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts bound the I/O done outside of a directory load: health
// probes of the advocates API and flushing error reports on shutdown. The
// load itself is bounded by the API client's own timeout.
//
// Timeouts can be configured at startup using Configure(). If not configured,
// defaults are used.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: flushing buffered reports, small single requests
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing  = 2 * time.Second
	DefaultShort = 5 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

// Configurable timeout values. These start with defaults and can be
// overridden by calling Configure(). Access via getter functions.
var (
	ping  = DefaultPing
	short = DefaultShort
)

// Ping returns the timeout for health checks and connectivity verification.
// Used by the health endpoint to probe the advocates API.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for small bounded operations.
// Examples: flushing Sentry events on shutdown.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping  time.Duration
	Short time.Duration
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. This should be called during
// application startup before handlers are registered.
//
// Example:
//
//	timeouts.Configure(timeouts.Config{
//	    Ping: 500 * time.Millisecond,
//	})
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
}

// Current returns the timeout configuration in effect. Startup logs it.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:  ping,
		Short: short,
	}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context was canceled due to deadline exceeded.
// Use this for operations where timeout debugging is important.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.Log, "advocates API ping")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
