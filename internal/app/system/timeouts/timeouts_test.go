package timeouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigure_IgnoresZeroValues(t *testing.T) {
	before := Current()
	t.Cleanup(func() { Configure(before) })

	Configure(Config{Ping: 500 * time.Millisecond})
	if Ping() != 500*time.Millisecond {
		t.Errorf("Ping() = %v", Ping())
	}
	if Short() != DefaultShort {
		t.Errorf("Short() = %v, want default", Short())
	}

	Configure(Config{})
	if got := Current(); got.Ping != 500*time.Millisecond || got.Short != DefaultShort {
		t.Errorf("Current() after empty Configure = %+v", got)
	}
}

func TestWithTimeout_LogsOnDeadline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.New(core), "advocates API ping")
	<-ctx.Done()
	cancel()

	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("ctx.Err() = %v", ctx.Err())
	}
	entries := logs.FilterMessage("operation timed out").All()
	if len(entries) != 1 {
		t.Fatalf("got %d timeout warnings, want 1", len(entries))
	}
	if op := entries[0].ContextMap()["operation"]; op != "advocates API ping" {
		t.Errorf("operation = %v", op)
	}
}

func TestWithTimeout_SilentWhenCanceledEarly(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	_, cancel := WithTimeout(context.Background(), time.Hour, zap.New(core), "quick")
	cancel()

	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %v", logs.All())
	}
}
