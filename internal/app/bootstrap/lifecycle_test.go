package bootstrap

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/advocates/internal/app/system/timeouts"
	"github.com/dalemusser/advocates/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestConnectDBAndShutdown(t *testing.T) {
	u := testutil.NewUpstream(t, http.StatusOK, testutil.SampleListing)
	release := u.Hold()
	defer release()

	cfg := validConfig()
	cfg.APIBaseURL = u.URL
	core := &config.CoreConfig{}

	deps, err := ConnectDB(context.Background(), core, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB() error = %v", err)
	}
	if got, want := deps.API.URL(), u.URL+"/api/advocates"; got != want {
		t.Errorf("API URL = %q, want %q", got, want)
	}
	if deps.Activations == nil {
		t.Error("activation limiter not built")
	}
	if deps.Views.TTL() != cfg.ViewTTL {
		t.Errorf("view TTL = %v, want %v", deps.Views.TTL(), cfg.ViewTTL)
	}

	v := deps.Views.Start()
	deps.Sweeper.Start()

	if err := Shutdown(context.Background(), core, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case <-v.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("pending load not canceled on shutdown")
	}
	if deps.Views.Len() != 0 {
		t.Errorf("views after shutdown = %d", deps.Views.Len())
	}
}

func TestStartup_AppliesTimeouts(t *testing.T) {
	before := timeouts.Current()
	t.Cleanup(func() { timeouts.Configure(before) })

	cfg := validConfig()
	cfg.PingTimeout = 750 * time.Millisecond
	cfg.FlushTimeout = 3 * time.Second
	core := &config.CoreConfig{}

	deps, err := ConnectDB(context.Background(), core, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB() error = %v", err)
	}
	defer Shutdown(context.Background(), core, cfg, deps, testLogger())

	obsCore, logs := observer.New(zap.InfoLevel)
	if err := Startup(context.Background(), core, cfg, deps, zap.New(obsCore)); err != nil {
		t.Fatalf("Startup() error = %v", err)
	}

	if timeouts.Ping() != cfg.PingTimeout || timeouts.Short() != cfg.FlushTimeout {
		t.Errorf("timeouts = %+v, want ping %v flush %v", timeouts.Current(), cfg.PingTimeout, cfg.FlushTimeout)
	}
	entries := logs.FilterMessage("timeouts configured").All()
	if len(entries) != 1 {
		t.Fatalf("got %d timeout log entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["ping"]; got != cfg.PingTimeout {
		t.Errorf("logged ping = %v, want %v", got, cfg.PingTimeout)
	}
}
