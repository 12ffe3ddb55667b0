package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/advocates/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		APIBaseURL:        "http://localhost:3000",
		APIPath:           "/api/advocates",
		APITimeout:        15 * time.Second,
		ViewTTL:           15 * time.Minute,
		ViewSweepInterval: time.Minute,
		PollWait:          25 * time.Second,
		PingTimeout:       2 * time.Second,
		FlushTimeout:      5 * time.Second,
		ActivationLimit:   30,
		SiteName:          models.DefaultSiteName,
		SpecialtiesLayout: models.SpecialtiesLayoutInline,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"list layout", func(c *AppConfig) { c.SpecialtiesLayout = models.SpecialtiesLayoutList }, ""},
		{"no api timeout", func(c *AppConfig) { c.APITimeout = 0 }, ""},
		{"relative url", func(c *AppConfig) { c.APIBaseURL = "/api" }, "api_base_url"},
		{"empty url", func(c *AppConfig) { c.APIBaseURL = "" }, "api_base_url"},
		{"negative api timeout", func(c *AppConfig) { c.APITimeout = -time.Second }, "api_timeout"},
		{"zero ttl", func(c *AppConfig) { c.ViewTTL = 0 }, "view_ttl"},
		{"zero sweep interval", func(c *AppConfig) { c.ViewSweepInterval = 0 }, "view_sweep_interval"},
		{"zero poll wait", func(c *AppConfig) { c.PollWait = 0 }, "poll_wait"},
		{"zero ping timeout", func(c *AppConfig) { c.PingTimeout = 0 }, "ping_timeout"},
		{"zero flush timeout", func(c *AppConfig) { c.FlushTimeout = 0 }, "flush_timeout"},
		{"no activation limit", func(c *AppConfig) { c.ActivationLimit = 0 }, ""},
		{"negative activation limit", func(c *AppConfig) { c.ActivationLimit = -1 }, "activation_limit"},
		{"unknown layout", func(c *AppConfig) { c.SpecialtiesLayout = "grid" }, "specialties_layout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateConfig() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateConfig() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestSiteSettings(t *testing.T) {
	cfg := validConfig()
	cfg.SiteName = ""
	cfg.SpecialtiesLayout = models.SpecialtiesLayoutList

	s := siteSettings(cfg)
	if s.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q", s.SiteName)
	}
	if !s.ListSpecialties() {
		t.Error("ListSpecialties() = false for list layout")
	}
}

func TestAppConfigKeys_TrustProxyHeadersOffByDefault(t *testing.T) {
	for _, k := range appConfigKeys {
		if k.Name == "trust_proxy_headers" {
			if k.Default != false {
				t.Errorf("trust_proxy_headers default = %v, want false", k.Default)
			}
			return
		}
	}
	t.Fatal("trust_proxy_headers key not registered")
}
