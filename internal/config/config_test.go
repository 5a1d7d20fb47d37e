package config

import (
	"strings"
	"testing"
	"time"
)

// TestLoad tests environment parsing and defaults.
//
// WHY: Misread configuration only shows up at runtime. Defaults must produce a
// valid config and overrides must be honoured.
func TestLoad(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		for _, key := range []string{"SERVER_PORT", "SERVER_HOST", "DB_PATH", "SESSION_TTL", "LOG_LEVEL", "LOG_FORMAT", "DEFAULT_CURRENCY", "CORS_ALLOWED_ORIGINS", "STRICT_CATEGORY_TYPES", "SCHEDULER_ENABLED"} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg.Server.Addr != "localhost:5000" {
			t.Errorf("Addr = %s, want localhost:5000", cfg.Server.Addr)
		}
		if cfg.Finance.DefaultCurrency != "INR" {
			t.Errorf("DefaultCurrency = %s, want INR", cfg.Finance.DefaultCurrency)
		}
		if cfg.Session.TTL != 7*24*time.Hour {
			t.Errorf("Session.TTL = %s", cfg.Session.TTL)
		}
		if !cfg.Scheduler.Enabled {
			t.Error("scheduler should be enabled by default")
		}
		if cfg.Finance.StrictCategoryTypes {
			t.Error("strict category types should be off by default")
		}
	})

	t.Run("overrides from environment", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("DEFAULT_CURRENCY", "usd")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("STRICT_CATEGORY_TYPES", "true")
		t.Setenv("SCHEDULER_ENABLED", "false")
		t.Setenv("LOG_FORMAT", "Console")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if cfg.Server.Addr != "0.0.0.0:8080" {
			t.Errorf("Addr = %s", cfg.Server.Addr)
		}
		if cfg.Session.TTL != 2*time.Hour {
			t.Errorf("Session.TTL = %s", cfg.Session.TTL)
		}
		if cfg.Finance.DefaultCurrency != "USD" {
			t.Errorf("DefaultCurrency = %s", cfg.Finance.DefaultCurrency)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
		}
		if !cfg.Finance.StrictCategoryTypes || cfg.Scheduler.Enabled {
			t.Errorf("bool flags not parsed: %+v %+v", cfg.Finance, cfg.Scheduler)
		}
		if cfg.Log.Format != "console" {
			t.Errorf("Log.Format = %s", cfg.Log.Format)
		}
	})

	t.Run("rejects malformed duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")
		if _, err := Load(); err == nil {
			t.Error("expected error for malformed SESSION_TTL")
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "")
		t.Setenv("SERVER_PORT", "99999")
		t.Setenv("LOG_LEVEL", "loud")

		_, err := Load()
		if err == nil {
			t.Fatal("expected validation error")
		}
		for _, key := range []string{"SERVER_PORT", "LOG_LEVEL"} {
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not mention %s", err, key)
			}
		}
	})
}
