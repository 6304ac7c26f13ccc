package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "DATABASE_DRIVER", "DATABASE_DSN", "PUBLIC_DIR", "CORS_ALLOWED_ORIGINS", "HIGHLIGHT_MS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.HTTPPort != "8000" {
		t.Errorf("HTTPPort = %q, want 8000", cfg.HTTPPort)
	}
	if cfg.DatabaseDriver != "postgres" || cfg.DatabaseDSN != defaultDSN {
		t.Errorf("database = %s %q", cfg.DatabaseDriver, cfg.DatabaseDSN)
	}
	if cfg.HighlightDelay != 800*time.Millisecond {
		t.Errorf("HighlightDelay = %v, want 800ms", cfg.HighlightDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("HIGHLIGHT_MS", "250")

	cfg := Load()
	if cfg.HTTPPort != "9090" || cfg.DatabaseDriver != "sqlite" || cfg.DatabaseDSN != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.HighlightDelay != 250*time.Millisecond {
		t.Errorf("HighlightDelay = %v, want 250ms", cfg.HighlightDelay)
	}
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("HIGHLIGHT_MS", "abc")
	if got := getEnvInt("HIGHLIGHT_MS", 800); got != 800 {
		t.Errorf("getEnvInt invalid = %d, want 800", got)
	}
}
