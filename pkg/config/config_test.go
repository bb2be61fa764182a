package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STITCHFOLD_APP_ENV", "dev")
	t.Setenv("STITCHFOLD_APP_PORT", "8080")
	t.Setenv("STITCHFOLD_CATALOG_BASE_URL", "https://api.stitchfold.test/api/v1")
	t.Setenv("STITCHFOLD_REDIS_URL", "redis://localhost:6379/0")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.App.LogLevel)
	}
	if cfg.Catalog.RequestTimeout != 100*time.Second {
		t.Fatalf("expected 100s catalog timeout, got %v", cfg.Catalog.RequestTimeout)
	}
	if cfg.Form.SessionTTL != 24*time.Hour {
		t.Fatalf("expected 24h session ttl, got %v", cfg.Form.SessionTTL)
	}
	if cfg.Form.MaxUploadBytes() != 10<<20 {
		t.Fatalf("expected 10MB upload cap, got %d", cfg.Form.MaxUploadBytes())
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatalf("env helpers disagree with STITCHFOLD_APP_ENV=dev")
	}
}

func TestLoadRejectsNonHTTPCatalogURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STITCHFOLD_CATALOG_BASE_URL", "ftp://example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-http catalog base url")
	}
}

func TestLoadRequiresAppEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STITCHFOLD_APP_ENV", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when app env missing")
	}
}
