package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_TIME_ZONE", "UTC")
	t.Setenv("CORS_ORIGINS", " http://a.example , ,http://b.example")
	t.Setenv("BASE_URL", "http://api.example/")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.UploadDir != "./uploads" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Fatalf("expected 72h ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC, got %v", cfg.Location)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.BaseURL != "http://api.example" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.BaseURL)
	}
}

func TestFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected an error without JWT_SECRET")
	}
}

func TestFromEnvRejectsBadZone(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("APP_TIME_ZONE", "Mars/Olympus")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected an error for an unknown zone")
	}
}
