package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "ALLOWED_ORIGINS", "JWT_SECRET",
		"SESSION_TTL", "PRESENCE_TTL", "SHUTDOWN_TIMEOUT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development environment, got %s", cfg.Environment)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.PresenceTTL != 24*time.Hour {
		t.Errorf("expected 24h presence TTL, got %v", cfg.PresenceTTL)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != "6379" {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOWED_ORIGINS", "https://skillswap.example")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("PRESENCE_TTL", "30m")
	t.Setenv("SHUTDOWN_TIMEOUT", "10s")

	cfg := Load()
	if cfg.Port != "9100" {
		t.Errorf("expected port 9100, got %s", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://skillswap.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.PresenceTTL != 30*time.Minute {
		t.Errorf("expected 30m presence TTL, got %v", cfg.PresenceTTL)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
}

func TestLoadIgnoresMalformedDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected fallback to 24h, got %v", cfg.SessionTTL)
	}
}
