package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"elevate-backend/internal/shared/telemetry"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Fatalf("expected 30s ai timeout, got %s", cfg.AITimeout)
	}
	if cfg.GeminiAnalysisModel != "gemini-1.5-pro" {
		t.Fatalf("unexpected analysis model %q", cfg.GeminiAnalysisModel)
	}
	if !cfg.IsDevLike() {
		t.Fatalf("expected dev-like config")
	}
}

func TestAIConfiguredPlaceholders(t *testing.T) {
	cases := map[string]bool{
		"":              false,
		"YOUR_KEY_HERE": false,
		"real-key":      true,
	}
	for key, want := range cases {
		cfg := Config{GeminiAPIKey: key}
		if got := cfg.AIConfigured(); got != want {
			t.Fatalf("AIConfigured(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestNormalizeEnv(t *testing.T) {
	if normalizeEnv("PROD") != "production" {
		t.Fatalf("expected prod alias to normalize")
	}
	if normalizeEnv("whatever") != "dev" {
		t.Fatalf("expected unknown env to fall back to dev")
	}
}

func TestLogFormatFollowsEnv(t *testing.T) {
	if got := normalizeLogFormat("", "production"); got != "json" {
		t.Fatalf("expected json in production, got %q", got)
	}
	if got := normalizeLogFormat("", "dev"); got != "console" {
		t.Fatalf("expected console in dev, got %q", got)
	}
	if got := normalizeLogFormat("json", "dev"); got != "json" {
		t.Fatalf("expected explicit json, got %q", got)
	}
}

func TestLoadWarnsWhenProductionHasNoDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")

	core, logs := observer.New(zap.WarnLevel)
	prev := telemetry.L()
	telemetry.Use(zap.New(core))
	defer telemetry.Use(prev)

	Load()

	entries := logs.FilterMessage("config.database_url_missing").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["env"] != "production" {
		t.Fatalf("unexpected fields %#v", entries[0].ContextMap())
	}
}
