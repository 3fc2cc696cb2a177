package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestConfig() *Config {
	v := viper.New()
	applyDefaults(v)
	return FromViper(v)
}

func TestDefaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg := newTestConfig()

	if cfg.Server.Port != "5000" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.LLM.Provider != ProviderOpenRouter {
		t.Fatalf("expected openrouter provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model() != "openchat/openchat-3.5-0106" {
		t.Fatalf("unexpected model: %q", cfg.LLM.Model())
	}
	if cfg.LLM.APIKey() != "" {
		t.Fatalf("expected empty api key")
	}
	if cfg.LLM.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.LLM.Timeout)
	}
	if cfg.Scorer.Concurrency != 1 {
		t.Fatalf("expected sequential scoring by default, got %d", cfg.Scorer.Concurrency)
	}
	if cfg.LLM.OpenRouter.Title != "AI Interview Tool" {
		t.Fatalf("unexpected title: %q", cfg.LLM.OpenRouter.Title)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("OPENROUTER_API_KEY", "  sk-test  ")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("SCORER_CONCURRENCY", "4")
	t.Setenv("API_URL", "http://example.test/")

	cfg := newTestConfig()

	if cfg.Server.Port != "8081" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.LLM.APIKey() != "sk-test" {
		t.Fatalf("expected trimmed api key, got %q", cfg.LLM.APIKey())
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.LLM.Timeout)
	}
	if cfg.Scorer.Concurrency != 4 {
		t.Fatalf("unexpected concurrency: %d", cfg.Scorer.Concurrency)
	}
	if cfg.Client.APIURL != "http://example.test" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", cfg.Client.APIURL)
	}
}

func TestGeminiProviderSelectsGeminiCredentials(t *testing.T) {
	t.Setenv("LLM_PROVIDER", " Gemini ")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GEMINI_MODEL", "gemini-x")
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg := newTestConfig()

	if cfg.LLM.Provider != ProviderGemini {
		t.Fatalf("expected gemini provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey() != "g-key" {
		t.Fatalf("unexpected api key: %q", cfg.LLM.APIKey())
	}
	if cfg.LLM.Model() != "gemini-x" {
		t.Fatalf("unexpected model: %q", cfg.LLM.Model())
	}
}

func TestConcurrencyIsClampedToOne(t *testing.T) {
	t.Setenv("SCORER_CONCURRENCY", "0")

	if got := newTestConfig().Scorer.Concurrency; got != 1 {
		t.Fatalf("expected concurrency 1, got %d", got)
	}
}
