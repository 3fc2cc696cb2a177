package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

type Config struct {
	Server ServerConfig
	LLM    LLMConfig
	Scorer ScorerConfig
	Log    LogConfig
	Client ClientConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	AllowOrigins string
	BodyLimit    int
}

type LLMConfig struct {
	Provider   string
	Timeout    time.Duration
	OpenRouter OpenRouterConfig
	Gemini     GeminiConfig
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ScorerConfig struct {
	Concurrency int
}

type LogConfig struct {
	JSON          bool
	Debug         bool
	PreviewLength int
}

// ClientConfig is used by the practice wizard to reach a running server.
type ClientConfig struct {
	APIURL string
}

var defaults = map[string]any{
	"PORT":                "5000",
	"ENV":                 "development",
	"CORS_ALLOW_ORIGINS":  "*",
	"BODY_LIMIT":          10 << 20,
	"LLM_PROVIDER":        ProviderOpenRouter,
	"LLM_TIMEOUT":         "0s",
	"OPENROUTER_API_KEY":  "",
	"OPENROUTER_BASE_URL": "https://openrouter.ai/api/v1/",
	"OPENROUTER_MODEL":    "openchat/openchat-3.5-0106",
	"OPENROUTER_REFERER":  "http://localhost:3000",
	"OPENROUTER_TITLE":    "AI Interview Tool",
	"GEMINI_API_KEY":      "",
	"GEMINI_MODEL":        "gemini-2.5-flash",
	"SCORER_CONCURRENCY":  1,
	"LOG_JSON":            false,
	"LOG_DEBUG":           false,
	"LOG_PREVIEW_LENGTH":  200,
	"API_URL":             "http://localhost:5000",
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	return LoadInto(viper.New())
}

// FromViper builds a Config from an already populated viper instance.
// Flags bound by the CLI (debug, json) take precedence over LOG_* variables.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Env:          v.GetString("ENV"),
			AllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
			BodyLimit:    v.GetInt("BODY_LIMIT"),
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			Timeout:  v.GetDuration("LLM_TIMEOUT"),
			OpenRouter: OpenRouterConfig{
				APIKey:  strings.TrimSpace(v.GetString("OPENROUTER_API_KEY")),
				BaseURL: v.GetString("OPENROUTER_BASE_URL"),
				Model:   v.GetString("OPENROUTER_MODEL"),
				Referer: v.GetString("OPENROUTER_REFERER"),
				Title:   v.GetString("OPENROUTER_TITLE"),
			},
			Gemini: GeminiConfig{
				APIKey: strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
				Model:  v.GetString("GEMINI_MODEL"),
			},
		},
		Scorer: ScorerConfig{
			Concurrency: v.GetInt("SCORER_CONCURRENCY"),
		},
		Log: LogConfig{
			JSON:          v.GetBool("LOG_JSON") || v.GetBool("json"),
			Debug:         v.GetBool("LOG_DEBUG") || v.GetBool("debug"),
			PreviewLength: v.GetInt("LOG_PREVIEW_LENGTH"),
		},
		Client: ClientConfig{
			APIURL: strings.TrimRight(v.GetString("API_URL"), "/"),
		},
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderOpenRouter
	}
	if cfg.Scorer.Concurrency < 1 {
		cfg.Scorer.Concurrency = 1
	}

	return cfg
}

// LoadInto is Load for callers that already own a viper instance (the CLI).
func LoadInto(v *viper.Viper) *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	applyDefaults(v)
	return FromViper(v)
}

func applyDefaults(v *viper.Viper) {
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// APIKey returns the credential of the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.Gemini.APIKey
	}
	return c.OpenRouter.APIKey
}

// Model returns the model identifier of the selected provider.
func (c LLMConfig) Model() string {
	if c.Provider == ProviderGemini {
		return c.Gemini.Model
	}
	return c.OpenRouter.Model
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
