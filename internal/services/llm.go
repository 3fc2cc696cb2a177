package services

import (
	"context"
	"fmt"

	"alfredoptarigan/interview-prep/internal/config"
)

// ChatCompleter sends one system instruction and one user message to a
// chat-completion model and returns the text of the first reply.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Provider() string
	Model() string
}

// NewChatCompleter builds the client of the configured provider. It returns
// ErrMissingAPIKey when the provider has no credential.
func NewChatCompleter(ctx context.Context, cfg config.LLMConfig) (ChatCompleter, error) {
	if cfg.APIKey() == "" {
		return nil, ErrMissingAPIKey
	}

	switch cfg.Provider {
	case config.ProviderOpenRouter:
		return NewOpenRouterService(cfg.OpenRouter, cfg.Timeout), nil
	case config.ProviderGemini:
		return NewGeminiService(ctx, cfg.Gemini, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
