package services

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"alfredoptarigan/interview-prep/internal/config"
)

// openRouterService talks to the OpenRouter chat-completions endpoint, which
// speaks the OpenAI wire format.
type openRouterService struct {
	client    *openai.Client
	modelName string
}

func NewOpenRouterService(cfg config.OpenRouterConfig, timeout time.Duration) ChatCompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHeader("HTTP-Referer", cfg.Referer),
		option.WithHeader("X-Title", cfg.Title),
		// Failures are masked by the callers, never retried.
		option.WithMaxRetries(0),
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	client := openai.NewClient(opts...)

	return &openRouterService{
		client:    &client,
		modelName: cfg.Model,
	}
}

// Complete implements ChatCompleter.
func (s *openRouterService) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model: openai.ChatModel(s.modelName),
	})
	if err != nil {
		return "", fmt.Errorf("openrouter chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	// Refusals and filtered replies come back with "content": null.
	message := completion.Choices[0].Message
	if !message.JSON.Content.Valid() {
		return "", fmt.Errorf("%w: null message content", ErrEmptyCompletion)
	}

	return message.Content, nil
}

func (s *openRouterService) Provider() string {
	return config.ProviderOpenRouter
}

func (s *openRouterService) Model() string {
	return s.modelName
}
