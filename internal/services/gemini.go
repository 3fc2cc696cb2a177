package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/interview-prep/internal/config"
)

type geminiService struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

func NewGeminiService(ctx context.Context, cfg config.GeminiConfig, timeout time.Duration) (ChatCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &geminiService{
		client:    client,
		modelName: model,
		timeout:   timeout,
	}, nil
}

// Complete implements ChatCompleter.
func (g *geminiService) Complete(ctx context.Context, system, user string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(user), genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Text(), nil
}

func (g *geminiService) Provider() string {
	return config.ProviderGemini
}

func (g *geminiService) Model() string {
	return g.modelName
}
