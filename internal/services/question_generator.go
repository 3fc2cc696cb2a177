package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/logger"
)

type QuestionGenerator interface {
	// Generate returns the model reply unmodified: one question per line.
	Generate(ctx context.Context, resumeText string) (string, error)
}

type questionGenerator struct {
	llm        ChatCompleter
	logger     *zap.Logger
	previewLen int
}

// NewQuestionGenerator accepts a nil llm; Generate then fails with ErrMissingAPIKey.
func NewQuestionGenerator(llm ChatCompleter, log *zap.Logger, previewLen int) QuestionGenerator {
	if llm != nil {
		log = logger.WithLLM(log, llm.Provider(), llm.Model())
	} else if log == nil {
		log = zap.NewNop()
	}

	return &questionGenerator{
		llm:        llm,
		logger:     log,
		previewLen: previewLen,
	}
}

func (g *questionGenerator) Generate(ctx context.Context, resumeText string) (string, error) {
	if g.llm == nil {
		return "", ErrMissingAPIKey
	}

	g.logger.Debug("generating interview questions",
		zap.Int("resume_length", utf8.RuneCountInString(resumeText)),
		zap.String("resume_preview", logger.Preview(resumeText, g.previewLen)),
	)

	reply, err := g.llm.Complete(ctx, QuestionSystemPrompt, resumeText)
	if err != nil {
		return "", fmt.Errorf("failed to generate questions: %w", err)
	}

	g.logger.Debug("interview questions generated",
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", logger.Preview(reply, g.previewLen)),
	)

	return reply, nil
}
