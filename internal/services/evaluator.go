package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/logger"
	"alfredoptarigan/interview-prep/internal/models"
)

type AnswerEvaluator interface {
	// EvaluateAnswers scores every question/answer pair. The result has one
	// entry per pair, in input order; a failing pair never aborts the batch.
	EvaluateAnswers(ctx context.Context, questions, answers []string) ([]models.AnswerEvaluation, error)
}

type answerEvaluator struct {
	llm         ChatCompleter
	logger      *zap.Logger
	concurrency int
	previewLen  int
}

// NewAnswerEvaluator accepts a nil llm; EvaluateAnswers then fails with
// ErrMissingAPIKey once the input is validated.
func NewAnswerEvaluator(llm ChatCompleter, log *zap.Logger, concurrency, previewLen int) AnswerEvaluator {
	if llm != nil {
		log = logger.WithLLM(log, llm.Provider(), llm.Model())
	} else if log == nil {
		log = zap.NewNop()
	}

	if concurrency < 1 {
		concurrency = 1
	}

	return &answerEvaluator{
		llm:         llm,
		logger:      log,
		concurrency: concurrency,
		previewLen:  previewLen,
	}
}

func (e *answerEvaluator) EvaluateAnswers(ctx context.Context, questions, answers []string) ([]models.AnswerEvaluation, error) {
	if len(questions) != len(answers) {
		return nil, fmt.Errorf("%w: %d questions, %d answers", ErrLengthMismatch, len(questions), len(answers))
	}

	if e.llm == nil {
		return nil, ErrMissingAPIKey
	}

	results := make([]models.AnswerEvaluation, len(questions))

	runIndexed(ctx, len(questions), e.concurrency, func(ctx context.Context, i int) {
		results[i] = e.evaluateOne(ctx, i, questions[i], answers[i])
	})

	return results, nil
}

func (e *answerEvaluator) evaluateOne(ctx context.Context, index int, question, answer string) models.AnswerEvaluation {
	reply, err := e.llm.Complete(ctx, ScoreSystemPrompt, BuildScoreUserPrompt(question, answer))
	if err != nil {
		e.logger.Warn(fmt.Sprintf("❌ AI call failed, using default score for Q%d", index+1),
			zap.Int(logger.FieldQuestionIndex, index+1),
			zap.Error(err),
		)
		return CallFailureEvaluation()
	}

	result := ParseScoreReply(reply)

	e.logger.Debug("answer scored",
		zap.Int(logger.FieldQuestionIndex, index+1),
		zap.String("outcome", string(result.Outcome)),
		zap.Float64("score", result.Score),
		zap.Int("response_length", utf8.RuneCountInString(reply)),
		zap.String("response_preview", logger.Preview(reply, e.previewLen)),
	)

	return result
}
