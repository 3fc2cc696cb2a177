package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
)

const errUnequalArrays = "Questions and answers must be arrays of equal length."

type EvaluationHandler struct {
	evaluator services.AnswerEvaluator
	logger    *zap.Logger
}

func NewEvaluationHandler(evaluator services.AnswerEvaluator, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator: evaluator,
		logger:    logger,
	}
}

// HandleScore handles POST /api/score
func (h *EvaluationHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest

	// A body that does not decode into two string arrays is treated the same
	// as arrays of different length.
	if err := c.BodyParser(&req); err != nil ||
		req.Questions == nil || req.Answers == nil ||
		len(req.Questions) != len(req.Answers) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": errUnequalArrays,
		})
	}

	results, err := h.evaluator.EvaluateAnswers(c.UserContext(), req.Questions, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLengthMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": errUnequalArrays,
			})
		case errors.Is(err, services.ErrMissingAPIKey):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": errMissingAPIKey,
			})
		}

		requestLogger(h.logger, c).Error("❌ Final error scoring", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to evaluate answers.",
		})
	}

	response := models.ScoreResponse{
		Scores:   make([]float64, 0, len(results)),
		Feedback: make([]string, 0, len(results)),
	}
	for _, result := range results {
		response.Scores = append(response.Scores, result.Score)
		response.Feedback = append(response.Feedback, result.Feedback)
	}

	return c.JSON(response)
}
