package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
)

type GenerateHandler struct {
	generator services.QuestionGenerator
	logger    *zap.Logger
}

func NewGenerateHandler(generator services.QuestionGenerator, logger *zap.Logger) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		logger:    logger,
	}
}

// HandleGenerate handles POST /api/generate
func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	var req models.GenerateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeText == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resumeText is required",
		})
	}

	questions, err := h.generator.Generate(c.UserContext(), *req.ResumeText)
	if err != nil {
		if errors.Is(err, services.ErrMissingAPIKey) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": errMissingAPIKey,
			})
		}

		requestLogger(h.logger, c).Error("❌ Error generating questions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate interview questions.",
		})
	}

	return c.JSON(models.GenerateResponse{Questions: questions})
}
