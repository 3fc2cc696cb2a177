package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/services"
)

const resumeFormField = "resume"

type UploadHandler struct {
	extractor   services.ResumeExtractor
	logger      *zap.Logger
	maxFileSize int64
}

func NewUploadHandler(extractor services.ResumeExtractor, logger *zap.Logger, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		extractor:   extractor,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// HandleExtract handles POST /api/extract
func (h *UploadHandler) HandleExtract(c *fiber.Ctx) error {
	file, err := c.FormFile(resumeFormField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume uploaded. Please upload a 'resume' file.",
		})
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded resume",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded resume",
		})
	}

	doc, err := h.extractor.Extract(file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please select a valid PDF file",
			})
		case errors.Is(err, services.ErrEmptyDocument):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "No text could be extracted from the resume",
			})
		}

		requestLogger(h.logger, c).Error("❌ Error extracting resume text",
			zap.String("file_name", file.Filename),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to extract resume text.",
		})
	}

	return c.JSON(doc)
}
