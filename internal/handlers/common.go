package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/logger"
)

const errMissingAPIKey = "API Key not found in .env"

// requestLogger tags log entries with the id set by the requestid middleware.
func requestLogger(log *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		return log.With(zap.String(logger.FieldRequestID, id))
	}
	return log
}
