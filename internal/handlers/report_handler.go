package handlers

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/models"
	"alfredoptarigan/interview-prep/internal/services"
)

const (
	ReportFormatXLSX = "xlsx"
	ReportFormatText = "txt"

	reportBaseName = "interview-feedback"
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	logger *zap.Logger
}

func NewReportHandler(logger *zap.Logger) *ReportHandler {
	return &ReportHandler{logger: logger}
}

// HandleReport handles POST /api/report
func (h *ReportHandler) HandleReport(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", ReportFormatXLSX))
	if format != ReportFormatXLSX && format != ReportFormatText {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be xlsx or txt",
		})
	}

	var req models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	rows := services.BuildReportRows(req.Questions, req.Answers, req.Scores, req.Feedback)

	c.Attachment(reportBaseName + "." + format)

	if format == ReportFormatText {
		var buf bytes.Buffer
		if err := services.WriteTextReport(&buf, rows); err != nil {
			return h.reportFailed(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(buf.Bytes())
	}

	data, err := services.BuildXLSXReport(rows)
	if err != nil {
		return h.reportFailed(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	return c.Send(data)
}

func (h *ReportHandler) reportFailed(c *fiber.Ctx, err error) error {
	requestLogger(h.logger, c).Error("❌ Error building report", zap.Error(err))

	c.Response().Header.Del(fiber.HeaderContentDisposition)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to build report.",
	})
}
