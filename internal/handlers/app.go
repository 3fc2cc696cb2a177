package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/config"
)

const (
	AppName    = "AI Interview Prep API"
	AppVersion = "1.0.0"
)

type Handlers struct {
	Generate   *GenerateHandler
	Evaluation *EvaluationHandler
	Upload     *UploadHandler
	Report     *ReportHandler
}

// NewApp builds the Fiber application with middleware and routes registered.
func NewApp(cfg *config.Config, log *zap.Logger, h Handlers) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               AppName,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     zap.NewStdLog(log.Named("http")).Writer(),
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"provider": cfg.LLM.Provider,
			"time":     time.Now(),
		})
	})

	api.Post("/generate", h.Generate.HandleGenerate)
	api.Post("/score", h.Evaluation.HandleScore)
	api.Post("/extract", h.Upload.HandleExtract)
	api.Post("/report", h.Report.HandleReport)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": AppName,
			"version": AppVersion,
			"endpoints": []string{
				"POST /api/generate",
				"POST /api/score",
				"POST /api/extract",
				"POST /api/report?format=xlsx|txt",
				"GET /api/health",
			},
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
