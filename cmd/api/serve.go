package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/interview-prep/internal/config"
	"alfredoptarigan/interview-prep/internal/handlers"
	"alfredoptarigan/interview-prep/internal/logger"
	"alfredoptarigan/interview-prep/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview prep API server",
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
	viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
}

func serve() error {
	cfg := config.LoadInto(viper.GetViper())

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	zlog.Info("✅ Config loaded successfully",
		zap.String("env", cfg.Server.Env),
		zap.String("version", version),
	)

	// A missing key does not stop the server: generate and score answer
	// with a configuration error per request instead.
	llm, err := services.NewChatCompleter(context.Background(), cfg.LLM)
	switch {
	case errors.Is(err, services.ErrMissingAPIKey):
		zlog.Warn("⚠️ API key not found, generate and score requests will fail",
			zap.String(logger.FieldProvider, cfg.LLM.Provider),
		)
	case err != nil:
		return fmt.Errorf("initializing llm client: %w", err)
	default:
		zlog.Info("✅ LLM client initialized",
			zap.String(logger.FieldProvider, llm.Provider()),
			zap.String(logger.FieldModel, llm.Model()),
		)
	}

	generator := services.NewQuestionGenerator(llm, zlog, cfg.Log.PreviewLength)
	evaluator := services.NewAnswerEvaluator(llm, zlog, cfg.Scorer.Concurrency, cfg.Log.PreviewLength)
	extractor := services.NewResumeExtractor()
	zlog.Info("✅ Services initialized successfully", zap.Int("scorer_concurrency", cfg.Scorer.Concurrency))

	server := handlers.NewApp(cfg, zlog, handlers.Handlers{
		Generate:   handlers.NewGenerateHandler(generator, zlog),
		Evaluation: handlers.NewEvaluationHandler(evaluator, zlog),
		Upload:     handlers.NewUploadHandler(extractor, zlog, int64(cfg.Server.BodyLimit)),
		Report:     handlers.NewReportHandler(zlog),
	})
	zlog.Info("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		if err := server.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info(fmt.Sprintf("🚀 Server running at http://localhost%s", addr))

	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
