package logger

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"alfredoptarigan/interview-prep/internal/config"
)

const (
	FieldProvider      = "llm_provider"
	FieldModel         = "llm_model"
	FieldRequestID     = "request_id"
	FieldQuestionIndex = "question_index"

	serviceName = "interview-prep"
)

// New builds the process logger. JSON output is meant for the server behind
// a log collector; the console encoder is for the terminal wizard and local
// runs.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if cfg.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	encoding := "json"
	if !cfg.JSON {
		encoding = "console"
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zcfg := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: !cfg.Debug,
	}
	if cfg.JSON {
		zcfg.InitialFields = map[string]any{"service": serviceName}
	}

	return zcfg.Build()
}

// WithLLM attaches provider and model fields, skipping empty values.
// A nil logger is replaced by a no-op one.
func WithLLM(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := make([]zap.Field, 0, 2)
	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// Preview cuts résumé and reply text down to at most limit runes for debug
// logs, marking the cut with "...". A non-positive limit logs nothing.
func Preview(text string, limit int) string {
	if limit <= 0 {
		return ""
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	cut := 0
	for i := 0; i < limit; i++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return text[:cut] + "..."
}
