// Package logger provides structured logging for the planning pipeline,
// a thin wrapper over log/slog (the teacher's own logger is the same
// kind of wrapper, so this stays on slog rather than reaching for a
// third-party logging library).
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/smilemakc/shrdlite-go/internal/config"
)

// Logger wraps slog.Logger so callers can attach run-scoped attributes
// (run ID, command text) without threading *slog.Logger through every
// package signature.
type Logger struct {
	logger *slog.Logger
}

// New builds a Logger from cfg: "debug" level turns on source locations,
// "json" format switches from text to structured JSON output.
func New(cfg config.LoggingConfig) *Logger {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.Level == "debug"}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

// With returns a Logger carrying the given key/value attributes on every
// subsequent call, e.g. logger.With("run_id", id).
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.logger.Error(msg, args...) }

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...interface{}) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...interface{}) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var defaultLogger = New(config.LoggingConfig{Level: "info", Format: "text"})

// Default returns the package-level logger used by callers that haven't
// built their own (e.g. the CLI harness before config is loaded).
func Default() *Logger { return defaultLogger }

// SetDefault replaces the package-level logger, typically once at
// startup after config.Load succeeds.
func SetDefault(l *Logger) { defaultLogger = l }
