// Package logger provides structured logging on top of log/slog.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// ContextKey is the key type used to carry log fields through a context.
type ContextKey string

const (
	TraceIDKey     ContextKey = "trace_id"
	SpanIDKey      ContextKey = "span_id"
	RequestIDKey   ContextKey = "request_id"
	ProjectIDKey   ContextKey = "project_id"
	PageGroupIDKey ContextKey = "page_group_id"
)

var defaultLogger *slog.Logger

// Init configures the default logger.
func Init(level string, format string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the default logger, initializing it lazily.
func Default() *slog.Logger {
	if defaultLogger == nil {
		Init("info", "json")
	}
	return defaultLogger
}

// FromContext returns a logger annotated with any tracing fields present in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	logger := Default()

	if traceID := ctx.Value(TraceIDKey); traceID != nil {
		logger = logger.With("trace_id", traceID)
	}
	if spanID := ctx.Value(SpanIDKey); spanID != nil {
		logger = logger.With("span_id", spanID)
	}
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		logger = logger.With("request_id", requestID)
	}
	if projectID := ctx.Value(ProjectIDKey); projectID != nil {
		logger = logger.With("project_id", projectID)
	}
	if pageGroupID := ctx.Value(PageGroupIDKey); pageGroupID != nil {
		logger = logger.With("page_group_id", pageGroupID)
	}

	return logger
}

// WithContext stores a log field value in the context.
func WithContext(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

// Info logs at INFO level.
func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

// Debug logs at DEBUG level.
func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

// Error logs at ERROR level, appending err when non-nil.
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	FromContext(ctx).Error(msg, args...)
}

// Fatal logs at ERROR level and exits.
func Fatal(ctx context.Context, msg string, err error, args ...any) {
	Error(ctx, msg, err, args...)
	os.Exit(1)
}
