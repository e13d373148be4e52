package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"seller-report/internal/config"
)

const serviceName = "seller-report"

// NewLogger builds the process logger. Output format and level come from cfg.
func NewLogger(w io.Writer, cfg config.LoggerConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLogLevel(cfg.Level),
		AddSource: true,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("service", serviceName)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type contextKey string

const RequestIDKey contextKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// RequestLogger returns logger annotated with the request and trace ids in ctx.
func RequestLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := GetRequestID(ctx); id != "" {
		logger = logger.With("request_id", id)
	}
	if span := GetSpan(ctx); span != nil {
		logger = logger.With("trace_id", span.TraceID)
	}
	return logger
}
