package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Span struct {
	TraceID   string            `json:"trace_id"`
	SpanID    string            `json:"span_id"`
	ParentID  string            `json:"parent_id,omitempty"`
	Operation string            `json:"operation"`
	StartTime time.Time         `json:"start_time"`
	EndTime   *time.Time        `json:"end_time,omitempty"`
	Duration  *time.Duration    `json:"duration,omitempty"`
	Tags      map[string]string `json:"tags,omitempty"`
	Status    SpanStatus        `json:"status"`
	Error     string            `json:"error,omitempty"`
}

type SpanStatus string

const (
	SpanStatusOK    SpanStatus = "OK"
	SpanStatusError SpanStatus = "ERROR"
)

type spanContextKey struct{}

// StartSpan opens a span under the one already in ctx, if any.
func StartSpan(ctx context.Context, operation string) (context.Context, *Span) {
	span := &Span{
		TraceID:   uuid.NewString(),
		SpanID:    uuid.NewString(),
		Operation: operation,
		StartTime: time.Now(),
		Status:    SpanStatusOK,
		Tags:      make(map[string]string),
	}

	if parent := GetSpan(ctx); parent != nil {
		span.ParentID = parent.SpanID
		span.TraceID = parent.TraceID
	}

	return context.WithValue(ctx, spanContextKey{}, span), span
}

func (s *Span) Finish() {
	now := time.Now()
	s.EndTime = &now
	duration := now.Sub(s.StartTime)
	s.Duration = &duration
}

// FinishAndLog closes the span and emits it at debug level, or at warn level
// when it carries an error.
func (s *Span) FinishAndLog(logger *slog.Logger) {
	s.Finish()

	level := slog.LevelDebug
	if s.Status == SpanStatusError {
		level = slog.LevelWarn
	}
	logger.Log(context.Background(), level, "span finished",
		"operation", s.Operation,
		"trace_id", s.TraceID,
		"span_id", s.SpanID,
		"parent_id", s.ParentID,
		"duration", *s.Duration,
		"status", s.Status,
		"tags", s.Tags,
		"error", s.Error,
	)
}

func (s *Span) SetTag(key, value string) {
	if s.Tags == nil {
		s.Tags = make(map[string]string)
	}
	s.Tags[key] = value
}

func (s *Span) SetError(err error) {
	s.Status = SpanStatusError
	if err != nil {
		s.Error = err.Error()
	}
}

func GetSpan(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanContextKey{}).(*Span); ok {
		return span
	}
	return nil
}
