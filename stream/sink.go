package stream

import (
	"context"
	"log/slog"
)

// LogSink writes every change to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Consume logs change. It never fails.
func (s *LogSink) Consume(ctx context.Context, change Change) error {
	attrs := []any{
		"eventID", change.EventID,
		"kind", change.Kind,
		"id", change.ID,
	}
	if change.Old != nil {
		attrs = append(attrs, "oldName", change.Old.Name)
	}
	if change.New != nil {
		attrs = append(attrs,
			"newName", change.New.Name,
			"updatedAt", change.New.UpdatedAt,
		)
	}
	s.logger.InfoContext(ctx, "item changed", attrs...)
	return nil
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, change Change) error

// Consume calls f.
func (f SinkFunc) Consume(ctx context.Context, change Change) error {
	return f(ctx, change)
}
