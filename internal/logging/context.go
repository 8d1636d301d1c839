package logging

import (
	"context"
	"log/slog"

	"faramir/internal/services"
)

// ContextFields extracts structured logging fields from the context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if runID, ok := services.RunIDFromContext(ctx); ok && runID != "" {
		fields = append(fields, String(FieldRunID, runID))
	}
	if frame, ok := services.FrameFromContext(ctx); ok {
		fields = append(fields, Int(FieldFrame, frame))
	}
	if stage, ok := services.StageFromContext(ctx); ok && stage != "" {
		fields = append(fields, String(FieldStage, stage))
	}
	return fields
}

// WithContext decorates the logger with fields derived from the context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
