package logging

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Common field keys shared across components.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldFrame     = "frame"
	FieldStage     = "stage"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
	FieldAlert     = "alert"
)

// Field is an alias for slog.Attr to keep call sites concise.
type Field = slog.Attr

// String constructs a string attribute.
func String(key, value string) slog.Attr { return slog.String(key, value) }

// Int constructs an int attribute.
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

// Float64 constructs a float attribute.
func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

// Bool constructs a bool attribute.
func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

// Duration constructs a duration attribute.
func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Any constructs an attribute with an arbitrary value.
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error constructs an error attribute, omitting nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Args converts attributes into variadic arguments accepted by slog.
func Args(attrs ...slog.Attr) []any {
	out := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Equal(slog.Attr{}) {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// NewNop returns a logger that discards all output.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 8}))
}

// NewComponentLogger returns a child logger tagged with the component name.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if component == "" {
		return logger
	}
	return logger.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning with event context and a remediation hint.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...slog.Attr) {
	logWithEvent(logger, slog.LevelWarn, msg, eventType, attrs)
}

// ErrorWithContext logs an error with event context and a remediation hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...slog.Attr) {
	logWithEvent(logger, slog.LevelError, msg, eventType, attrs)
}

func logWithEvent(logger *slog.Logger, level slog.Level, msg, eventType string, attrs []slog.Attr) {
	if logger == nil {
		return
	}
	all := make([]slog.Attr, 0, len(attrs)+1)
	if eventType != "" {
		all = append(all, String(FieldEventType, eventType))
	}
	all = append(all, attrs...)
	logger.Log(context.Background(), level, msg, Args(all...)...)
}
