// Package logger defines the structured logging interface used across the
// Riskboard service. The production implementation (zap-backed, trace-aware)
// lives in internal/infrastructure/monitoring.
package logger

import (
	"context"
	"time"
)

// Logger is the context-aware structured logging interface.
type Logger interface {
	// Debug logs a debug message.
	Debug(ctx context.Context, message string, fields ...Field)

	// Info logs an informational message.
	Info(ctx context.Context, message string, fields ...Field)

	// Warn logs a warning message.
	Warn(ctx context.Context, message string, fields ...Field)

	// Error logs an error message with its cause.
	Error(ctx context.Context, message string, err error, fields ...Field)

	// Fatal logs a fatal message and exits the process.
	Fatal(ctx context.Context, message string, err error, fields ...Field)

	// WithComponent returns a logger scoped to a component name.
	WithComponent(component string) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field rendered as a string.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Time creates a time field rendered as RFC3339.
func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value.Format(time.RFC3339)}
}

// Error creates an error field.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field with an arbitrary value.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}
