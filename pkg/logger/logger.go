// Package logger provides structured logging on top of zap. Loggers travel
// through the context so that every layer (use cases, storage, workers) logs
// with the fields attached by its callers.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects verbose, human-readable console output.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment selects JSON output at info level.
	ProductionEnvironment = "production"
)

// defaultLogger is the package-level logger instance used when no logger is found in context.
var defaultLogger *zap.Logger //nolint: gochecknoglobals

// Setup initializes the default logger based on the environment
// ("development" or "production").
func Setup(environment string) {
	if environment == ProductionEnvironment {
		defaultLogger, _ = zap.NewProduction()

		return
	}

	defaultLogger, _ = zap.NewDevelopment()
}

// key is a custom type used as a context key for storing and retrieving logger instances.
type key struct{}

// Get retrieves the logger attached to ctx, falling back to the default
// logger when none is attached.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// WithLogger creates a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields creates a new context whose logger carries the extra fields.
// All log calls made through that context include them.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Sync flushes any buffered log entries on the context's logger.
func Sync(ctx context.Context) {
	_ = Get(ctx).Sync()
}

// Debug logs a message at debug level with the given fields.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs a message at info level with the given fields.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs a message at warn level with the given fields.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs a message at error level with the given fields.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs a message at fatal level with the given fields and exits.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
