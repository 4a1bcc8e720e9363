// Package logger provides context-scoped structured logging on top of zap.
// Request handlers and scan loops attach fields (request ID, order ID) to the
// context; everything downstream logs through Get(ctx).
package logger

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment configures a verbose, human-readable logger.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment configures a JSON logger at info level.
	ProductionEnvironment = "production"
)

var (
	// defaultLogger is used when no logger is found in context.
	defaultLogger = zap.NewNop() //nolint: gochecknoglobals
	// level is shared by every logger built by Setup so SetLevel applies to
	// loggers already stored in contexts.
	level = zap.NewAtomicLevel() //nolint: gochecknoglobals
)

// Setup initializes the default logger based on the environment. Production
// logs JSON at info level, anything else logs console output at debug level.
func Setup(environment string) {
	cfg := zap.NewDevelopmentConfig()
	if environment == ProductionEnvironment {
		cfg = zap.NewProductionConfig()
	}
	level.SetLevel(cfg.Level.Level())
	cfg.Level = level

	l, err := cfg.Build()
	if err != nil {
		return
	}

	defaultLogger = l.With(zap.String("service", "ordersync"))
}

// SetLevel overrides the level picked by Setup, for example "debug" to see
// every upstream call of a production scan.
func SetLevel(text string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(text)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", text, err)
	}
	level.SetLevel(l)

	return nil
}

type key struct{}

// Get retrieves a logger from the provided context, falling back to the
// default logger.
func Get(ctx context.Context) *zap.Logger {
	if logger, _ := ctx.Value(key{}).(*zap.Logger); logger != nil {
		return logger
	}

	return defaultLogger
}

// WithLogger returns a context carrying the provided logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields returns a context whose logger includes the given fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Slog returns a *log.Logger that writes through the context logger at the
// given level. It is used for stdlib components such as http.Server.ErrorLog.
func Slog(ctx context.Context, level slog.Level) *log.Logger {
	return slog.NewLogLogger(zapslog.NewHandler(Get(ctx).Core()), level)
}

// IsDebug checks if the logger in the context is enabled at debug level.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zap.DebugLevel)
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

// Fatal logs a message at fatal level with the given fields.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
