// Package logger configures the application's slog-based JSON logging and
// carries request-scoped loggers through context.
package logger
