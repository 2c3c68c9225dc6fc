// Package logger builds configured slog.Logger instances with sane
// defaults: JSON at info level for production, text at debug level for
// development.
package logger
