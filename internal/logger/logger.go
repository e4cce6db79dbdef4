// Package logger provides structured logging for the server paths.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup creates a JSON slog logger at the configured level and installs it
// as the process default. Unknown levels fall back to info.
func Setup(logLevel string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
