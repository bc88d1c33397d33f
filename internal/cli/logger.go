package cli

import (
	"io"
	"log/slog"
)

// newLogger creates a logger writing to w. It does not set the global logger.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}
