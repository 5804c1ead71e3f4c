package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/phanxgames/sprout/internal/config"
)

// Init builds a logger from cfg, writing to stderr, and installs it as the
// slog default.
func Init(cfg config.LoggingConfig) *slog.Logger {
	logger := New(os.Stderr, cfg)
	slog.SetDefault(logger)

	logger.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Level,
		"format", cfg.Format,
	)
	return logger
}

// New builds a text or JSON logger writing to w.
func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
