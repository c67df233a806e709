package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON structured logger writing to stdout. The level defaults
// to info; set CLEARGATE_LOG_LEVEL=debug for per-evaluation detail.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("CLEARGATE_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
