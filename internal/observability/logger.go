package observability

import (
	"log/slog"
	"os"

	"github.com/PSmerkol/AccordPreprocTools/internal/config"
)

// NewLogger builds a slog.Logger whose level and encoding follow the
// settings value, matching the level/format knobs the teacher exposes
// through its own Config.
func NewLogger(s *config.Settings) *slog.Logger {
	var level slog.Level
	switch s.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if s.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
