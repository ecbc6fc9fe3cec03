package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/wire"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a stderr logger. The level comes from --debug or
// BOUNTYDEPLOY_LOG_LEVEL; the default only shows warnings so stdout and
// stderr stay clean for scripting.
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, levelFor(cfg))
}

func levelFor(cfg *config.RuntimeConfig) slog.Level {
	if cfg != nil && cfg.Debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(os.Getenv("BOUNTYDEPLOY_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop time outside debug mode for cleaner output
			if a.Key == slog.TimeKey && level > slog.LevelDebug {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
