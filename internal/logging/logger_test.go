package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zkbugbounty/bountydeploy/internal/domain/config"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		env   string
		want  slog.Level
	}{
		{"default", false, "", slog.LevelWarn},
		{"debug flag", true, "", slog.LevelDebug},
		{"debug flag wins over env", true, "error", slog.LevelDebug},
		{"env info", false, "info", slog.LevelInfo},
		{"env upper case", false, "DEBUG", slog.LevelDebug},
		{"env error", false, "error", slog.LevelError},
		{"env unknown", false, "verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOUNTYDEPLOY_LOG_LEVEL", tt.env)
			assert.Equal(t, tt.want, levelFor(&config.RuntimeConfig{Debug: tt.debug}))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("drops time outside debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, slog.LevelInfo)

		log.Debug("hidden")
		log.Info("deploying", "contract", "Hello")

		assert.Equal(t, "level=INFO msg=deploying contract=Hello\n", buf.String())
	})

	t.Run("keeps time in debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, slog.LevelDebug)

		log.Debug("connecting")

		assert.Contains(t, buf.String(), "time=")
		assert.Contains(t, buf.String(), "level=DEBUG msg=connecting")
	})
}
