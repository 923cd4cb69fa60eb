package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-backend/internal/config"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
		{" WARN ", slog.LevelWarn},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLevel(tc.level), "level %q", tc.level)
	}
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		logger := NewLogger(config.LogConfig{Level: "info", Format: format})
		require.NotNil(t, logger)
		assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
		assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	}
}
