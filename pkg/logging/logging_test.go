package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" Error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewStructuredLogger(t *testing.T) {
	logger := NewStructuredLogger("gpuinfo", "v1.0.0", "debug")
	assert.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	quiet := NewStructuredLogger("gpuinfo", "v1.0.0", "error")
	assert.False(t, quiet.Enabled(t.Context(), slog.LevelInfo))
}

func TestSetDefaultStructuredLoggerWithLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	SetDefaultStructuredLoggerWithLevel("gpuinfo", "v1.0.0", "warn")
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
}

func TestSetDefaultStructuredLoggerEnvFallback(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	t.Setenv(EnvLogLevel, "error")
	SetDefaultStructuredLoggerWithLevel("gpuinfo", "v1.0.0", "")
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
}
