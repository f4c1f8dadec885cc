package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/shrdlite-go/internal/config"
)

func TestNew_JSONFormat_InfoLevel(t *testing.T) {
	l := New(config.LoggingConfig{Level: "info", Format: "json"})
	assert.NotNil(t, l)
	assert.NotNil(t, l.logger)
}

func TestNew_TextFormat_DebugLevel(t *testing.T) {
	l := New(config.LoggingConfig{Level: "debug", Format: "text"})
	assert.NotNil(t, l)
	assert.True(t, l.logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNew_AllLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}

func TestWith_AttachesAttributesWithoutMutatingOriginal(t *testing.T) {
	base := New(config.LoggingConfig{Level: "info", Format: "text"})
	withRunID := base.With("run_id", "abc-123")

	assert.NotSame(t, base, withRunID)
	assert.NotNil(t, withRunID.logger)
}

func TestDefault_ReturnsNonNilAndIsReplaceable(t *testing.T) {
	original := Default()
	assert.NotNil(t, original)

	replacement := New(config.LoggingConfig{Level: "error", Format: "json"})
	SetDefault(replacement)
	assert.Same(t, replacement, Default())

	SetDefault(original)
}
