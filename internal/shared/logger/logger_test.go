package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/config"
)

func TestInitSetsLevelFromConfig(t *testing.T) {
	require.NoError(t, Init(&config.LoggerConfig{Level: "debug", Format: "json"}))
	require.NotNil(t, Logger)
	assert.True(t, Logger.Enabled(context.Background(), slog.LevelDebug))

	require.NoError(t, Init(&config.LoggerConfig{Level: "error", Format: "json"}))
	assert.False(t, Logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, Logger.Enabled(context.Background(), slog.LevelError))
}

func TestInitDefaultsToInfo(t *testing.T) {
	require.NoError(t, Init(&config.LoggerConfig{Format: "console"}))
	assert.False(t, Logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, Logger.Enabled(context.Background(), slog.LevelInfo))
}
