package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/pixgen-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		enabledLevel slog.Level
	}{
		{name: "debug_level", logLevel: "debug", enabledLevel: slog.LevelDebug},
		{name: "info_level", logLevel: "info", enabledLevel: slog.LevelInfo},
		{name: "warn_level", logLevel: "warn", enabledLevel: slog.LevelWarn},
		{name: "error_level", logLevel: "error", enabledLevel: slog.LevelError},
		{name: "case_insensitive", logLevel: "WARN", enabledLevel: slog.LevelWarn},
		{name: "invalid_falls_back_to_info", logLevel: "verbose", enabledLevel: slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			require.NotNil(t, logger)

			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tc.enabledLevel))
			if tc.enabledLevel > slog.LevelDebug {
				assert.False(t, logger.Enabled(ctx, tc.enabledLevel-4),
					"levels below the configured one should be disabled")
			}
		})
	}
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	logger := Setup(config.ServerConfig{Port: 8080, LogLevel: "error"})
	assert.Equal(t, logger, slog.Default())
}
