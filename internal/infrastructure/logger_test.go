package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmark/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	logPath := filepath.Join(t.TempDir(), "logs", "finmark.log")
	logger, err := InitializeLogger(config.LoggingConfig{
		Level:    "info",
		Output:   "file",
		FilePath: logPath,
	})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("pipeline started", slog.String("input", "raw.csv"))
	require.NoError(t, CloseLogFile())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"pipeline started"`)
	assert.Contains(t, string(data), `"input":"raw.csv"`)
}

func TestInitializeLogger_OnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "console"})
	require.NoError(t, err)

	second, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "console"})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "run-123")
	assert.Equal(t, "run-123", GetTraceID(ctx))

	// EnsureTraceID keeps an existing ID
	assert.Equal(t, "run-123", GetTraceID(EnsureTraceID(ctx)))

	// and generates one when missing
	generated := GetTraceID(EnsureTraceID(context.Background()))
	assert.NotEmpty(t, generated)
}
