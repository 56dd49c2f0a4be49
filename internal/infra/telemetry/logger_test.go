package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLogger_AtomicLevel(t *testing.T) {
	logger, level, err := NewLogger(LoggerOptions{Level: "warn", Format: LogFormatConsole})
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	level.SetLevel(zapcore.DebugLevel)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_RejectsUnknownFormat(t *testing.T) {
	_, _, err := NewLogger(LoggerOptions{Format: "xml"})
	require.Error(t, err)
}
