package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trustable/internal/infra/telemetry"
)

// LoggingConfig configures logging wiring.
type LoggingConfig struct {
	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// Logging bundles the logger and its adjustable level.
type Logging struct {
	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// NewLogging constructs logging dependencies.
func NewLogging(cfg LoggingConfig) Logging {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	level := cfg.Level
	if level == (zap.AtomicLevel{}) {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return Logging{
		Logger: logger.With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceCore)),
		Level:  level,
	}
}

// NewLogger returns the logger from a Logging bundle.
func NewLogger(logging Logging) *zap.Logger {
	return logging.Logger
}

// NewLogLevel returns the level handle from a Logging bundle.
func NewLogLevel(logging Logging) zap.AtomicLevel {
	return logging.Level
}
