// Package logging builds the zap logger shared by the server and the CLI.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger for the given environment.  "dev" gets zap's
// human-readable development encoder, anything else the JSON production
// encoder.  An unknown level name falls back to info.
func New(env, level string) *zap.Logger {
	var config zap.Config
	if env == "dev" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	logger, err := config.Build()
	if err != nil {
		// Fallback to a no-op logger if configuration fails
		return zap.NewNop()
	}
	return logger
}

func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
