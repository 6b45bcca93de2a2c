// Package logger wraps zap so binaries can build a leveled logger once and
// hand the *zap.Logger down to the components they wire together.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ZapLogger holds the process logger. Log is a no-op logger until Init succeeds.
type ZapLogger struct {
	Log *zap.Logger
}

// New returns a ZapLogger backed by a no-op logger.
func New() *ZapLogger {
	return &ZapLogger{Log: zap.NewNop()}
}

// Init replaces Log with a production JSON logger at the given level
// ("debug", "info", "warn", "error", ...).
func (l *ZapLogger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = zl
	return nil
}
