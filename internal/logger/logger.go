// Package logger provides the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop().Sugar()

// Initialize configures the process logger. Debug mode switches to the
// development encoder and lowers the level.
func Initialize(debug bool) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap's production config cannot fail to build; keep the nop
		// logger if it somehow does.
		return
	}
	log = built.Sugar()
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) { log.Debugf(format, args...) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) { log.Infof(format, args...) }

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) { log.Warnf(format, args...) }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) { log.Errorf(format, args...) }

// Fatalf logs a formatted message and exits.
func Fatalf(format string, args ...any) { log.Fatalf(format, args...) }

// Infow logs an info message with structured key-value pairs.
func Infow(msg string, keysAndValues ...any) { log.Infow(msg, keysAndValues...) }

// Sync flushes buffered log entries.
func Sync() error { return log.Sync() }
