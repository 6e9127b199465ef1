package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init initializes the global logger with the specified verbose level
func Init(verbose bool) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	zap.ReplaceGlobals(zap.New(core))
}

// Close flushes any buffered log entries
func Close() {
	_ = zap.L().Sync()
}

// Debug logs a debug message with key-value pairs
func Debug(msg string, args ...any) {
	zap.S().Debugw(msg, args...)
}

// Info logs an info message with key-value pairs
func Info(msg string, args ...any) {
	zap.S().Infow(msg, args...)
}

// Warn logs a warning message with key-value pairs
func Warn(msg string, args ...any) {
	zap.S().Warnw(msg, args...)
}

// Error logs an error message with key-value pairs
func Error(msg string, args ...any) {
	zap.S().Errorw(msg, args...)
}
