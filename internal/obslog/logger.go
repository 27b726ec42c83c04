// Package obslog wires the zap logger used across the kernel.
package obslog

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerContextKey struct{}

var (
	globalLogger *zap.Logger
	loggerKey    = loggerContextKey{}
)

// Options controls logger construction.
type Options struct {
	Level   string // debug|info|warn|error
	LogFile string // optional path; empty disables file sink
}

// Init builds a zap.Logger with a console core plus an optional JSON file
// core, and returns it along with a cleanup function that flushes both.
func Init(opts Options) (*zap.Logger, func(), error) {
	level := parseLevel(opts.Level)

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format("2006-01-02 15:04:05.000"))
	}
	encoderCfg.TimeKey = "timestamp"

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		zapcore.Level(level),
	)
	cores := []zapcore.Core{consoleCore}

	var logFile *os.File
	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		file, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		logFile = file
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(file),
			zapcore.Level(level),
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	globalLogger = logger

	cleanup := func() {
		_ = logger.Sync()
		if logFile != nil {
			_ = logFile.Close()
		}
	}
	return logger, cleanup, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger returns the global logger, constructing a development logger if
// Init has not been called yet (used by tests).
func Logger() *zap.Logger {
	if globalLogger != nil {
		return globalLogger
	}
	logger, _ := zap.NewDevelopment()
	globalLogger = logger
	return logger
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		logger = Logger()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger stored by WithContext, or the global one.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return Logger()
	}
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return Logger()
}
