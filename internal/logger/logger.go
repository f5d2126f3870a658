// Package logger provides the process-wide zap logger with optional
// rotated file output.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger. It discards everything until Init is called,
// so packages can log from tests without setup.
var Log = zap.NewNop()

// Sugar is the sugared form of Log.
var Sugar = Log.Sugar()

// Options configures Init.
type Options struct {
	Level   string // debug, info, warn, error
	Console bool   // write colored output to stdout
	File    FileConfig
}

// FileConfig holds rotated file output settings. An empty Path disables file output.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns rotation settings suited to a desktop session log.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}
}

// Init replaces the global logger.
func Init(opts Options) error {
	lvl := parseLevel(opts.Level)

	var cores []zapcore.Core

	if opts.Console {
		enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			NameKey:          "logger",
			MessageKey:       "msg",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
			EncodeLevel:      zapcore.CapitalColorLevelEncoder,
			EncodeName:       zapcore.FullNameEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl))
	}

	if opts.File.Path != "" {
		w := &lumberjack.Logger{
			Filename:   opts.File.Path,
			MaxSize:    opts.File.MaxSizeMB,
			MaxBackups: opts.File.MaxBackups,
			MaxAge:     opts.File.MaxAgeDays,
			Compress:   opts.File.Compress,
			LocalTime:  true,
		}

		enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
		})
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	if len(cores) == 0 {
		Log = zap.NewNop()
	} else {
		Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	}
	Sugar = Log.Sugar()
	return nil
}

// Named returns a child logger tagged with a component name.
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs at info level.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs at error level.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs and exits.
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}
