// Package logger builds the application's zap logger. The terminal belongs
// to the UI, so logs only go to a file when one is configured.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // empty disables logging
}

// Setup creates the logger described by cfg and installs it as zap's global
// logger. The returned func flushes and closes the log file.
func Setup(cfg Config) (*zap.Logger, func(), error) {
	if cfg.File == "" {
		return zap.NewNop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
	}

	var enc zapcore.Encoder
	switch cfg.Format {
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(f), ParseLevel(cfg.Level, zapcore.InfoLevel))
	log := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(log)

	return log, func() {
		_ = log.Sync()
		_ = f.Close()
	}, nil
}

// ParseLevel returns the level named by s, or def if s is not a level name.
func ParseLevel(s string, def zapcore.Level) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return def
	}
	return level
}
