package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when neither the command line nor the config file sets a level.
const DefaultLevel = "info"

var global *zap.SugaredLogger

// Init sets the process-wide logger returned by Logger.
func Init(z *zap.SugaredLogger) { global = z }

// Logger returns the process-wide logger, or a no-op logger when Init has not been called.
func Logger() *zap.SugaredLogger {
	if global == nil {
		return zap.NewNop().Sugar()
	}
	return global
}

// ParseLevel maps a level name to a zap level. An empty name yields DefaultLevel.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New builds a console logger writing to stderr at the given level.
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core, zap.AddCaller()).Sugar(), nil
}

// Setup builds a logger for level, installs it globally and returns it.
func Setup(level string) (*zap.SugaredLogger, error) {
	l, err := New(level)
	if err != nil {
		return nil, err
	}
	Init(l)
	zap.ReplaceGlobals(l.Desugar())
	return l, nil
}
