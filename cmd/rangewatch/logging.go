package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newZapLogger builds a console logger on stderr whose level can be
// changed after construction.
func newZapLogger(level string) (*zap.Logger, zap.AtomicLevel, error) {
	atomic := zap.NewAtomicLevel()
	if err := setLevel(atomic, level); err != nil {
		return nil, atomic, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.Level = atomic
	zcfg.DisableStacktrace = true
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	zl, err := zcfg.Build()
	if err != nil {
		return nil, atomic, fmt.Errorf("building logger: %w", err)
	}
	return zl, atomic, nil
}

func newLogr(zl *zap.Logger) logr.Logger {
	return zapr.NewLogger(zl).WithName("rangewatch")
}

// setLevel applies a level name such as "debug" or "warn".
func setLevel(atomic zap.AtomicLevel, name string) error {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	atomic.SetLevel(level)
	return nil
}
