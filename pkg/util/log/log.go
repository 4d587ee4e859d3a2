// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements context-aware logging on top of a zap core.
// Every entry is prefixed with the logtags carried by the context.
package log

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level specifies a level of verbosity for V logs.
type Level int32

var logger atomic.Pointer[zap.Logger]

var verbosity atomic.Int32

func init() {
	// Library code stays quiet until a caller installs its own sink.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// SetLogger replaces the sink used by this package. The returned
// function restores the previous sink.
func SetLogger(l *zap.Logger) (restore func()) {
	prev := logger.Swap(l)
	return func() { logger.Store(prev) }
}

// SetVerbosity sets the level at and below which V and VEventf are
// enabled. The returned function restores the previous level.
func SetVerbosity(level Level) (restore func()) {
	prev := verbosity.Swap(int32(level))
	return func() { verbosity.Store(prev) }
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level Level) bool {
	return level <= Level(verbosity.Load())
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, zapcore.InfoLevel, 1, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, zapcore.WarnLevel, 1, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, zapcore.ErrorLevel, 1, format, args)
}

// VEventf logs at INFO severity when the verbosity is at least the given
// level.
func VEventf(ctx context.Context, level Level, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, zapcore.InfoLevel, 1, format, args)
	}
}

// Sync flushes any buffered entries.
func Sync() error {
	return logger.Load().Sync()
}

func zapCallerSkip(depth int) zap.Option {
	return zap.AddCallerSkip(depth)
}
