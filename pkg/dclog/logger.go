// Copyright 2025 SGNL.ai, Inc.

// Package dclog wraps zap with the sensible production defaults the teacher
// repo uses across every adapter: JSON encoding, nanosecond RFC3339
// timestamps, and a level parsed from Config.Level.
package dclog

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap.Logger based on the provided configuration.
func New(cfg Config, zapOpts ...zap.Option) *zap.Logger {
	logLevel, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		log.Fatal("dclog: failed to parse log level")
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zapCfg.EncoderConfig = encoderCfg
	zapCfg.Level = zap.NewAtomicLevelAt(logLevel)

	if cfg.ServiceName != "" {
		zapCfg.InitialFields = map[string]any{"service": cfg.ServiceName}
	}

	logger, err := zapCfg.Build(zapOpts...)
	if err != nil {
		log.Fatalf("dclog: failed to initialize zap logger: %v", err)
	}

	if _, err := zap.RedirectStdLogAt(logger, logLevel); err != nil {
		log.Fatalf("dclog: failed to redirect std logger: %v", err)
	}

	return logger
}

// Nop returns a logger that discards every entry, for use as a Client
// default when the caller supplies none.
func Nop() *zap.Logger {
	return zap.NewNop()
}
