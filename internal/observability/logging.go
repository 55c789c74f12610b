// Package observability provides structured logging construction for the
// engine and its tooling.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/emblem/internal/config"
)

// NewLogger creates a structured logger from the given logging
// configuration. Sampling is disabled in json mode and stack traces in
// console mode: exchange resolution emits one debug line per roll and
// strike, and every one of them is kept.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
		zapCfg.Sampling = nil
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewEncounterLogger returns a child of base tagged with both combatant
// IDs, so every roll and strike line belonging to one exchange carries
// the pairing.
//
// Precondition: base must not be nil.
func NewEncounterLogger(base *zap.Logger, attackerID, defenderID string) *zap.Logger {
	return base.Named("combat").With(
		zap.String("exchange_attacker", attackerID),
		zap.String("exchange_defender", defenderID),
	)
}
