// Package logging builds the service's zap logger from configuration.
package logging

import (
	"go.uber.org/zap"

	"dealerops/internal/config"
)

// New builds a logger. Console format selects zap's development preset,
// anything else the production (JSON) preset. An unparseable level falls back
// to info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	return zapConfig.Build()
}
