// Package main is the entry point for the Vitrail installation.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/atelier-lux/vitrail/internal/app"
	"github.com/atelier-lux/vitrail/internal/config"
	"github.com/atelier-lux/vitrail/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Vitrail ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create installation", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("installation error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("closed normally")
}
