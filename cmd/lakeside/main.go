// Package main is the entry point for the Lakeside scene viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/lakeside/internal/app"
	"github.com/Faultbox/lakeside/internal/config"
	"github.com/Faultbox/lakeside/internal/logger"
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
	opts := logger.Options{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
		opts.File.MaxSizeMB = cfg.Logging.MaxSizeMB
		opts.File.MaxBackups = cfg.Logging.MaxBackups
		opts.File.MaxAgeDays = cfg.Logging.MaxAgeDays
	}
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Lakeside ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
