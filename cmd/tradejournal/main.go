package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/newthinker/tradejournal/internal/app"
	"github.com/newthinker/tradejournal/internal/config"
	"github.com/newthinker/tradejournal/internal/logger"
	"github.com/newthinker/tradejournal/internal/tracing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool

	// shutdownTracing flushes spans; setup replaces it when tracing is on.
	shutdownTracing tracing.Shutdown = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "Trade journal with derived metrics and performance analytics",
	Long: `tradejournal records trades, derives position size, reward-to-risk and P&L
on every write, and reports win rates, breakdowns, equity and behavioral scores.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config, or falls back to defaults, and validates.
func loadConfig() (*config.Config, error) {
	cfg := config.Defaults()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// setup loads config, builds the logger and wires the application.
func setup(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.NewWithConfig(logger.Config{
		Development: debug,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfgFile == "" {
		log.Debug("no config file specified, using defaults")
	}

	shutdown, err := tracing.Setup(cfg.Tracing, "tradejournal", Version)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	shutdownTracing = shutdown

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		_ = shutdown(ctx)
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

// teardown closes the store, flushes spans and flushes the logger.
func teardown(a *app.App) {
	if err := a.Close(); err != nil {
		a.Logger().Warn("closing store", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		a.Logger().Warn("flushing traces", zap.Error(err))
	}
	_ = a.Logger().Sync()
}
