// Package app wires the configured store, services and optional
// collaborators into one object the commands share.
package app

import (
	"context"
	"fmt"

	"github.com/newthinker/tradejournal/internal/config"
	"github.com/newthinker/tradejournal/internal/importer"
	"github.com/newthinker/tradejournal/internal/journal"
	"github.com/newthinker/tradejournal/internal/llm/factory"
	"github.com/newthinker/tradejournal/internal/metrics"
	"github.com/newthinker/tradejournal/internal/review"
	"github.com/newthinker/tradejournal/internal/storage/archive"
	"github.com/newthinker/tradejournal/internal/storage/trade"
	"go.uber.org/zap"
)

// App is the main application orchestrator
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Registry

	store    trade.Store
	journal  *journal.Service
	importer *importer.Importer
	archiver *archive.ReportArchiver
	coach    *review.Coach
}

// New opens the configured store and builds every collaborator cfg enables.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: logger}

	if cfg.Metrics.Enabled {
		a.metrics = metrics.NewRegistry()
	}

	store, err := trade.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening trade store: %w", err)
	}
	a.store = store

	// Typed-nil registries must not reach the Recorder interfaces.
	var journalRec journal.Recorder
	var importRec importer.Recorder
	var archiveRec archive.Recorder
	if a.metrics != nil {
		journalRec, importRec, archiveRec = a.metrics, a.metrics, a.metrics
	}

	a.journal = journal.NewService(store, logger.Named("journal"), journalRec)
	a.importer = importer.New(a.journal, logger.Named("importer"), importRec)

	if cfg.Archive.Type != "" || cfg.Archive.Path != "" {
		storage, err := archive.Open(cfg.Archive)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("opening archive: %w", err)
		}
		a.archiver = archive.NewReportArchiver(storage, logger.Named("archive"), archiveRec)
	}

	if cfg.Review.Enabled {
		provider, err := factory.New(cfg.LLM)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("creating LLM provider: %w", err)
		}
		a.coach = review.NewCoach(provider, logger.Named("review"), review.Options{
			MaxTokens:         cfg.Review.MaxTokens,
			RequestsPerMinute: cfg.Review.RequestsPerMinute,
		})
	}

	logger.Debug("application wired",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("archive", cfg.Archive.Type),
		zap.Bool("review", a.coach != nil),
		zap.Bool("metrics", a.metrics != nil),
	)
	return a, nil
}

func (a *App) Config() *config.Config       { return a.cfg }
func (a *App) Logger() *zap.Logger          { return a.logger }
func (a *App) Journal() *journal.Service    { return a.journal }
func (a *App) Importer() *importer.Importer { return a.importer }

// Metrics is nil when metrics are disabled.
func (a *App) Metrics() *metrics.Registry { return a.metrics }

// Archiver is nil when no archive is configured.
func (a *App) Archiver() *archive.ReportArchiver { return a.archiver }

// Coach is nil unless reviews are enabled.
func (a *App) Coach() *review.Coach { return a.coach }

// Close releases the trade store.
func (a *App) Close() error {
	return a.store.Close()
}
