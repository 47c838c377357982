// Package journal is the write and read path for journal trades: it derives
// metrics on every write and runs the analytics engine on reads.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/tradejournal/internal/analytics"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/storage/trade"
	"github.com/newthinker/tradejournal/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Recorder receives service metrics. *metrics.Registry satisfies it.
type Recorder interface {
	RecordTradeSaved(op, result string)
	RecordDerivation(computed bool)
	RecordReport(trades int, duration float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordTradeSaved(string, string) {}
func (nopRecorder) RecordDerivation(bool)           {}
func (nopRecorder) RecordReport(int, float64)       {}

// Service creates, updates and analyses trades over a Store.
type Service struct {
	store   trade.Store
	log     *zap.Logger
	metrics Recorder
	now     func() time.Time
}

// NewService creates a journal service. log and rec may be nil.
func NewService(store trade.Store, log *zap.Logger, rec Recorder) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{
		store:   store,
		log:     log,
		metrics: rec,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create derives and stores a new trade.
func (s *Service) Create(ctx context.Context, in Input) (_ *core.Trade, err error) {
	ctx, span := tracing.Start(ctx, "journal.Create", attribute.String("pair", in.Pair))
	defer func() { tracing.End(span, err) }()
	log := s.log.With(tracing.Fields(ctx)...)

	if err := in.Validate(); err != nil {
		s.metrics.RecordTradeSaved("create", "invalid")
		return nil, err
	}

	now := s.now()
	t := core.Trade{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	out := in.apply(&t)
	s.metrics.RecordDerivation(out.Computed())
	span.SetAttributes(attribute.String("trade_id", t.ID))

	if err := s.store.Save(ctx, t); err != nil {
		s.metrics.RecordTradeSaved("create", "error")
		log.Error("failed to save trade", zap.String("pair", t.Pair), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordTradeSaved("create", "success")
	log.Info("trade created",
		zap.String("trade_id", t.ID),
		zap.String("pair", t.Pair),
		zap.String("result", string(t.Result)),
		zap.Bool("derived", out.Computed()),
	)
	return &t, nil
}

// Update replaces the raw fields of trade id and re-derives everything.
func (s *Service) Update(ctx context.Context, id string, in Input) (_ *core.Trade, err error) {
	ctx, span := tracing.Start(ctx, "journal.Update", attribute.String("trade_id", id))
	defer func() { tracing.End(span, err) }()
	log := s.log.With(tracing.Fields(ctx)...)

	if err := in.Validate(); err != nil {
		s.metrics.RecordTradeSaved("update", "invalid")
		return nil, err
	}

	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		s.metrics.RecordTradeSaved("update", "error")
		return nil, err
	}

	t := *existing
	out := in.apply(&t)
	t.UpdatedAt = s.now()
	s.metrics.RecordDerivation(out.Computed())

	if err := s.store.Save(ctx, t); err != nil {
		s.metrics.RecordTradeSaved("update", "error")
		log.Error("failed to update trade", zap.String("trade_id", id), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordTradeSaved("update", "success")
	log.Info("trade updated",
		zap.String("trade_id", id),
		zap.String("result", string(t.Result)),
		zap.Bool("derived", out.Computed()),
	)
	return &t, nil
}

// Get returns trade id.
func (s *Service) Get(ctx context.Context, id string) (*core.Trade, error) {
	return s.store.GetByID(ctx, id)
}

// Delete removes trade id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, core.ErrTradeNotFound) {
			s.metrics.RecordTradeSaved("delete", "error")
		}
		return err
	}
	s.metrics.RecordTradeSaved("delete", "success")
	s.log.Info("trade deleted", zap.String("trade_id", id))
	return nil
}

// List returns trades matching filter, oldest first.
func (s *Service) List(ctx context.Context, filter trade.ListFilter) ([]core.Trade, error) {
	filter.Pair = core.NormalizePair(filter.Pair)
	return s.store.List(ctx, filter)
}

// Count returns how many trades match filter, ignoring paging.
func (s *Service) Count(ctx context.Context, filter trade.ListFilter) (int, error) {
	filter.Pair = core.NormalizePair(filter.Pair)
	return s.store.Count(ctx, filter)
}

// Report builds the full analytics report over the trades matching filter.
// No matching trades yields an empty report, not an error.
func (s *Service) Report(ctx context.Context, filter trade.ListFilter) (_ analytics.Report, err error) {
	ctx, span := tracing.Start(ctx, "journal.Report")
	defer func() { tracing.End(span, err) }()

	trades, err := s.window(ctx, filter)
	if err != nil {
		return analytics.Report{}, err
	}
	span.SetAttributes(attribute.Int("trades", len(trades)))

	start := time.Now()
	report := analytics.BuildReport(trades)
	s.metrics.RecordReport(len(trades), time.Since(start).Seconds())

	s.log.Debug("report built", append(tracing.Fields(ctx), zap.Int("trades", len(trades)))...)
	return report, nil
}

// Breakdown aggregates the matching trades along one category.
func (s *Service) Breakdown(ctx context.Context, filter trade.ListFilter, category analytics.Category) ([]analytics.BreakdownItem, error) {
	c, err := analytics.ParseCategory(string(category))
	if err != nil {
		return nil, core.WrapError(core.ErrInvalidQuery, err)
	}
	trades, err := s.window(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := analytics.Breakdown(trades, c)
	if items == nil {
		items = []analytics.BreakdownItem{}
	}
	return items, nil
}

// Equity returns the cumulative daily P&L curve of the matching trades.
func (s *Service) Equity(ctx context.Context, filter trade.ListFilter) ([]analytics.EquityPoint, error) {
	trades, err := s.window(ctx, filter)
	if err != nil {
		return nil, err
	}
	return analytics.BuildEquityCurve(trades), nil
}

// Radar scores the matching trades on the five behavioral axes.
func (s *Service) Radar(ctx context.Context, filter trade.ListFilter) ([]analytics.RadarMetric, error) {
	trades, err := s.window(ctx, filter)
	if err != nil {
		return nil, err
	}
	return analytics.ScoreRadar(trades), nil
}

// window loads every trade in the filter, ignoring paging.
func (s *Service) window(ctx context.Context, filter trade.ListFilter) ([]core.Trade, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, core.WrapError(core.ErrInvalidQuery, errors.New("to is before from"))
	}
	filter.Limit, filter.Offset = 0, 0
	filter.Pair = core.NormalizePair(filter.Pair)
	return s.store.List(ctx, filter)
}
