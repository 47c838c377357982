// Package importer loads journal trades from CSV exports.
package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/journal"
	"go.uber.org/zap"
)

// Row is one CSV line. Cells are kept as text so a bad cell fails only its
// own row.
type Row struct {
	Date           string `csv:"date"`
	Time           string `csv:"time"`
	Pair           string `csv:"pair"`
	Direction      string `csv:"direction"`
	Entry          string `csv:"entry"`
	Stop           string `csv:"stop"`
	TakeProfit     string `csv:"take_profit"`
	Exit           string `csv:"exit"`
	RiskPercent    string `csv:"risk_percent"`
	AccountBalance string `csv:"account_balance"`
	Fee            string `csv:"fee"`
	PositionSize   string `csv:"position_size"`
	RRRatio        string `csv:"rr_ratio"`
	Result         string `csv:"result"`
	Market         string `csv:"market"`
	Session        string `csv:"session"`
	TradeType      string `csv:"trade_type"`
	Setup          string `csv:"setup"`
	EmotionBefore  string `csv:"emotion_before"`
	EmotionAfter   string `csv:"emotion_after"`
	Discipline     string `csv:"discipline"`
	Confidence     string `csv:"confidence"`
	PlanChange     string `csv:"plan_change"`
	Notes          string `csv:"notes"`
}

// Input converts the row into service input. Blank numeric cells become nil.
func (r Row) Input() (journal.Input, error) {
	var in journal.Input
	var err error

	date := strings.TrimSpace(r.Date)
	if date == "" {
		return in, fmt.Errorf("date is required")
	}
	if tm := strings.TrimSpace(r.Time); tm != "" && len(date) == len("2006-01-02") {
		date += " " + tm
	}
	if in.Date, err = core.ParseDate(date); err != nil {
		return in, err
	}
	in.Time = strings.TrimSpace(r.Time)
	in.Pair = core.NormalizePair(r.Pair)

	if d := strings.TrimSpace(r.Direction); d != "" {
		if in.Direction = core.ParseDirection(d); in.Direction == "" {
			return in, fmt.Errorf("unknown direction %q", d)
		}
	}
	if res := strings.TrimSpace(r.Result); res != "" {
		if in.Result = core.ParseResult(res); in.Result == "" {
			return in, fmt.Errorf("unknown result %q", res)
		}
	}

	numbers := []struct {
		name string
		cell string
		dst  **float64
	}{
		{"entry", r.Entry, &in.EntryPrice},
		{"stop", r.Stop, &in.StopLoss},
		{"take_profit", r.TakeProfit, &in.TakeProfit},
		{"exit", r.Exit, &in.ExitPrice},
		{"risk_percent", r.RiskPercent, &in.RiskPercent},
		{"account_balance", r.AccountBalance, &in.AccountBalance},
		{"fee", r.Fee, &in.Fee},
		{"position_size", r.PositionSize, &in.PositionSize},
		{"discipline", r.Discipline, &in.Discipline},
		{"confidence", r.Confidence, &in.Confidence},
	}
	for _, n := range numbers {
		v, err := optionalFloat(n.cell)
		if err != nil {
			return in, fmt.Errorf("%s: %w", n.name, err)
		}
		*n.dst = v
	}

	if rr := strings.TrimSpace(r.RRRatio); rr != "" {
		in.RRRatio = &rr
	}
	if pc := strings.TrimSpace(r.PlanChange); pc != "" {
		in.PlanChange = &pc
	}
	in.Market = strings.TrimSpace(r.Market)
	in.Session = strings.TrimSpace(r.Session)
	in.TradeType = strings.TrimSpace(r.TradeType)
	in.Setup = strings.TrimSpace(r.Setup)
	in.EmotionBefore = strings.TrimSpace(r.EmotionBefore)
	in.EmotionAfter = strings.TrimSpace(r.EmotionAfter)
	in.Notes = strings.TrimSpace(r.Notes)

	return in, nil
}

// optionalFloat parses a numeric cell, tolerating thousands separators and a
// trailing percent sign.
func optionalFloat(cell string) (*float64, error) {
	s := strings.TrimSpace(cell)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !core.IsFinite(v) {
		return nil, fmt.Errorf("invalid number %q", strings.TrimSpace(cell))
	}
	return &v, nil
}

// Creator stores one trade. *journal.Service satisfies it.
type Creator interface {
	Create(ctx context.Context, in journal.Input) (*core.Trade, error)
}

// Recorder receives one status per imported row. *metrics.Registry satisfies it.
type Recorder interface {
	RecordImport(status string)
}

// RowError reports why one CSV line was skipped. Line counts the header as 1.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result summarizes an import.
type Result struct {
	Imported []string // created trade IDs, in file order
	Failed   []RowError
}

// Importer feeds CSV rows through the journal write path.
type Importer struct {
	creator  Creator
	log      *zap.Logger
	recorder Recorder
}

// New creates an importer. log and recorder may be nil.
func New(creator Creator, log *zap.Logger, recorder Recorder) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{creator: creator, log: log, recorder: recorder}
}

// Import reads every row of r. A malformed file fails the whole import;
// a bad row is recorded in the result and the import continues.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, core.WrapError(core.ErrImportFailed, err)
	}

	res := &Result{Imported: []string{}, Failed: []RowError{}}
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := i + 2

		in, err := row.Input()
		if err == nil {
			var t *core.Trade
			if t, err = im.creator.Create(ctx, in); err == nil {
				res.Imported = append(res.Imported, t.ID)
				im.record("success")
				continue
			}
		}

		res.Failed = append(res.Failed, RowError{Line: line, Err: err})
		im.record("failed")
		im.log.Warn("skipping csv row", zap.Int("line", line), zap.Error(err))
	}

	im.log.Info("csv import finished",
		zap.Int("imported", len(res.Imported)),
		zap.Int("failed", len(res.Failed)),
	)
	return res, nil
}

func (im *Importer) record(status string) {
	if im.recorder != nil {
		im.recorder.RecordImport(status)
	}
}
