package analytics

import (
	"github.com/newthinker/tradejournal/internal/core"
)

// Breakdowns holds every category breakdown of a report.
type Breakdowns struct {
	Weekday   []BreakdownItem `json:"weekday" yaml:"weekday"`
	Week      []BreakdownItem `json:"week" yaml:"week"`
	Month     []BreakdownItem `json:"month" yaml:"month"`
	Year      []BreakdownItem `json:"year" yaml:"year"`
	Symbol    []BreakdownItem `json:"symbol" yaml:"symbol"`
	Direction []BreakdownItem `json:"direction" yaml:"direction"`
	Session   []BreakdownItem `json:"session" yaml:"session"`
	Market    []BreakdownItem `json:"market" yaml:"market"`
	Setup     []BreakdownItem `json:"setup" yaml:"setup"`
	TradeType []BreakdownItem `json:"tradeType" yaml:"tradeType"`
	Emotion   []BreakdownItem `json:"emotion" yaml:"emotion"`
}

// Get returns the breakdown for category c.
func (b Breakdowns) Get(c Category) []BreakdownItem {
	switch c {
	case CategoryWeekday:
		return b.Weekday
	case CategoryWeek:
		return b.Week
	case CategoryMonth:
		return b.Month
	case CategoryYear:
		return b.Year
	case CategorySymbol:
		return b.Symbol
	case CategoryDirection:
		return b.Direction
	case CategorySession:
		return b.Session
	case CategoryMarket:
		return b.Market
	case CategorySetup:
		return b.Setup
	case CategoryTradeType:
		return b.TradeType
	case CategoryEmotion:
		return b.Emotion
	}
	return nil
}

// Report is the complete analytics view of a trade set.
type Report struct {
	Summary    Summary       `json:"summary" yaml:"summary"`
	Breakdowns Breakdowns    `json:"breakdowns" yaml:"breakdowns"`
	Equity     []EquityPoint `json:"equity" yaml:"equity"`
	Radar      []RadarMetric `json:"radar" yaml:"radar"`
}

// Empty reports whether the report was built from no trades.
func (r Report) Empty() bool {
	return r.Summary.TotalTrades == 0
}

// BuildReport runs every aggregator over trades.
func BuildReport(trades []core.Trade) Report {
	return Report{
		Summary: Summarize(trades),
		Breakdowns: Breakdowns{
			Weekday:   ByWeekday(trades),
			Week:      ByWeek(trades),
			Month:     ByMonth(trades),
			Year:      ByYear(trades),
			Symbol:    BySymbol(trades),
			Direction: ByDirection(trades),
			Session:   BySession(trades),
			Market:    ByMarket(trades),
			Setup:     BySetup(trades),
			TradeType: ByTradeType(trades),
			Emotion:   ByEmotion(trades),
		},
		Equity: BuildEquityCurve(trades),
		Radar:  ScoreRadar(trades),
	}
}
