package analytics

import (
	"sort"

	"github.com/newthinker/tradejournal/internal/core"
)

// EquityPoint is one traded day on the cumulative P&L curve.
type EquityPoint struct {
	Date   string  `json:"date" yaml:"date"` // "DD Mon"
	Key    string  `json:"key" yaml:"key"`   // YYYY-MM-DD
	Equity float64 `json:"equity" yaml:"equity"`
	Daily  float64 `json:"daily" yaml:"daily"`
	Trades int     `json:"trades" yaml:"trades"`
}

// BuildEquityCurve returns one point per UTC day that had a trade, in
// chronological order. Days without trades are not filled in.
func BuildEquityCurve(trades []core.Trade) []EquityPoint {
	if len(trades) == 0 {
		return []EquityPoint{}
	}

	sorted := sortedByDate(trades)

	type day struct {
		key, label string
		pl         float64
		trades     int
	}
	var days []*day
	index := make(map[string]*day)
	for _, t := range sorted {
		key := DayKey(t.Date)
		d, ok := index[key]
		if !ok {
			d = &day{key: key, label: DayLabel(t.Date)}
			index[key] = d
			days = append(days, d)
		}
		d.pl += t.PL()
		d.trades++
	}

	points := make([]EquityPoint, 0, len(days))
	var running float64
	for _, d := range days {
		running += d.pl
		points = append(points, EquityPoint{
			Date:   d.label,
			Key:    d.key,
			Equity: core.Round2(running),
			Daily:  core.Round2(d.pl),
			Trades: d.trades,
		})
	}
	return points
}

// sortedByDate returns a stably date-sorted copy; ties keep input order.
func sortedByDate(trades []core.Trade) []core.Trade {
	sorted := make([]core.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
