package analytics

import (
	"math"
	"strings"

	"github.com/newthinker/tradejournal/internal/core"
)

// ProfitFactorCeiling is the profit factor at which the radar score saturates.
const ProfitFactorCeiling = 3.0

// Radar metric names, in output order.
const (
	MetricWinRate       = "Win Rate"
	MetricProfitFactor  = "Profit Factor"
	MetricDiscipline    = "Discipline"
	MetricConfidence    = "Confidence"
	MetricPlanAdherence = "Plan Adherence"
)

// RadarMetric is one axis of the trader radar chart.
type RadarMetric struct {
	Metric   string  `json:"metric" yaml:"metric"`
	Value    float64 `json:"value" yaml:"value"`
	FullMark float64 `json:"fullMark" yaml:"fullMark"`
}

// ScoreRadar returns the five behavioral scores, each in [0,100].
// The shape is fixed even for an empty input.
func ScoreRadar(trades []core.Trade) []RadarMetric {
	return []RadarMetric{
		radarMetric(MetricWinRate, radarWinRate(trades)),
		radarMetric(MetricProfitFactor, radarProfitFactor(trades)),
		radarMetric(MetricDiscipline, scaleAverage(trades, func(t core.Trade) *float64 { return t.Discipline })),
		radarMetric(MetricConfidence, scaleAverage(trades, func(t core.Trade) *float64 { return t.Confidence })),
		radarMetric(MetricPlanAdherence, radarPlanAdherence(trades)),
	}
}

func radarMetric(name string, v float64) RadarMetric {
	return RadarMetric{Metric: name, Value: clampScore(v), FullMark: 100}
}

// radarWinRate only counts explicit Win and Loss results, case-insensitively.
func radarWinRate(trades []core.Trade) float64 {
	var wins, resolved int
	for _, t := range trades {
		switch strings.ToLower(strings.TrimSpace(string(t.Result))) {
		case "win":
			wins++
			resolved++
		case "loss":
			resolved++
		}
	}
	if resolved == 0 {
		return 0
	}
	return float64(wins) / float64(resolved) * 100
}

func radarProfitFactor(trades []core.Trade) float64 {
	grossProfit, grossLoss := grossPL(trades)
	if grossLoss == 0 {
		if grossProfit > 0 {
			return 100
		}
		return 0
	}
	return math.Min(100, grossProfit/grossLoss/ProfitFactorCeiling*100)
}

// scaleAverage averages a 1-10 field over trades where it is present and
// scales it to 0-100.
func scaleAverage(trades []core.Trade, field func(core.Trade) *float64) float64 {
	var sum float64
	var n int
	for _, t := range trades {
		if v, ok := core.Finite(field(t)); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * 10
}

// radarPlanAdherence divides by all trades, not only those with a plan note.
func radarPlanAdherence(trades []core.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	var adhered int
	for _, t := range trades {
		if t.FollowedPlan() {
			adhered++
		}
	}
	return float64(adhered) / float64(len(trades)) * 100
}

func grossPL(trades []core.Trade) (profit, loss float64) {
	for _, t := range trades {
		pl, ok := core.Finite(t.ProfitLoss)
		if !ok {
			continue
		}
		if pl > 0 {
			profit += pl
		} else if pl < 0 {
			loss += -pl
		}
	}
	return profit, loss
}

// clampScore bounds the score to [0,100]; non-finite scores read as 0.
func clampScore(v float64) float64 {
	if !core.IsFinite(v) || v < 0 {
		return 0
	}
	return math.Min(100, v)
}
