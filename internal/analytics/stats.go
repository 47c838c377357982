package analytics

import (
	"github.com/newthinker/tradejournal/internal/core"
)

// Summary holds headline performance statistics for a trade set.
type Summary struct {
	TotalTrades   int     `json:"totalTrades" yaml:"totalTrades"`
	Wins          int     `json:"wins" yaml:"wins"`
	Losses        int     `json:"losses" yaml:"losses"`
	Breakevens    int     `json:"breakevens" yaml:"breakevens"`
	WinRate       float64 `json:"winrate" yaml:"winrate"` // Wins over resolved trades
	TotalPL       float64 `json:"totalPL" yaml:"totalPL"`
	AvgRR         float64 `json:"avgRR" yaml:"avgRR"`
	GrossProfit   float64 `json:"grossProfit" yaml:"grossProfit"`
	GrossLoss     float64 `json:"grossLoss" yaml:"grossLoss"`
	ProfitFactor  float64 `json:"profitFactor" yaml:"profitFactor"` // 0 when there are no losses
	AvgWin        float64 `json:"avgWin" yaml:"avgWin"`
	AvgLoss       float64 `json:"avgLoss" yaml:"avgLoss"`
	Expectancy    float64 `json:"expectancy" yaml:"expectancy"` // Mean P&L per trade
	LargestWin    float64 `json:"largestWin" yaml:"largestWin"`
	LargestLoss   float64 `json:"largestLoss" yaml:"largestLoss"`
	MaxDrawdown   float64 `json:"maxDrawdown" yaml:"maxDrawdown"` // Largest peak-to-trough drop of daily equity
	MaxWinStreak  int     `json:"maxWinStreak" yaml:"maxWinStreak"`
	MaxLossStreak int     `json:"maxLossStreak" yaml:"maxLossStreak"`
}

// Summarize computes performance statistics from trades
func Summarize(trades []core.Trade) Summary {
	if len(trades) == 0 {
		return Summary{}
	}

	var s Summary
	var pl, rr float64
	var winCount, lossCount int
	var winStreak, lossStreak int

	for _, t := range sortedByDate(trades) {
		s.TotalTrades++
		switch classify(t.Result) {
		case outcomeWin:
			s.Wins++
			winStreak++
			lossStreak = 0
		case outcomeLoss:
			s.Losses++
			lossStreak++
			winStreak = 0
		default:
			// Breakeven and pending trades break both streaks.
			winStreak, lossStreak = 0, 0
		}
		s.MaxWinStreak = max(s.MaxWinStreak, winStreak)
		s.MaxLossStreak = max(s.MaxLossStreak, lossStreak)

		pl += t.PL()
		if v, ok := core.Finite(t.ActualRR); ok {
			rr += v
		}
		if v, ok := core.Finite(t.ProfitLoss); ok {
			if v > 0 {
				winCount++
				s.LargestWin = max(s.LargestWin, v)
			} else if v < 0 {
				lossCount++
				s.LargestLoss = min(s.LargestLoss, v)
			}
		}
	}

	s.Breakevens = max(0, s.TotalTrades-s.Wins-s.Losses)
	s.WinRate = winRate(s.Wins, s.Losses)
	s.TotalPL = core.Round2(pl)
	s.AvgRR = core.Round2(rr / float64(s.TotalTrades))
	s.Expectancy = core.Round2(pl / float64(s.TotalTrades))

	grossProfit, grossLoss := grossPL(trades)
	s.GrossProfit = core.Round2(grossProfit)
	s.GrossLoss = core.Round2(grossLoss)
	if grossLoss > 0 {
		s.ProfitFactor = core.Round2(grossProfit / grossLoss)
	}
	if winCount > 0 {
		s.AvgWin = core.Round2(grossProfit / float64(winCount))
	}
	if lossCount > 0 {
		s.AvgLoss = core.Round2(grossLoss / float64(lossCount))
	}
	s.LargestWin = core.Round2(s.LargestWin)
	s.LargestLoss = core.Round2(s.LargestLoss)
	s.MaxDrawdown = maxDrawdown(BuildEquityCurve(trades))

	return s
}

// maxDrawdown finds the largest peak-to-trough decline of cumulative equity,
// starting from a flat account.
func maxDrawdown(curve []EquityPoint) float64 {
	var peak, maxDD float64
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		if dd := peak - p.Equity; dd > maxDD {
			maxDD = dd
		}
	}
	return core.Round2(maxDD)
}
