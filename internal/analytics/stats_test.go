package analytics

import (
	"testing"
	"time"

	"github.com/newthinker/tradejournal/internal/core"
)

func dayTrade(d int, result core.Result, pl float64) core.Trade {
	return core.Trade{
		Date:       time.Date(2026, 4, d, 12, 0, 0, 0, time.UTC),
		Result:     result,
		ProfitLoss: core.Float(pl),
		ActualRR:   core.Float(pl / 100),
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestSummarize_Totals(t *testing.T) {
	trades := []core.Trade{
		dayTrade(1, core.ResultWin, 200),
		dayTrade(2, core.ResultLoss, -100),
		dayTrade(3, core.ResultLoss, -50),
		dayTrade(4, core.ResultPartial, 100),
		dayTrade(5, core.ResultBreakeven, 0),
	}

	s := Summarize(trades)

	if s.TotalTrades != 5 || s.Wins != 2 || s.Losses != 2 || s.Breakevens != 1 {
		t.Errorf("counts = %d/%d/%d/%d", s.TotalTrades, s.Wins, s.Losses, s.Breakevens)
	}
	if s.WinRate != 50 {
		t.Errorf("WinRate = %v, want 50", s.WinRate)
	}
	if s.TotalPL != 150 {
		t.Errorf("TotalPL = %v, want 150", s.TotalPL)
	}
	if s.GrossProfit != 300 || s.GrossLoss != 150 {
		t.Errorf("gross = %v/%v", s.GrossProfit, s.GrossLoss)
	}
	if s.ProfitFactor != 2 {
		t.Errorf("ProfitFactor = %v, want 2", s.ProfitFactor)
	}
	if s.AvgWin != 150 || s.AvgLoss != 75 {
		t.Errorf("avg win/loss = %v/%v", s.AvgWin, s.AvgLoss)
	}
	if s.Expectancy != 30 {
		t.Errorf("Expectancy = %v, want 30", s.Expectancy)
	}
	if s.LargestWin != 200 || s.LargestLoss != -100 {
		t.Errorf("largest = %v/%v", s.LargestWin, s.LargestLoss)
	}
	if s.AvgRR != 0.3 {
		t.Errorf("AvgRR = %v, want 0.3", s.AvgRR)
	}
}

func TestSummarize_MaxDrawdown(t *testing.T) {
	// Equity: 100, 150, 60, 90, 40 -> peak 150, trough 40
	trades := []core.Trade{
		dayTrade(1, core.ResultWin, 100),
		dayTrade(2, core.ResultWin, 50),
		dayTrade(3, core.ResultLoss, -90),
		dayTrade(4, core.ResultWin, 30),
		dayTrade(5, core.ResultLoss, -50),
	}

	if dd := Summarize(trades).MaxDrawdown; dd != 110 {
		t.Errorf("MaxDrawdown = %v, want 110", dd)
	}
}

func TestSummarize_DrawdownFromFlatStart(t *testing.T) {
	trades := []core.Trade{dayTrade(1, core.ResultLoss, -40)}
	if dd := Summarize(trades).MaxDrawdown; dd != 40 {
		t.Errorf("MaxDrawdown = %v, want 40", dd)
	}
}

func TestSummarize_Streaks(t *testing.T) {
	trades := []core.Trade{
		dayTrade(5, core.ResultLoss, -1),
		dayTrade(1, core.ResultWin, 1),
		dayTrade(2, core.ResultWin, 1),
		dayTrade(3, core.ResultBreakeven, 0),
		dayTrade(4, core.ResultWin, 1),
		dayTrade(6, core.ResultLoss, -1),
	}

	s := Summarize(trades)
	if s.MaxWinStreak != 2 {
		t.Errorf("MaxWinStreak = %d, want 2 (breakeven breaks a streak)", s.MaxWinStreak)
	}
	if s.MaxLossStreak != 2 {
		t.Errorf("MaxLossStreak = %d, want 2", s.MaxLossStreak)
	}
}

func TestSummarize_NeutralTradesBreakStreaks(t *testing.T) {
	s := Summarize([]core.Trade{
		dayTrade(1, core.ResultLoss, -1),
		dayTrade(2, core.ResultPending, 0),
		dayTrade(3, core.ResultLoss, -1),
		dayTrade(4, core.ResultWin, 1),
		dayTrade(5, core.ResultBreakeven, 0),
		dayTrade(6, core.ResultWin, 1),
	})
	if s.MaxWinStreak != 1 || s.MaxLossStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", s.MaxWinStreak, s.MaxLossStreak)
	}
}

func TestSummarize_NoLossesProfitFactorZero(t *testing.T) {
	s := Summarize([]core.Trade{dayTrade(1, core.ResultWin, 10)})
	if s.ProfitFactor != 0 {
		t.Errorf("ProfitFactor = %v, want 0 without losses", s.ProfitFactor)
	}
}
