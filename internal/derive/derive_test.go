package derive

import (
	"math"
	"testing"

	"github.com/newthinker/tradejournal/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_LongWithRiskSizing(t *testing.T) {
	out := Derive(Input{
		Direction:      core.DirectionLong,
		EntryPrice:     core.Float(100),
		StopLoss:       core.Float(90),
		TakeProfit:     core.Float(120),
		ExitPrice:      core.Float(115),
		RiskPercent:    core.Float(1),
		AccountBalance: core.Float(10000),
		Fee:            core.Float(2),
	})

	require.NotNil(t, out.RRRatio)
	assert.Equal(t, "1:2", *out.RRRatio)
	require.NotNil(t, out.PositionSize)
	assert.Equal(t, 10.0, *out.PositionSize)
	require.NotNil(t, out.ActualRR)
	assert.Equal(t, 1.5, *out.ActualRR)
	require.NotNil(t, out.ProfitLoss)
	assert.Equal(t, 148.0, *out.ProfitLoss) // 15 * 10 - 2
	require.NotNil(t, out.Result)
	assert.Equal(t, core.ResultWin, *out.Result)
}

func TestDerive_ShortLossWithoutSizing(t *testing.T) {
	out := Derive(Input{
		Direction:  core.DirectionShort,
		EntryPrice: core.Float(50),
		StopLoss:   core.Float(55),
		TakeProfit: core.Float(40),
		ExitPrice:  core.Float(57),
	})

	require.NotNil(t, out.RRRatio)
	assert.Equal(t, "1:2", *out.RRRatio)
	assert.Nil(t, out.PositionSize)
	require.NotNil(t, out.ActualRR)
	assert.Equal(t, -1.4, *out.ActualRR)
	assert.Nil(t, out.ProfitLoss, "no size and no risk amount means no P&L")
	require.NotNil(t, out.Result)
	assert.Equal(t, core.ResultLoss, *out.Result)
}

func TestDerive_ManualSizeTakesPrecedence(t *testing.T) {
	out := Derive(Input{
		Direction:      core.DirectionLong,
		EntryPrice:     core.Float(100),
		StopLoss:       core.Float(90),
		ExitPrice:      core.Float(110),
		RiskPercent:    core.Float(1),
		AccountBalance: core.Float(10000),
		PositionSize:   core.Float(7),
	})

	require.NotNil(t, out.PositionSize)
	assert.Equal(t, 7.0, *out.PositionSize)
	require.NotNil(t, out.ProfitLoss)
	assert.Equal(t, 70.0, *out.ProfitLoss)
}

func TestDerive_ExitFromResultHint(t *testing.T) {
	base := Input{
		Direction:    core.DirectionLong,
		EntryPrice:   core.Float(100),
		StopLoss:     core.Float(95),
		TakeProfit:   core.Float(110),
		PositionSize: core.Float(3),
		Fee:          core.Float(1),
	}

	tests := []struct {
		hint       core.Result
		wantRR     float64
		wantPL     float64
		wantResult core.Result
	}{
		{core.ResultWin, 2, 29, core.ResultWin},             // exit at take-profit
		{core.ResultLoss, -1, -16, core.ResultLoss},         // exit at stop
		{core.ResultBreakeven, 0, -1, core.ResultBreakeven}, // exit at entry, fee only
	}

	for _, tt := range tests {
		t.Run(string(tt.hint), func(t *testing.T) {
			in := base
			in.Result = tt.hint
			out := Derive(in)

			require.NotNil(t, out.ActualRR)
			assert.Equal(t, tt.wantRR, *out.ActualRR)
			require.NotNil(t, out.ProfitLoss)
			assert.Equal(t, tt.wantPL, *out.ProfitLoss)
			require.NotNil(t, out.Result)
			assert.Equal(t, tt.wantResult, *out.Result)
		})
	}
}

func TestDerive_WinHintWithoutTakeProfit(t *testing.T) {
	out := Derive(Input{
		Direction:  core.DirectionLong,
		EntryPrice: core.Float(100),
		StopLoss:   core.Float(95),
		Result:     core.ResultWin,
	})

	assert.Nil(t, out.ActualRR)
	assert.Nil(t, out.ProfitLoss)
	assert.Nil(t, out.Result)
}

func TestDerive_ExplicitExitBeatsHint(t *testing.T) {
	out := Derive(Input{
		Direction:  core.DirectionLong,
		EntryPrice: core.Float(100),
		StopLoss:   core.Float(95),
		TakeProfit: core.Float(110),
		ExitPrice:  core.Float(97.5),
		Result:     core.ResultWin,
	})

	require.NotNil(t, out.ActualRR)
	assert.Equal(t, -0.5, *out.ActualRR)
	require.NotNil(t, out.Result)
	assert.Equal(t, core.ResultLoss, *out.Result)
}

func TestDerive_PartialAlwaysWins(t *testing.T) {
	out := Derive(Input{
		Direction:  core.DirectionShort,
		EntryPrice: core.Float(100),
		StopLoss:   core.Float(105),
		ExitPrice:  core.Float(110),
		Result:     core.ResultPartial,
	})

	require.NotNil(t, out.Result)
	assert.Equal(t, core.ResultPartial, *out.Result)
	require.NotNil(t, out.ActualRR)
	assert.Equal(t, -2.0, *out.ActualRR)
}

func TestDerive_PendingWithoutExit(t *testing.T) {
	out := Derive(Input{
		Direction:      core.DirectionLong,
		EntryPrice:     core.Float(100),
		StopLoss:       core.Float(98),
		TakeProfit:     core.Float(104),
		RiskPercent:    core.Float(2),
		AccountBalance: core.Float(5000),
		Result:         core.ResultPending,
	})

	require.NotNil(t, out.RRRatio)
	assert.Equal(t, "1:2", *out.RRRatio)
	require.NotNil(t, out.PositionSize)
	assert.Equal(t, 50.0, *out.PositionSize) // 100 risk / 2 per unit
	assert.Nil(t, out.ActualRR)
	assert.Nil(t, out.ProfitLoss)
	assert.Nil(t, out.Result)
}

func TestDerive_NegativeFeeIgnored(t *testing.T) {
	out := Derive(Input{
		Direction:    core.DirectionLong,
		EntryPrice:   core.Float(10),
		StopLoss:     core.Float(9),
		ExitPrice:    core.Float(12),
		PositionSize: core.Float(5),
		Fee:          core.Float(-3),
	})

	require.NotNil(t, out.ProfitLoss)
	assert.Equal(t, 10.0, *out.ProfitLoss)
}

func TestDerive_TakeProfitOnWrongSideHasNoRatio(t *testing.T) {
	out := Derive(Input{
		Direction:  core.DirectionLong,
		EntryPrice: core.Float(100),
		StopLoss:   core.Float(95),
		TakeProfit: core.Float(90),
	})
	assert.Nil(t, out.RRRatio)
}

func TestDerive_DegenerateGuard(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"entry equals stop long", Input{Direction: core.DirectionLong, EntryPrice: core.Float(100), StopLoss: core.Float(100), TakeProfit: core.Float(120), ExitPrice: core.Float(110), PositionSize: core.Float(1)}},
		{"entry equals stop short", Input{Direction: core.DirectionShort, EntryPrice: core.Float(5), StopLoss: core.Float(5), ExitPrice: core.Float(4), RiskPercent: core.Float(1), AccountBalance: core.Float(100)}},
		{"missing direction", Input{EntryPrice: core.Float(100), StopLoss: core.Float(90), ExitPrice: core.Float(110)}},
		{"unknown direction", Input{Direction: "Sideways", EntryPrice: core.Float(100), StopLoss: core.Float(90)}},
		{"missing entry", Input{Direction: core.DirectionLong, StopLoss: core.Float(90), ExitPrice: core.Float(110)}},
		{"missing stop", Input{Direction: core.DirectionLong, EntryPrice: core.Float(100), ExitPrice: core.Float(110)}},
		{"non finite entry", Input{Direction: core.DirectionLong, EntryPrice: core.Float(math.Inf(1)), StopLoss: core.Float(90)}},
		{"NaN stop", Input{Direction: core.DirectionShort, EntryPrice: core.Float(100), StopLoss: core.Float(math.NaN())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Derive(tt.in)
			assert.False(t, out.Computed())
			assert.Equal(t, Output{}, out)
		})
	}
}

func TestPreviewResult(t *testing.T) {
	tests := []struct {
		rr   float64
		want core.Result
	}{
		{0.1, core.ResultWin},
		{2, core.ResultWin},
		{0.05, core.ResultBreakeven},
		{0, core.ResultBreakeven},
		{-0.5, core.ResultBreakeven},
		{-0.9, core.ResultLoss},
		{-1, core.ResultLoss},
		{math.NaN(), core.ResultPending},
	}
	for _, tt := range tests {
		if got := PreviewResult(tt.rr); got != tt.want {
			t.Errorf("PreviewResult(%v) = %s, want %s", tt.rr, got, tt.want)
		}
	}
}

func TestPreviewResult_DivergesFromCanonical(t *testing.T) {
	// A small positive RR is a Win when persisted but a Breakeven in the preview.
	out := Derive(Input{
		Direction:  core.DirectionLong,
		EntryPrice: core.Float(100),
		StopLoss:   core.Float(90),
		ExitPrice:  core.Float(100.5),
	})
	require.NotNil(t, out.Result)
	assert.Equal(t, core.ResultWin, *out.Result)
	assert.Equal(t, core.ResultBreakeven, PreviewResult(*out.ActualRR))
}
