package derive

import (
	"math"

	"github.com/newthinker/tradejournal/internal/core"
)

// Input holds the raw plan/execution fields a trade is derived from.
// PositionSize is a manual override; Result is the caller's hint.
type Input struct {
	Direction      core.Direction
	EntryPrice     *float64
	StopLoss       *float64
	TakeProfit     *float64
	ExitPrice      *float64
	RiskPercent    *float64
	AccountBalance *float64
	Fee            *float64
	PositionSize   *float64
	Result         core.Result
}

// Output holds the derived fields. A nil field was not computable.
type Output struct {
	RRRatio      *string
	PositionSize *float64
	ActualRR     *float64
	ProfitLoss   *float64
	Result       *core.Result
}

// Computed reports whether the degenerate-risk guard let derivation run.
func (o Output) Computed() bool {
	return o.RRRatio != nil || o.PositionSize != nil || o.ActualRR != nil ||
		o.ProfitLoss != nil || o.Result != nil
}

// Derive computes a trade's derived metrics. It never fails: missing or
// degenerate inputs leave the corresponding outputs nil.
func Derive(in Input) Output {
	entry, okEntry := core.Finite(in.EntryPrice)
	stop, okStop := core.Finite(in.StopLoss)
	if !in.Direction.IsValid() || !okEntry || !okStop {
		return Output{}
	}
	riskUnit := math.Abs(entry - stop)
	if riskUnit == 0 || !core.IsFinite(riskUnit) {
		return Output{}
	}

	var out Output
	long := in.Direction == core.DirectionLong

	// Planned RR from the take-profit
	tp, hasTP := core.Finite(in.TakeProfit)
	if hasTP {
		var raw float64
		if long {
			raw = (tp - entry) / (entry - stop)
		} else {
			raw = (entry - tp) / (stop - entry)
		}
		if core.IsFinite(raw) && raw > 0 {
			rr := NormalizeRRMultiple(raw)
			out.RRRatio = &rr
		}
	}

	// Risk-based sizing; a manual size always wins
	var riskAmount float64
	hasRisk := false
	riskPct, okPct := core.Positive(in.RiskPercent)
	balance, okBal := core.Positive(in.AccountBalance)
	if okPct && okBal {
		riskAmount = balance * riskPct / 100
		hasRisk = core.IsFinite(riskAmount)
	}
	if manual, ok := core.Positive(in.PositionSize); ok {
		out.PositionSize = core.Float(core.Round2(manual))
	} else if hasRisk {
		size := riskAmount / riskUnit
		if core.IsFinite(size) {
			out.PositionSize = core.Float(core.Round2(size))
		}
	}

	exit, hasExit := effectiveExit(in, entry, stop, tp, hasTP)
	if !hasExit {
		if in.Result == core.ResultPartial {
			out.Result = resultPtr(core.ResultPartial)
		}
		return out
	}

	var rawActual, move float64
	if long {
		rawActual = (exit - entry) / (entry - stop)
		move = exit - entry
	} else {
		rawActual = (entry - exit) / (stop - entry)
		move = entry - exit
	}
	if !core.IsFinite(rawActual) {
		return out
	}
	out.ActualRR = core.Float(core.Round2(rawActual))

	switch {
	case in.Result == core.ResultPartial:
		out.Result = resultPtr(core.ResultPartial)
	case rawActual > 0:
		out.Result = resultPtr(core.ResultWin)
	case rawActual < 0:
		out.Result = resultPtr(core.ResultLoss)
	default:
		out.Result = resultPtr(core.ResultBreakeven)
	}

	fee, ok := core.Positive(in.Fee)
	if !ok {
		fee = 0
	}
	if out.PositionSize != nil {
		pl := move*(*out.PositionSize) - fee
		if core.IsFinite(pl) {
			out.ProfitLoss = core.Float(core.Round2(pl))
		}
	} else if hasRisk {
		pl := riskAmount*rawActual - fee
		if core.IsFinite(pl) {
			out.ProfitLoss = core.Float(core.Round2(pl))
		}
	}

	return out
}

// effectiveExit resolves the price the trade is considered closed at:
// explicit exit, then the level implied by the result hint.
func effectiveExit(in Input, entry, stop, tp float64, hasTP bool) (float64, bool) {
	if exit, ok := core.Finite(in.ExitPrice); ok {
		return exit, true
	}
	switch in.Result {
	case core.ResultWin:
		if hasTP {
			return tp, true
		}
	case core.ResultLoss:
		return stop, true
	case core.ResultBreakeven:
		return entry, true
	}
	return 0, false
}

func resultPtr(r core.Result) *core.Result {
	return &r
}
