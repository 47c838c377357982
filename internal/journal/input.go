package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/derive"
)

// Input is the raw, caller-supplied part of a trade. Derived fields are
// never accepted from callers; they are recomputed on every write.
type Input struct {
	Date      time.Time      `json:"date"`
	Time      string         `json:"time,omitempty"`
	Pair      string         `json:"pair"`
	Direction core.Direction `json:"direction,omitempty"`

	EntryPrice *float64 `json:"entryPrice,omitempty"`
	StopLoss   *float64 `json:"stopLoss,omitempty"`
	TakeProfit *float64 `json:"takeProfit,omitempty"`
	ExitPrice  *float64 `json:"exitPrice,omitempty"`

	RiskPercent    *float64 `json:"riskPercent,omitempty"`
	AccountBalance *float64 `json:"accountBalance,omitempty"`
	Fee            *float64 `json:"fee,omitempty"`
	PositionSize   *float64 `json:"positionSize,omitempty"` // manual override

	// RRRatio is a planned ratio typed by the trader. It is only kept when
	// no ratio can be derived from the take-profit.
	RRRatio *string `json:"rrRatio,omitempty"`

	// Result is a hint. A result derived from the exit always wins.
	Result core.Result `json:"result,omitempty"`

	Market        string   `json:"market,omitempty"`
	Session       string   `json:"session,omitempty"`
	TradeType     string   `json:"tradeType,omitempty"`
	Setup         string   `json:"setup,omitempty"`
	EmotionBefore string   `json:"emotionBefore,omitempty"`
	EmotionAfter  string   `json:"emotionAfter,omitempty"`
	Discipline    *float64 `json:"discipline,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	PlanChange    *string  `json:"planChange,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	Mistakes      string   `json:"mistakes,omitempty"`
	Lessons       string   `json:"lessons,omitempty"`
}

// Validate rejects input that cannot be stored.
func (in Input) Validate() error {
	if in.Date.IsZero() {
		return core.WrapError(core.ErrInvalidTrade, fmt.Errorf("date is required"))
	}
	if in.Direction != "" && !in.Direction.IsValid() {
		return core.WrapError(core.ErrInvalidTrade, fmt.Errorf("unknown direction %q", in.Direction))
	}
	if in.Result != "" && core.ParseResult(string(in.Result)) == "" {
		return core.WrapError(core.ErrInvalidTrade, fmt.Errorf("unknown result %q", in.Result))
	}
	for name, v := range map[string]*float64{"discipline": in.Discipline, "confidence": in.Confidence} {
		if v == nil {
			continue
		}
		if !core.IsFinite(*v) || *v < 1 || *v > 10 {
			return core.WrapError(core.ErrInvalidTrade, fmt.Errorf("%s must be between 1 and 10, got %v", name, *v))
		}
	}
	return nil
}

func (in Input) derivation() derive.Input {
	return derive.Input{
		Direction:      in.Direction,
		EntryPrice:     in.EntryPrice,
		StopLoss:       in.StopLoss,
		TakeProfit:     in.TakeProfit,
		ExitPrice:      in.ExitPrice,
		RiskPercent:    in.RiskPercent,
		AccountBalance: in.AccountBalance,
		Fee:            in.Fee,
		PositionSize:   in.PositionSize,
		Result:         core.ParseResult(string(in.Result)),
	}
}

// apply overwrites t's raw fields with in and recomputes every derived
// field. A derived value that is no longer computable is cleared.
func (in Input) apply(t *core.Trade) derive.Output {
	out := derive.Derive(in.derivation())

	t.Date = in.Date.UTC()
	t.Time = strings.TrimSpace(in.Time)
	t.Pair = core.NormalizePair(in.Pair)
	t.Direction = in.Direction
	t.EntryPrice = in.EntryPrice
	t.StopLoss = in.StopLoss
	t.TakeProfit = in.TakeProfit
	t.ExitPrice = in.ExitPrice
	t.RiskPercent = in.RiskPercent
	t.AccountBalance = in.AccountBalance
	t.Fee = in.Fee
	t.Market = in.Market
	t.Session = in.Session
	t.TradeType = in.TradeType
	t.Setup = in.Setup
	t.EmotionBefore = in.EmotionBefore
	t.EmotionAfter = in.EmotionAfter
	t.Discipline = in.Discipline
	t.Confidence = in.Confidence
	t.PlanChange = in.PlanChange
	t.Notes = in.Notes
	t.Mistakes = in.Mistakes
	t.Lessons = in.Lessons

	t.PositionSize = out.PositionSize
	if t.PositionSize == nil {
		t.PositionSize = in.PositionSize
	}

	t.RRRatio = out.RRRatio
	if t.RRRatio == nil && in.RRRatio != nil {
		if r := derive.NormalizeRRRatio(*in.RRRatio); r != "" {
			t.RRRatio = &r
		}
	}

	t.ActualRR = out.ActualRR
	t.ProfitLoss = out.ProfitLoss
	t.SetResult(resolveResult(out, in.Result))

	return out
}

// resolveResult picks the stored result: derived, then hint, then Pending.
func resolveResult(out derive.Output, hint core.Result) core.Result {
	if out.Result != nil {
		return *out.Result
	}
	if r := core.ParseResult(string(hint)); r != "" {
		return r
	}
	return core.ResultPending
}
