package core

import (
	"strings"
	"time"
)

// Direction represents the side of a trade
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// IsValid reports whether the direction is Long or Short
func (d Direction) IsValid() bool {
	return d == DirectionLong || d == DirectionShort
}

// ParseDirection accepts loose user input ("long", "SHORT", "buy", "sell").
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return DirectionLong
	case "short", "sell":
		return DirectionShort
	default:
		return ""
	}
}

// Result represents the outcome of a trade
type Result string

const (
	ResultPending   Result = "Pending"
	ResultWin       Result = "Win"
	ResultLoss      Result = "Loss"
	ResultBreakeven Result = "Breakeven"
	ResultPartial   Result = "Partial"
)

// ParseResult normalizes a case-insensitive result label. Unknown labels map to "".
func ParseResult(s string) Result {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return ResultPending
	case "win":
		return ResultWin
	case "loss":
		return ResultLoss
	case "breakeven", "be":
		return ResultBreakeven
	case "partial":
		return ResultPartial
	default:
		return ""
	}
}

// Trade is a logged journal trade: raw plan and execution inputs, derived
// metrics, and the psychology context used for grouping.
type Trade struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time,omitempty"`
	Pair      string    `json:"pair"`
	Direction Direction `json:"direction,omitempty"`

	EntryPrice *float64 `json:"entryPrice"`
	StopLoss   *float64 `json:"stopLoss"`
	TakeProfit *float64 `json:"takeProfit"`
	ExitPrice  *float64 `json:"exitPrice"`

	RiskPercent    *float64 `json:"riskPercent"`
	AccountBalance *float64 `json:"accountBalance"`
	Fee            *float64 `json:"fee"`
	PositionSize   *float64 `json:"positionSize"`

	// Derived at write time
	RRRatio    *string  `json:"rrRatio"`
	ActualRR   *float64 `json:"actualRR"`
	ProfitLoss *float64 `json:"profitLoss"`

	// Outcome mirrors Result for older readers; both are always written together.
	Result  Result `json:"result,omitempty"`
	Outcome Result `json:"outcome,omitempty"`

	Market        string   `json:"market,omitempty"`
	Session       string   `json:"session,omitempty"`
	TradeType     string   `json:"tradeType,omitempty"`
	Setup         string   `json:"setup,omitempty"`
	EmotionBefore string   `json:"emotionBefore,omitempty"`
	EmotionAfter  string   `json:"emotionAfter,omitempty"`
	Discipline    *float64 `json:"discipline"`
	Confidence    *float64 `json:"confidence"`
	PlanChange    *string  `json:"planChange"`
	Notes         string   `json:"notes,omitempty"`
	Mistakes      string   `json:"mistakes,omitempty"`
	Lessons       string   `json:"lessons,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetResult writes r to both Result and the legacy Outcome field.
func (t *Trade) SetResult(r Result) {
	t.Result = r
	t.Outcome = r
}

// FollowedPlan reports whether no plan deviation was recorded.
func (t Trade) FollowedPlan() bool {
	return t.PlanChange == nil || strings.TrimSpace(*t.PlanChange) == ""
}

// PL returns the realized profit/loss, treating a missing value as zero.
func (t Trade) PL() float64 {
	if t.ProfitLoss == nil {
		return 0
	}
	return *t.ProfitLoss
}

// NormalizePair is the stored and filtered form of a symbol: trimmed and
// upper-cased, so "eurusd" and "EURUSD" are the same pair.
func NormalizePair(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Float returns a pointer to v. Handy for building optional fields.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
