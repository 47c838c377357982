package trade

import (
	"strings"

	"github.com/newthinker/tradejournal/internal/core"
)

// columns lists the trades table columns in bind and scan order.
var columns = []string{
	"id", "trade_date", "trade_time", "pair", "direction",
	"entry_price", "stop_loss", "take_profit", "exit_price",
	"risk_percent", "account_balance", "fee", "position_size",
	"rr_ratio", "actual_rr", "profit_loss", "result", "outcome",
	"market", "session", "trade_type", "setup", "emotion_before", "emotion_after",
	"discipline", "confidence", "plan_change",
	"notes", "mistakes", "lessons", "created_at", "updated_at",
}

var columnList = strings.Join(columns, ", ")

// values returns the bind arguments for t in column order. Nil pointers bind as NULL.
func values(t core.Trade) []any {
	return []any{
		t.ID, t.Date.UTC(), t.Time, t.Pair, string(t.Direction),
		t.EntryPrice, t.StopLoss, t.TakeProfit, t.ExitPrice,
		t.RiskPercent, t.AccountBalance, t.Fee, t.PositionSize,
		t.RRRatio, t.ActualRR, t.ProfitLoss, string(t.Result), string(t.Outcome),
		t.Market, t.Session, t.TradeType, t.Setup, t.EmotionBefore, t.EmotionAfter,
		t.Discipline, t.Confidence, t.PlanChange,
		t.Notes, t.Mistakes, t.Lessons, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	}
}

// scanTargets returns pointers into t in column order.
func scanTargets(t *core.Trade) []any {
	return []any{
		&t.ID, &t.Date, &t.Time, &t.Pair, &t.Direction,
		&t.EntryPrice, &t.StopLoss, &t.TakeProfit, &t.ExitPrice,
		&t.RiskPercent, &t.AccountBalance, &t.Fee, &t.PositionSize,
		&t.RRRatio, &t.ActualRR, &t.ProfitLoss, &t.Result, &t.Outcome,
		&t.Market, &t.Session, &t.TradeType, &t.Setup, &t.EmotionBefore, &t.EmotionAfter,
		&t.Discipline, &t.Confidence, &t.PlanChange,
		&t.Notes, &t.Mistakes, &t.Lessons, &t.CreatedAt, &t.UpdatedAt,
	}
}

// scannable is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanTrade(row scannable) (core.Trade, error) {
	var t core.Trade
	if err := row.Scan(scanTargets(&t)...); err != nil {
		return core.Trade{}, err
	}
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

// upsertAssignments renders "col = <excluded>.col" for every non-key column.
func upsertAssignments(excluded string) string {
	parts := make([]string, 0, len(columns)-1)
	for _, c := range columns[1:] {
		if c == "created_at" {
			continue
		}
		parts = append(parts, c+" = "+excluded+"."+c)
	}
	return strings.Join(parts, ", ")
}
