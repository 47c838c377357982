// internal/storage/trade/interface.go
package trade

import (
	"context"
	"time"

	"github.com/newthinker/tradejournal/internal/core"
)

// Store defines the interface for trade persistence.
type Store interface {
	// Save inserts the trade or replaces the stored trade with the same ID.
	Save(ctx context.Context, trade core.Trade) error

	// GetByID retrieves a trade by its ID.
	GetByID(ctx context.Context, id string) (*core.Trade, error)

	// List retrieves trades matching the filter, oldest first.
	List(ctx context.Context, filter ListFilter) ([]core.Trade, error)

	// Count returns the number of trades matching the filter.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Delete removes a trade by its ID.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying connection, if any.
	Close() error
}

// ListFilter defines criteria for listing trades. Zero values match everything.
type ListFilter struct {
	From      time.Time // inclusive
	To        time.Time // inclusive
	Pair      string
	Direction core.Direction
	Result    core.Result
	Limit     int
	Offset    int
}

// Matches reports whether t satisfies every criterion except paging.
func (f ListFilter) Matches(t core.Trade) bool {
	if f.Pair != "" && t.Pair != f.Pair {
		return false
	}
	if f.Direction != "" && t.Direction != f.Direction {
		return false
	}
	if f.Result != "" && t.Result != f.Result {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// where renders the filter as a SQL WHERE clause. placeholder returns the
// bind marker for the n-th argument, starting at 1.
func (f ListFilter) where(placeholder func(n int) string) (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		clause += " AND " + cond + " " + placeholder(len(args))
	}

	if f.Pair != "" {
		add("pair =", f.Pair)
	}
	if f.Direction != "" {
		add("direction =", string(f.Direction))
	}
	if f.Result != "" {
		add("result =", string(f.Result))
	}
	if !f.From.IsZero() {
		add("trade_date >=", f.From.UTC())
	}
	if !f.To.IsZero() {
		add("trade_date <=", f.To.UTC())
	}
	return clause, args
}
