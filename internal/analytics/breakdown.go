package analytics

import (
	"fmt"
	"strings"

	"github.com/newthinker/tradejournal/internal/core"
)

// BreakdownItem summarizes the trades that fell into one bucket.
type BreakdownItem struct {
	Name       string  `json:"name" yaml:"name"`
	Trades     int     `json:"trades" yaml:"trades"`
	Wins       int     `json:"wins" yaml:"wins"`
	Losses     int     `json:"losses" yaml:"losses"`
	Breakevens int     `json:"breakevens" yaml:"breakevens"`
	WinRate    float64 `json:"winrate" yaml:"winrate"`
	TotalPL    float64 `json:"totalPL" yaml:"totalPL"`
	AvgRR      float64 `json:"avgRR" yaml:"avgRR"`
}

// Category names a group-by dimension.
type Category string

const (
	CategoryWeekday   Category = "weekday"
	CategoryWeek      Category = "week"
	CategoryMonth     Category = "month"
	CategoryYear      Category = "year"
	CategorySymbol    Category = "symbol"
	CategoryDirection Category = "direction"
	CategorySession   Category = "session"
	CategoryMarket    Category = "market"
	CategorySetup     Category = "setup"
	CategoryTradeType Category = "trade_type"
	CategoryEmotion   Category = "emotion"
)

// Categories lists every supported category in report order.
var Categories = []Category{
	CategoryWeekday, CategoryWeek, CategoryMonth, CategoryYear,
	CategorySymbol, CategoryDirection, CategorySession, CategoryMarket,
	CategorySetup, CategoryTradeType, CategoryEmotion,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown breakdown category %q", s)
}

// fallbacks is the label used when a trade has no value for a categorical key.
var fallbacks = map[Category]string{
	CategorySymbol:    "Unknown",
	CategoryDirection: "Unknown",
	CategorySession:   "Unknown",
	CategoryMarket:    "Unknown",
	CategorySetup:     "Unknown",
	CategoryTradeType: "Unknown",
	CategoryEmotion:   "Neutral",
}

// KeyFunc extracts the bucket name of a trade.
type KeyFunc func(core.Trade) string

// categorical builds a KeyFunc over a string field, applying the category fallback.
func categorical(c Category, field func(core.Trade) string) KeyFunc {
	fallback := fallbacks[c]
	return func(t core.Trade) string {
		if v := strings.TrimSpace(field(t)); v != "" {
			return v
		}
		return fallback
	}
}

var keyFuncs = map[Category]KeyFunc{
	CategoryWeekday:   func(t core.Trade) string { return WeekdayName(t.Date) },
	CategoryWeek:      func(t core.Trade) string { return WeekKey(t.Date) },
	CategoryMonth:     func(t core.Trade) string { return MonthKey(t.Date) },
	CategoryYear:      func(t core.Trade) string { return YearKey(t.Date) },
	CategorySymbol:    categorical(CategorySymbol, func(t core.Trade) string { return t.Pair }),
	CategoryDirection: categorical(CategoryDirection, func(t core.Trade) string { return string(t.Direction) }),
	CategorySession:   categorical(CategorySession, func(t core.Trade) string { return t.Session }),
	CategoryMarket:    categorical(CategoryMarket, func(t core.Trade) string { return t.Market }),
	CategorySetup:     categorical(CategorySetup, func(t core.Trade) string { return t.Setup }),
	CategoryTradeType: categorical(CategoryTradeType, func(t core.Trade) string { return t.TradeType }),
	CategoryEmotion:   categorical(CategoryEmotion, func(t core.Trade) string { return t.EmotionBefore }),
}

type bucket struct {
	trades, wins, losses int
	pl, rr               float64
}

// Aggregate groups trades by keyFn. Buckets appear in first-seen order and
// only buckets with at least one trade are emitted.
func Aggregate(trades []core.Trade, keyFn KeyFunc) []BreakdownItem {
	return AggregateSeeded(trades, nil, keyFn)
}

// AggregateSeeded is Aggregate with buckets pre-created, in seed order, so
// they appear even when empty.
func AggregateSeeded(trades []core.Trade, seed []string, keyFn KeyFunc) []BreakdownItem {
	order := make([]string, 0, len(seed))
	buckets := make(map[string]*bucket, len(seed))
	for _, name := range seed {
		if _, ok := buckets[name]; ok {
			continue
		}
		buckets[name] = &bucket{}
		order = append(order, name)
	}

	for _, t := range trades {
		name := keyFn(t)
		b, ok := buckets[name]
		if !ok {
			b = &bucket{}
			buckets[name] = b
			order = append(order, name)
		}
		b.trades++
		switch classify(t.Result) {
		case outcomeWin:
			b.wins++
		case outcomeLoss:
			b.losses++
		}
		b.pl += t.PL()
		if rr, ok := core.Finite(t.ActualRR); ok {
			b.rr += rr
		}
	}

	items := make([]BreakdownItem, 0, len(order))
	for _, name := range order {
		items = append(items, buckets[name].finalize(name))
	}
	return items
}

func (b *bucket) finalize(name string) BreakdownItem {
	item := BreakdownItem{
		Name:       name,
		Trades:     b.trades,
		Wins:       b.wins,
		Losses:     b.losses,
		Breakevens: max(0, b.trades-b.wins-b.losses),
		WinRate:    winRate(b.wins, b.losses),
		TotalPL:    core.Round2(b.pl),
	}
	if b.trades > 0 {
		item.AvgRR = core.Round2(b.rr / float64(b.trades))
	}
	return item
}

// Breakdown dispatches to the aggregator for category c.
// Unknown categories yield nil.
func Breakdown(trades []core.Trade, c Category) []BreakdownItem {
	if c == CategoryWeekday {
		return ByWeekday(trades)
	}
	keyFn, ok := keyFuncs[c]
	if !ok {
		return nil
	}
	return Aggregate(trades, keyFn)
}

// ByWeekday always returns 7 items, Sunday through Saturday.
func ByWeekday(trades []core.Trade) []BreakdownItem {
	return AggregateSeeded(trades, Weekdays, keyFuncs[CategoryWeekday])
}

// ByWeek groups by the Sunday-started week, labelled "Week of DD Mon".
func ByWeek(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryWeek])
}

// ByMonth groups by calendar month, labelled "Mon YYYY".
func ByMonth(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryMonth])
}

// ByYear groups by calendar year.
func ByYear(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryYear])
}

// BySymbol groups by traded pair.
func BySymbol(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategorySymbol])
}

// ByDirection groups by Long or Short.
func ByDirection(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryDirection])
}

// BySession groups by trading session.
func BySession(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategorySession])
}

// ByMarket groups by market.
func ByMarket(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryMarket])
}

// BySetup groups by setup name.
func BySetup(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategorySetup])
}

// ByTradeType groups by trade type.
func ByTradeType(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryTradeType])
}

// ByEmotion groups on the pre-trade emotion; missing values read as "Neutral".
func ByEmotion(trades []core.Trade) []BreakdownItem {
	return Aggregate(trades, keyFuncs[CategoryEmotion])
}
