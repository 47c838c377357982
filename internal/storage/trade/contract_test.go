package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newthinker/tradejournal/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade(id string, date time.Time, pair string, result core.Result) core.Trade {
	t := core.Trade{
		ID:         id,
		Date:       date,
		Time:       "09:30",
		Pair:       pair,
		Direction:  core.DirectionLong,
		EntryPrice: core.Float(100),
		StopLoss:   core.Float(95),
		ExitPrice:  core.Float(107.5),
		RRRatio:    core.String("1:2"),
		ActualRR:   core.Float(1.5),
		ProfitLoss: core.Float(148),
		Session:    "London",
		Discipline: core.Float(8),
		Notes:      "clean breakout",
		CreatedAt:  date,
		UpdatedAt:  date,
	}
	t.SetResult(result)
	return t
}

// runStoreContract exercises the behavior every Store implementation shares.
func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	t.Run("save and get round trip", func(t *testing.T) {
		in := sampleTrade("rt-1", base, "EURUSD", core.ResultWin)
		require.NoError(t, store.Save(ctx, in))

		got, err := store.GetByID(ctx, "rt-1")
		require.NoError(t, err)
		assert.Equal(t, "EURUSD", got.Pair)
		assert.Equal(t, core.DirectionLong, got.Direction)
		assert.True(t, got.Date.Equal(base))
		require.NotNil(t, got.ProfitLoss)
		assert.Equal(t, 148.0, *got.ProfitLoss)
		require.NotNil(t, got.RRRatio)
		assert.Equal(t, "1:2", *got.RRRatio)
		assert.Nil(t, got.TakeProfit, "missing optional values stay nil")
		assert.Nil(t, got.PlanChange)
		assert.Equal(t, core.ResultWin, got.Outcome)
	})

	t.Run("save replaces by id", func(t *testing.T) {
		in := sampleTrade("rt-1", base, "EURUSD", core.ResultLoss)
		in.ProfitLoss = nil
		require.NoError(t, store.Save(ctx, in))

		got, err := store.GetByID(ctx, "rt-1")
		require.NoError(t, err)
		assert.Equal(t, core.ResultLoss, got.Result)
		assert.Nil(t, got.ProfitLoss)

		n, err := store.Count(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("list filters and orders by date", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleTrade("rt-3", base.Add(48*time.Hour), "XAUUSD", core.ResultWin)))
		require.NoError(t, store.Save(ctx, sampleTrade("rt-2", base.Add(24*time.Hour), "EURUSD", core.ResultWin)))

		all, err := store.List(ctx, ListFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"rt-1", "rt-2", "rt-3"}, []string{all[0].ID, all[1].ID, all[2].ID})

		eur, err := store.List(ctx, ListFilter{Pair: "EURUSD"})
		require.NoError(t, err)
		assert.Len(t, eur, 2)

		wins, err := store.List(ctx, ListFilter{Result: core.ResultWin})
		require.NoError(t, err)
		assert.Len(t, wins, 2)

		ranged, err := store.List(ctx, ListFilter{From: base.Add(time.Hour), To: base.Add(24 * time.Hour)})
		require.NoError(t, err)
		require.Len(t, ranged, 1)
		assert.Equal(t, "rt-2", ranged[0].ID)

		n, err := store.Count(ctx, ListFilter{Direction: core.DirectionShort})
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("paging", func(t *testing.T) {
		page, err := store.List(ctx, ListFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "rt-2", page[0].ID)

		tail, err := store.List(ctx, ListFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, tail, 1)
		assert.Equal(t, "rt-3", tail[0].ID)

		none, err := store.List(ctx, ListFilter{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "rt-3"))

		_, err := store.GetByID(ctx, "rt-3")
		assert.True(t, errors.Is(err, core.ErrTradeNotFound))

		err = store.Delete(ctx, "rt-3")
		assert.True(t, errors.Is(err, core.ErrTradeNotFound))
	})
}
