package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/tradejournal/internal/core"
	"github.com/newthinker/tradejournal/internal/journal"
	"github.com/newthinker/tradejournal/internal/storage/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,time,pair,direction,entry,stop,take_profit,exit,risk_percent,account_balance,fee,position_size,rr_ratio,result,market,session,trade_type,setup,emotion_before,emotion_after,discipline,confidence,plan_change,notes
2026-02-13,09:30,eurusd,Buy,100,95,110,107.5,1%,"5,000",,,,,Forex,London,Intraday,Breakout,Calm,Happy,8,7,,clean
2026-02-14,,XAUUSD,short,2000,2010,,,,,,,1:3,pending,Metals,NY,Swing,Pullback,,,,,moved stop,
2026-02-15,,GBPUSD,sideways,1,2,,,,,,,,,,,,,,,,,,
not-a-date,,GBPUSD,long,1,2,,,,,,,,,,,,,,,,,,
2026-02-16,,GBPUSD,long,abc,2,,,,,,,,,,,,,,,,,,
`

type statusCounter map[string]int

func (s statusCounter) RecordImport(status string) { s[status]++ }

func TestImporter_Import(t *testing.T) {
	store := trade.NewMemoryStore(0)
	svc := journal.NewService(store, nil, nil)
	counter := statusCounter{}

	res, err := New(svc, nil, counter).Import(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Len(t, res.Imported, 2)
	require.Len(t, res.Failed, 3)
	assert.Equal(t, []int{4, 5, 6}, []int{res.Failed[0].Line, res.Failed[1].Line, res.Failed[2].Line})
	assert.Contains(t, res.Failed[0].Error(), "direction")
	assert.Contains(t, res.Failed[2].Error(), "entry")
	assert.Equal(t, 2, counter["success"])
	assert.Equal(t, 3, counter["failed"])

	first, err := store.GetByID(context.Background(), res.Imported[0])
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", first.Pair)
	assert.Equal(t, core.DirectionLong, first.Direction)
	assert.Equal(t, time.Date(2026, 2, 13, 9, 30, 0, 0, time.UTC), first.Date)
	require.NotNil(t, first.PositionSize)
	assert.Equal(t, 10.0, *first.PositionSize)
	require.NotNil(t, first.ProfitLoss)
	assert.Equal(t, 75.0, *first.ProfitLoss)
	assert.Equal(t, core.ResultWin, first.Result)
	assert.Nil(t, first.Fee)
	assert.True(t, first.FollowedPlan())

	second, err := store.GetByID(context.Background(), res.Imported[1])
	require.NoError(t, err)
	require.NotNil(t, second.RRRatio)
	assert.Equal(t, "1:3", *second.RRRatio)
	assert.Equal(t, core.ResultPending, second.Result)
	assert.False(t, second.FollowedPlan())
}

func TestRow_Input(t *testing.T) {
	in, err := Row{Date: "2026-03-01T10:00:00Z", Time: "10:00", Pair: " xauusd ", Direction: "SELL", Result: "BE"}.Input()
	require.NoError(t, err)
	assert.Equal(t, "XAUUSD", in.Pair)
	assert.Equal(t, core.DirectionShort, in.Direction)
	assert.Equal(t, core.ResultBreakeven, in.Result)
	assert.Nil(t, in.EntryPrice)

	_, err = Row{}.Input()
	assert.Error(t, err)

	_, err = Row{Date: "2026-03-01", Result: "maybe"}.Input()
	assert.Error(t, err)
}

func TestOptionalFloat(t *testing.T) {
	v, err := optionalFloat(" 1,250.5 ")
	require.NoError(t, err)
	assert.Equal(t, 1250.5, *v)

	v, err = optionalFloat("   ")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = optionalFloat("NaN")
	assert.Error(t, err)
}

type failingCreator struct{}

func (failingCreator) Create(context.Context, journal.Input) (*core.Trade, error) {
	return nil, core.ErrStorageFailed
}

func TestImporter_StoreErrorsAreRowErrors(t *testing.T) {
	res, err := New(failingCreator{}, nil, nil).Import(context.Background(),
		strings.NewReader("date,pair\n2026-01-01,EURUSD\n"))
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	assert.True(t, errors.Is(res.Failed[0].Err, core.ErrStorageFailed))
	assert.Empty(t, res.Imported)
}

func TestImporter_MalformedFile(t *testing.T) {
	_, err := New(failingCreator{}, nil, nil).Import(context.Background(),
		strings.NewReader("date,pair\n\"2026-01-01,EURUSD\n"))
	assert.True(t, errors.Is(err, core.ErrImportFailed))
}
