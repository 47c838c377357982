package trade

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/newthinker/tradejournal/internal/config"
	"github.com/newthinker/tradejournal/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, newTestSQLite(t))
}

func TestSQLiteStore_RequiresID(t *testing.T) {
	store := newTestSQLite(t)
	err := store.Save(context.Background(), core.Trade{Date: time.Now()})
	assert.ErrorIs(t, err, core.ErrInvalidTrade)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, sampleTrade("keep", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "GBPUSD", core.ResultWin)))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.GetByID(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, "GBPUSD", got.Pair)
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	lite, err := Open(ctx, config.StorageConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "open.db")},
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, lite)
	lite.Close()

	_, err = Open(ctx, config.StorageConfig{Driver: "mysql"})
	assert.ErrorIs(t, err, core.ErrConfigInvalid)
}
