package trade

import (
	"context"
	"fmt"

	"github.com/newthinker/tradejournal/internal/config"
	"github.com/newthinker/tradejournal/internal/core"
)

// Open returns the Store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return NewMemoryStore(cfg.Memory.MaxSize), nil
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.SQLite.Path)
	case config.DriverPostgres:
		pool, err := Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, core.WrapError(core.ErrStorageFailed, err)
		}
		store, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown storage driver %q", cfg.Driver))
	}
}
