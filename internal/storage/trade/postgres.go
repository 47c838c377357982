package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/newthinker/tradejournal/internal/core"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	trade_date TIMESTAMPTZ NOT NULL,
	trade_time TEXT NOT NULL DEFAULT '',
	pair TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	entry_price DOUBLE PRECISION,
	stop_loss DOUBLE PRECISION,
	take_profit DOUBLE PRECISION,
	exit_price DOUBLE PRECISION,
	risk_percent DOUBLE PRECISION,
	account_balance DOUBLE PRECISION,
	fee DOUBLE PRECISION,
	position_size DOUBLE PRECISION,
	rr_ratio TEXT,
	actual_rr DOUBLE PRECISION,
	profit_loss DOUBLE PRECISION,
	result TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	market TEXT NOT NULL DEFAULT '',
	session TEXT NOT NULL DEFAULT '',
	trade_type TEXT NOT NULL DEFAULT '',
	setup TEXT NOT NULL DEFAULT '',
	emotion_before TEXT NOT NULL DEFAULT '',
	emotion_after TEXT NOT NULL DEFAULT '',
	discipline DOUBLE PRECISION,
	confidence DOUBLE PRECISION,
	plan_change TEXT,
	notes TEXT NOT NULL DEFAULT '',
	mistakes TEXT NOT NULL DEFAULT '',
	lessons TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
CREATE INDEX IF NOT EXISTS idx_trades_pair ON trades(pair);
`

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 30 * time.Second
	cfg.MaxConnLifetime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return p, nil
}

// NewPostgresStore wraps pool and ensures the trades table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("initialize schema: %w", err))
	}
	return &PostgresStore{pool: pool}, nil
}

func postgresPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// Save upserts a trade by ID.
func (s *PostgresStore) Save(ctx context.Context, trade core.Trade) error {
	if trade.ID == "" {
		return core.WrapError(core.ErrInvalidTrade, errors.New("trade id required"))
	}

	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = postgresPlaceholder(i + 1)
	}
	query := "INSERT INTO trades (" + columnList + ") VALUES (" + strings.Join(marks, ", ") + ")" +
		" ON CONFLICT (id) DO UPDATE SET " + upsertAssignments("EXCLUDED")

	if _, err := s.pool.Exec(ctx, query, values(trade)...); err != nil {
		return core.WrapError(core.ErrStorageFailed, fmt.Errorf("save trade %s: %w", trade.ID, err))
	}
	return nil
}

// GetByID retrieves a trade by ID.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*core.Trade, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+columnList+" FROM trades WHERE id = $1", id)
	t, err := scanTrade(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrTradeNotFound
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("get trade %s: %w", id, err))
	}
	return &t, nil
}

// List returns trades matching the filter ordered by date.
func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]core.Trade, error) {
	where, args := filter.where(postgresPlaceholder)
	query := "SELECT " + columnList + " FROM trades" + where + " ORDER BY trade_date ASC, created_at ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT " + postgresPlaceholder(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET " + postgresPlaceholder(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("query trades: %w", err))
	}
	defer rows.Close()

	trades := []core.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("scan trade: %w", err))
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return trades, nil
}

// Count returns the count of matching trades.
func (s *PostgresStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := filter.where(postgresPlaceholder)

	var count int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM trades"+where, args...).Scan(&count); err != nil {
		return 0, core.WrapError(core.ErrStorageFailed, fmt.Errorf("count trades: %w", err))
	}
	return count, nil
}

// Delete removes a trade by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM trades WHERE id = $1", id)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, fmt.Errorf("delete trade %s: %w", id, err))
	}
	if tag.RowsAffected() == 0 {
		return core.ErrTradeNotFound
	}
	return nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
