package trade

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/newthinker/tradejournal/internal/core"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	trade_date DATETIME NOT NULL,
	trade_time TEXT NOT NULL DEFAULT '',
	pair TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL DEFAULT '',
	entry_price REAL,
	stop_loss REAL,
	take_profit REAL,
	exit_price REAL,
	risk_percent REAL,
	account_balance REAL,
	fee REAL,
	position_size REAL,
	rr_ratio TEXT,
	actual_rr REAL,
	profit_loss REAL,
	result TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	market TEXT NOT NULL DEFAULT '',
	session TEXT NOT NULL DEFAULT '',
	trade_type TEXT NOT NULL DEFAULT '',
	setup TEXT NOT NULL DEFAULT '',
	emotion_before TEXT NOT NULL DEFAULT '',
	emotion_after TEXT NOT NULL DEFAULT '',
	discipline REAL,
	confidence REAL,
	plan_change TEXT,
	notes TEXT NOT NULL DEFAULT '',
	mistakes TEXT NOT NULL DEFAULT '',
	lessons TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
CREATE INDEX IF NOT EXISTS idx_trades_pair ON trades(pair);
`

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path in WAL mode.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("create data dir: %w", err))
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("open database: %w", err))
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("initialize schema: %w", err))
	}

	return &SQLiteStore{db: db}, nil
}

func sqlitePlaceholder(int) string { return "?" }

// Save upserts a trade by ID.
func (s *SQLiteStore) Save(ctx context.Context, trade core.Trade) error {
	if trade.ID == "" {
		return core.WrapError(core.ErrInvalidTrade, errors.New("trade id required"))
	}

	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := "INSERT INTO trades (" + columnList + ") VALUES (" + marks + ")" +
		" ON CONFLICT(id) DO UPDATE SET " + upsertAssignments("excluded")

	if _, err := s.db.ExecContext(ctx, query, values(trade)...); err != nil {
		return core.WrapError(core.ErrStorageFailed, fmt.Errorf("save trade %s: %w", trade.ID, err))
	}
	return nil
}

// GetByID retrieves a trade by ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*core.Trade, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columnList+" FROM trades WHERE id = ?", id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrTradeNotFound
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, fmt.Errorf("get trade %s: %w", id, err))
	}
	return &t, nil
}

// List returns trades matching the filter ordered by date.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]core.Trade, error) {
	where, args := filter.where(sqlitePlaceholder)
	query := "SELECT " + columnList + " FROM trades" + where + " ORDER BY trade_date ASC, created_at ASC"

	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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
func (s *SQLiteStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := filter.where(sqlitePlaceholder)

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trades"+where, args...).Scan(&count); err != nil {
		return 0, core.WrapError(core.ErrStorageFailed, fmt.Errorf("count trades: %w", err))
	}
	return count, nil
}

// Delete removes a trade by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return core.WrapError(core.ErrStorageFailed, fmt.Errorf("delete trade %s: %w", id, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrTradeNotFound
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
