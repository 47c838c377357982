// internal/storage/trade/memory.go
package trade

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/newthinker/tradejournal/internal/core"
)

// MemoryStore is an in-memory trade store. When full, the oldest inserted
// trade is evicted.
type MemoryStore struct {
	trades  []core.Trade
	maxSize int
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store with max capacity.
// A non-positive maxSize means unbounded.
func NewMemoryStore(maxSize int) *MemoryStore {
	return &MemoryStore{
		trades:  make([]core.Trade, 0),
		maxSize: maxSize,
	}
}

// Save adds or replaces a trade. An empty ID is assigned a new UUID.
func (m *MemoryStore) Save(ctx context.Context, trade core.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	for i := range m.trades {
		if m.trades[i].ID == trade.ID {
			m.trades[i] = trade
			return nil
		}
	}

	m.trades = append(m.trades, trade)

	// Trim if over capacity (remove oldest)
	if m.maxSize > 0 && len(m.trades) > m.maxSize {
		m.trades = m.trades[len(m.trades)-m.maxSize:]
	}

	return nil
}

// GetByID retrieves a trade by ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*core.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.trades {
		if m.trades[i].ID == id {
			t := m.trades[i]
			return &t, nil
		}
	}
	return nil, core.ErrTradeNotFound
}

// List returns trades matching the filter ordered by date.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]core.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []core.Trade{}
	for _, t := range m.trades {
		if filter.Matches(t) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	// Apply offset and limit
	if filter.Offset >= len(result) && filter.Offset > 0 {
		return []core.Trade{}, nil
	} else if filter.Offset > 0 {
		result = result[filter.Offset:]
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Count returns the count of matching trades.
func (m *MemoryStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, t := range m.trades {
		if filter.Matches(t) {
			count++
		}
	}
	return count, nil
}

// Delete removes a trade by ID.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.trades {
		if m.trades[i].ID == id {
			m.trades = append(m.trades[:i], m.trades[i+1:]...)
			return nil
		}
	}
	return core.ErrTradeNotFound
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
