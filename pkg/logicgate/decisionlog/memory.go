package decisionlog

import (
	"maps"
	"sort"
	"sync"
)

// MemoryStore is an in-memory decision log for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record // decisionID -> record
	closed  bool
}

// NewMemoryStore creates a new in-memory decision log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	// Copy the truth mapping to avoid retaining the caller's map.
	stored := rec
	stored.Truths = maps.Clone(rec.Truths)
	m.records[rec.DecisionID] = stored
	return nil
}

// Get implements Store.
func (m *MemoryStore) Get(decisionID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	rec, ok := m.records[decisionID]
	if !ok {
		return Record{}, ErrNotFound
	}

	rec.Truths = maps.Clone(rec.Truths)
	return rec, nil
}

// List implements Store.
func (m *MemoryStore) List(expression string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	records := make([]Record, 0)
	for _, rec := range m.records {
		if rec.Expression == expression {
			rec.Truths = maps.Clone(rec.Truths)
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].DecidedAt.Before(records[j].DecidedAt)
	})
	return records, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(decisionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.records, decisionID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}

// Len returns the number of stored records.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
