package history

import (
	"context"
	"sync"
)

// MemoryStore keeps experiment records in memory, grouped by run.
// Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string][]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string][]Record),
	}
}

// Init is a no-op for the in-memory backend.
func (s *MemoryStore) Init(ctx context.Context) error {
	return nil
}

// SaveExperiment appends a record to its run's history.
func (s *MemoryStore) SaveExperiment(ctx context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[record.RunID] = append(s.runs[record.RunID], record)
	return nil
}

// ListExperiments returns the records of a run in insertion order.
func (s *MemoryStore) ListExperiments(ctx context.Context, runID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.runs[runID]
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}

// CountExperiments returns the number of records for a run.
func (s *MemoryStore) CountExperiments(ctx context.Context, runID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs[runID]), nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error {
	return nil
}
