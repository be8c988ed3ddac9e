// Package history records every dispatched experiment of a tuning run so
// results can be inspected after the engine has converged. Two backends
// exist: an in-memory store and a SQLite store selected by the scenario's
// log file setting.
package history

import (
	"context"
	"fmt"
)

// Record is the outcome of one experiment invocation.
type Record struct {
	ID              string  `json:"id"`
	RunID           string  `json:"run_id"`
	ConfigurationID string  `json:"configuration_id"`
	Seed            uint64  `json:"seed"`
	InstanceID      string  `json:"instance_id,omitempty"`
	Cost            float64 `json:"cost"`
	Failed          bool    `json:"failed"`
	Error           string  `json:"error,omitempty"`
	CreatedAtUnixMs int64   `json:"created_at_unix_ms"`
}

// Store persists experiment records for tuning runs.
type Store interface {
	Init(ctx context.Context) error
	SaveExperiment(ctx context.Context, record Record) error
	ListExperiments(ctx context.Context, runID string) ([]Record, error)
	CountExperiments(ctx context.Context, runID string) (int, error)
	Close() error
}

// NewStore creates a store backend.
// An empty path selects the in-memory backend; otherwise records are
// persisted to a SQLite database at the given path.
func NewStore(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	return NewSQLiteStore(path), nil
}

// ErrNotInitialized is returned when a store is used before Init.
var ErrNotInitialized = fmt.Errorf("history store not initialized")
