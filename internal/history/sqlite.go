package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists experiment records to a SQLite database.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore creates a store writing to the database at path.
// Init must be called before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema. Calling Init on an
// already-initialized store is a no-op.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open history database %s: %w", s.path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping history database %s: %w", s.path, err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS experiments (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			configuration_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			instance_id TEXT,
			cost REAL NOT NULL,
			failed INTEGER NOT NULL,
			error TEXT,
			created_at_unix_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_experiments_run ON experiments (run_id, created_at_unix_ms);
	`)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create history schema: %w", err)
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

// SaveExperiment inserts one record.
func (s *SQLiteStore) SaveExperiment(ctx context.Context, record Record) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO experiments
			(id, run_id, configuration_id, seed, instance_id, cost, failed, error, created_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.RunID, record.ConfigurationID, record.Seed,
		record.InstanceID, record.Cost, record.Failed, record.Error, record.CreatedAtUnixMs)
	if err != nil {
		return fmt.Errorf("failed to save experiment %s: %w", record.ID, err)
	}
	return nil
}

// ListExperiments returns the records of a run ordered by creation time.
func (s *SQLiteStore) ListExperiments(ctx context.Context, runID string) ([]Record, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, run_id, configuration_id, seed, instance_id, cost, failed, error, created_at_unix_ms
		FROM experiments
		WHERE run_id = ?
		ORDER BY created_at_unix_ms, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments for run %s: %w", runID, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		err := rows.Scan(&record.ID, &record.RunID, &record.ConfigurationID,
			&record.Seed, &record.InstanceID, &record.Cost, &record.Failed,
			&record.Error, &record.CreatedAtUnixMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experiment row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CountExperiments returns the number of records for a run.
func (s *SQLiteStore) CountExperiments(ctx context.Context, runID string) (int, error) {
	db, err := s.getDB()
	if err != nil {
		return 0, err
	}

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM experiments WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count experiments for run %s: %w", runID, err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
