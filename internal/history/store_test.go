package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func sampleRecords(runID string) []Record {
	base := time.Now().UTC().UnixMilli()
	return []Record{
		{ID: "e1", RunID: runID, ConfigurationID: "1", Seed: 42, InstanceID: "sphere", Cost: 0.5, CreatedAtUnixMs: base},
		{ID: "e2", RunID: runID, ConfigurationID: "2", Seed: 43, Cost: 0.25, CreatedAtUnixMs: base + 1},
		{ID: "e3", RunID: runID, ConfigurationID: "2", Seed: 44, Failed: true, Error: "runner failed", CreatedAtUnixMs: base + 2},
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if err := store.Init(ctx); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	defer store.Close()

	for _, record := range sampleRecords("run-1") {
		if err := store.SaveExperiment(ctx, record); err != nil {
			t.Fatalf("Failed to save experiment %s: %v", record.ID, err)
		}
	}

	count, err := store.CountExperiments(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failed to count experiments: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 experiments, got %d", count)
	}

	records, err := store.ListExperiments(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failed to list experiments: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].ID != "e1" || records[1].ID != "e2" || records[2].ID != "e3" {
		t.Errorf("Expected records in creation order, got %v", records)
	}
	if records[0].Cost != 0.5 || records[0].Seed != 42 || records[0].InstanceID != "sphere" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if !records[2].Failed || records[2].Error != "runner failed" {
		t.Errorf("Expected failed third record, got %+v", records[2])
	}

	// Other runs are unaffected.
	count, err = store.CountExperiments(ctx, "run-2")
	if err != nil {
		t.Fatalf("Failed to count experiments for other run: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 experiments for unknown run, got %d", count)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	testStore(t, NewSQLiteStore(path))
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	err := store.SaveExperiment(context.Background(), Record{ID: "e1", RunID: "run-1"})
	if err != ErrNotInitialized {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestNewStoreSelectsBackend(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("Failed to create memory store: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("Expected MemoryStore for empty path, got %T", store)
	}

	store, err = NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	if _, ok := store.(*SQLiteStore); !ok {
		t.Errorf("Expected SQLiteStore for path, got %T", store)
	}
}
