// Package storage persists evaluation run records.
//
// A Store keeps one Record per evaluation pass, keyed by the trainer's
// run ID. Two backends exist: an in-memory store for tests and
// throwaway runs, and a SQLite store for durable run history.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Record summarizes one evaluation pass.
type Record struct {
	RunID      string    `json:"run_id"`
	Metric     string    `json:"metric"`
	Samples    int       `json:"samples"`
	TotalError float32   `json:"total_error"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store persists run records.
type Store interface {
	SaveRun(ctx context.Context, rec Record) error
	GetRun(ctx context.Context, runID string) (Record, bool, error)
	ListRuns(ctx context.Context) ([]Record, error)
}

// NewStore creates a store backend by kind: "" or "memory" for the
// in-memory store, "sqlite" for the SQLite store at path.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes the store if its backend holds resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}

// MemoryStore is a Store backed by a map.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]Record)}
}

// SaveRun inserts or overwrites the record for rec.RunID.
func (s *MemoryStore) SaveRun(_ context.Context, rec Record) error {
	if rec.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rec.RunID] = rec
	return nil
}

// GetRun returns the record for runID, and whether it exists.
func (s *MemoryStore) GetRun(_ context.Context, runID string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.runs[runID]
	return rec, ok, nil
}

// ListRuns returns all records ordered by finish time.
func (s *MemoryStore) ListRuns(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.runs))
	for _, rec := range s.runs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FinishedAt.Before(out[j].FinishedAt)
	})
	return out, nil
}
