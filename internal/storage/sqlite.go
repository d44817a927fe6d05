package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a Store backed by a SQLite database file. The
// database is opened lazily on first use and the schema is created if
// missing.
type SQLiteStore struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

// NewSQLiteStore creates a store for the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) getDB(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if s.path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			run_id      TEXT PRIMARY KEY,
			metric      TEXT NOT NULL,
			samples     INTEGER NOT NULL,
			total_error REAL NOT NULL,
			finished_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s.db = db
	return db, nil
}

// SaveRun inserts or overwrites the record for rec.RunID.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec Record) error {
	if rec.RunID == "" {
		return errors.New("run id is required")
	}
	db, err := s.getDB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (run_id, metric, samples, total_error, finished_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			metric = excluded.metric,
			samples = excluded.samples,
			total_error = excluded.total_error,
			finished_at = excluded.finished_at
	`, rec.RunID, rec.Metric, rec.Samples, rec.TotalError, rec.FinishedAt.UnixNano())
	return err
}

// GetRun returns the record for runID, and whether it exists.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (Record, bool, error) {
	db, err := s.getDB(ctx)
	if err != nil {
		return Record{}, false, err
	}

	var rec Record
	var finishedAt int64
	err = db.QueryRowContext(ctx, `
		SELECT run_id, metric, samples, total_error, finished_at
		FROM runs WHERE run_id = ?
	`, runID).Scan(&rec.RunID, &rec.Metric, &rec.Samples, &rec.TotalError, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	rec.FinishedAt = time.Unix(0, finishedAt)
	return rec, true, nil
}

// ListRuns returns all records ordered by finish time.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Record, error) {
	db, err := s.getDB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, metric, samples, total_error, finished_at
		FROM runs ORDER BY finished_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var finishedAt int64
		if err := rows.Scan(&rec.RunID, &rec.Metric, &rec.Samples, &rec.TotalError, &finishedAt); err != nil {
			return nil, err
		}
		rec.FinishedAt = time.Unix(0, finishedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
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
