package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agentlint/internal/report"

	_ "github.com/mattn/go-sqlite3"
)

// RunStore keeps a local history of validation runs in SQLite.
type RunStore struct {
	db *sql.DB
}

// RunRecord is one validated document in one run.
type RunRecord struct {
	ID        int64
	Path      string
	Pass      bool
	Errors    int
	Warnings  int
	CheckedAt string
}

// NewRunStore creates or opens the history database.
func NewRunStore(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &RunStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			pass INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			warning_count INTEGER NOT NULL,
			checked_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_path ON runs(path);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun appends one report's outcome to the history.
func (s *RunStore) RecordRun(ctx context.Context, r *report.Report) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (path, pass, error_count, warning_count, checked_at) VALUES (?, ?, ?, ?, ?)`,
		r.Path, r.Pass, r.Errors(), r.Warnings(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// History returns the most recent runs, newest first. An empty path returns
// runs for all documents.
func (s *RunStore) History(ctx context.Context, path string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, path, pass, error_count, warning_count, checked_at FROM runs`
	args := []any{}
	if path != "" {
		query += ` WHERE path = ?`
		args = append(args, path)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Pass, &rec.Errors, &rec.Warnings, &rec.CheckedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
