package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Run is one recorded setup invocation.
type Run struct {
	RunID      int64
	CreatedAt  time.Time
	ArchiveURL string
	DataDir    string
	Source     string
	FetchError string
	Layout     string
	TTLCount   int
	ImageCount int
	Verified   bool
}

// InsertRun records a run and returns its run_id. A zero CreatedAt is set to now.
func (db *DB) InsertRun(r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	result, err := db.Exec(`
		INSERT INTO runs (created_at, archive_url, data_dir, source, fetch_error, layout, ttl_count, image_count, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.ArchiveURL, r.DataDir, r.Source,
		nullString(r.FetchError), nullString(r.Layout), r.TTLCount, r.ImageCount, r.Verified)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all runs.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, archive_url, data_dir, source, fetch_error, layout, ttl_count, image_count, verified
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run, or nil if none were recorded.
func (db *DB) LatestRun() (*Run, error) {
	runs, err := db.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// GetRunByID returns a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	row := db.QueryRow(`
		SELECT run_id, created_at, archive_url, data_dir, source, fetch_error, layout, ttl_count, image_count, verified
		FROM runs WHERE run_id = ?
	`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var createdAt string
	var fetchErr, layout sql.NullString
	err := s.Scan(&r.RunID, &createdAt, &r.ArchiveURL, &r.DataDir, &r.Source,
		&fetchErr, &layout, &r.TTLCount, &r.ImageCount, &r.Verified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan run: %w", err)
	}
	r.FetchError = fetchErr.String
	r.Layout = layout.String
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return r, fmt.Errorf("failed to parse run timestamp %q: %w", createdAt, err)
	}
	return r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
