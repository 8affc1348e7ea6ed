// Package database provides the durable stores for collection checkpoints
// and analysis results, with SQLite and MongoDB backends behind a common
// interface.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"trendwatch/app/analyzer"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists checkpoints and results in a local SQLite file,
// using the pure Go modernc.org/sqlite driver.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and applies
// pending migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite %s: %w", path, err)
	}

	if _, _, err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp Checkpoint) (string, error) {
	items, err := json.Marshal(cp.Items)
	if err != nil {
		return "", fmt.Errorf("failed to encode checkpoint items: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (id, items, page_token, request_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, string(items), cp.NextPageToken, cp.RequestCount, cp.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to save checkpoint: %w", err)
	}

	return id, nil
}

func (s *SQLiteStore) LoadLatestCheckpoint(ctx context.Context) (*Checkpoint, error) {
	var itemsJSON string
	var cp Checkpoint

	err := s.db.QueryRowContext(ctx, `
		SELECT items, page_token, request_count, created_at
		FROM checkpoints
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&itemsJSON, &cp.NextPageToken, &cp.RequestCount, &cp.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &cp.Items); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint items: %w", err)
	}

	return &cp, nil
}

func (s *SQLiteStore) ClearCheckpoints(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checkpoints`); err != nil {
		return fmt.Errorf("failed to clear checkpoints: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveResult(ctx context.Context, result *analyzer.Result) (string, error) {
	shorts, err := json.Marshal(result.Shorts)
	if err != nil {
		return "", fmt.Errorf("failed to encode shorts: %w", err)
	}
	regular, err := json.Marshal(result.Regular)
	if err != nil {
		return "", fmt.Errorf("failed to encode regular videos: %w", err)
	}
	counts, err := json.Marshal(result.CategoryCounts)
	if err != nil {
		return "", fmt.Errorf("failed to encode category counts: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analysis_results (id, shorts, regular, category_counts, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, id, string(shorts), string(regular), string(counts))
	if err != nil {
		return "", fmt.Errorf("failed to save analysis result: %w", err)
	}

	return id, nil
}

func (s *SQLiteStore) GetResult(ctx context.Context, id string) (*analyzer.Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT shorts, regular, category_counts
		FROM analysis_results
		WHERE id = ?
	`, id)
	return scanResult(row)
}

func (s *SQLiteStore) GetLatestResult(ctx context.Context) (*analyzer.Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT shorts, regular, category_counts
		FROM analysis_results
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)
	return scanResult(row)
}

func scanResult(row *sql.Row) (*analyzer.Result, error) {
	var shortsJSON, regularJSON, countsJSON string

	err := row.Scan(&shortsJSON, &regularJSON, &countsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis result: %w", err)
	}

	var result analyzer.Result
	if err := json.Unmarshal([]byte(shortsJSON), &result.Shorts); err != nil {
		return nil, fmt.Errorf("failed to decode shorts: %w", err)
	}
	if err := json.Unmarshal([]byte(regularJSON), &result.Regular); err != nil {
		return nil, fmt.Errorf("failed to decode regular videos: %w", err)
	}
	if err := json.Unmarshal([]byte(countsJSON), &result.CategoryCounts); err != nil {
		return nil, fmt.Errorf("failed to decode category counts: %w", err)
	}

	return &result, nil
}
