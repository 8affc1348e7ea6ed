package database

import (
	"context"

	"trendwatch/app/analyzer"
)

// CheckpointStore persists collection progress. The collector treats save
// and load failures as non-fatal: a run proceeds with reduced resumability.
type CheckpointStore interface {
	SaveCheckpoint(ctx context.Context, cp Checkpoint) (string, error)
	LoadLatestCheckpoint(ctx context.Context) (*Checkpoint, error)
	ClearCheckpoints(ctx context.Context) error
}

// ResultStore persists analysis results. Load methods return (nil, nil)
// when no matching result exists.
type ResultStore interface {
	SaveResult(ctx context.Context, result *analyzer.Result) (string, error)
	GetResult(ctx context.Context, id string) (*analyzer.Result, error)
	GetLatestResult(ctx context.Context) (*analyzer.Result, error)
}

// Store is a complete backend. Implementations may be a local SQLite file
// or a remote document database; callers treat both identically.
type Store interface {
	CheckpointStore
	ResultStore
	Close() error
}
