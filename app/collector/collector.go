// Package collector drives paginated retrieval of trending videos,
// checkpointing progress after every successful page so an interrupted run
// loses at most one in-flight page.
package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"trendwatch/app/database"
	"trendwatch/app/youtube"
)

// DefaultMaxRetries bounds consecutive failures of a single page request.
// The retry counter resets after every successful page.
const DefaultMaxRetries = 3

// TrendingAPI is the one remote operation the collector needs.
type TrendingAPI interface {
	ListTrending(ctx context.Context, region string, pageSize int, pageToken string) (*youtube.VideoListPage, error)
}

type Options struct {
	TargetCount int
	PageSize    int
	Region      string
	PageDelay   time.Duration // wait between successful pages; doubled after a failed one
	MaxRetries  int
}

// Outcome is what a run produced. Partial marks a degraded success: fewer
// items than requested because the quota ran out or the chart was exhausted.
type Outcome struct {
	Items    []youtube.Video
	Partial  bool
	Requests int
}

type Collector struct {
	api   TrendingAPI
	store database.CheckpointStore
	opts  Options
}

// New creates a collector. The store may be nil, in which case the run is
// not resumable.
func New(api TrendingAPI, store database.CheckpointStore, opts Options) (*Collector, error) {
	if opts.TargetCount <= 0 {
		return nil, fmt.Errorf("target count must be positive, got %d", opts.TargetCount)
	}
	if opts.PageSize <= 0 || opts.PageSize > youtube.MaxPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", youtube.MaxPageSize, opts.PageSize)
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	return &Collector{api: api, store: store, opts: opts}, nil
}

// Run collects pages until the target count is reached, the chart is
// exhausted, or the quota runs out. Items keep the order the API returned
// them in, with checkpointed items from a previous run first.
func (c *Collector) Run(ctx context.Context) (*Outcome, error) {
	var items []youtube.Video
	var pageToken string
	requests := 0

	if cp := c.loadCheckpoint(ctx); cp != nil {
		items = cp.Items
		pageToken = cp.NextPageToken
		requests = cp.RequestCount
		slog.Info("Resuming from checkpoint", "items", len(items), "requests", requests)
	}

	retries := 0
	for len(items) < c.opts.TargetCount {
		page, err := c.api.ListTrending(ctx, c.opts.Region, c.opts.PageSize, pageToken)
		if err != nil {
			if errors.Is(err, youtube.ErrQuotaExceeded) {
				slog.Warn("Quota exceeded, stopping with partial results", "collected", len(items))
				break
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			retries++
			if retries > c.opts.MaxRetries {
				return nil, fmt.Errorf("page request failed after %d retries: %w", c.opts.MaxRetries, err)
			}
			slog.Warn("Page request failed, retrying",
				"attempt", retries, "max_retries", c.opts.MaxRetries, "error", err)
			if err := sleep(ctx, 2*c.opts.PageDelay); err != nil {
				return nil, err
			}
			continue
		}
		retries = 0
		requests++

		items = append(items, page.Items...)
		pageToken = page.NextPageToken
		slog.Info("Fetched page", "items", len(page.Items), "total", len(items), "requests", requests)

		c.saveCheckpoint(ctx, items, pageToken, requests)

		if pageToken == "" {
			if len(items) < c.opts.TargetCount {
				slog.Warn("No more pages available", "collected", len(items), "target", c.opts.TargetCount)
			}
			break
		}
		if len(items) >= c.opts.TargetCount {
			break
		}

		if err := sleep(ctx, c.opts.PageDelay); err != nil {
			return nil, err
		}
	}

	// Never return more than requested, even when the last page overshoots.
	if len(items) > c.opts.TargetCount {
		items = items[:c.opts.TargetCount]
	}

	return &Outcome{
		Items:    items,
		Partial:  len(items) < c.opts.TargetCount,
		Requests: requests,
	}, nil
}

// loadCheckpoint returns the latest checkpoint, or nil when none exists or
// the store failed. A failing store only costs resumability, never the run.
func (c *Collector) loadCheckpoint(ctx context.Context) *database.Checkpoint {
	if c.store == nil {
		return nil
	}
	cp, err := c.store.LoadLatestCheckpoint(ctx)
	if err != nil {
		slog.Warn("Failed to load checkpoint, starting fresh", "error", err)
		return nil
	}
	return cp
}

func (c *Collector) saveCheckpoint(ctx context.Context, items []youtube.Video, pageToken string, requests int) {
	if c.store == nil {
		return
	}
	cp := database.Checkpoint{
		Items:         items,
		NextPageToken: pageToken,
		RequestCount:  requests,
		CreatedAt:     time.Now().UTC(),
	}
	id, err := c.store.SaveCheckpoint(ctx, cp)
	if err != nil {
		slog.Warn("Failed to save checkpoint", "error", err)
		return
	}
	slog.Debug("Checkpoint saved", "id", id, "items", len(items))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
