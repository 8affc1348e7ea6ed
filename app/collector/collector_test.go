package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"trendwatch/app/database"
	"trendwatch/app/youtube"
)

// fakeAPI serves a scripted sequence of responses, one per call.
type fakeAPI struct {
	responses []fakeResponse
	calls     int
	tokens    []string
}

type fakeResponse struct {
	page *youtube.VideoListPage
	err  error
}

func (f *fakeAPI) ListTrending(_ context.Context, _ string, _ int, pageToken string) (*youtube.VideoListPage, error) {
	f.tokens = append(f.tokens, pageToken)
	if f.calls >= len(f.responses) {
		return nil, fmt.Errorf("unexpected call %d", f.calls)
	}
	r := f.responses[f.calls]
	f.calls++
	return r.page, r.err
}

type memStore struct {
	checkpoints []database.Checkpoint
	saveErr     error
	loadErr     error
}

func (m *memStore) SaveCheckpoint(_ context.Context, cp database.Checkpoint) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.checkpoints = append(m.checkpoints, cp)
	return fmt.Sprintf("cp-%d", len(m.checkpoints)), nil
}

func (m *memStore) LoadLatestCheckpoint(_ context.Context) (*database.Checkpoint, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if len(m.checkpoints) == 0 {
		return nil, nil
	}
	cp := m.checkpoints[len(m.checkpoints)-1]
	return &cp, nil
}

func (m *memStore) ClearCheckpoints(_ context.Context) error {
	m.checkpoints = nil
	return nil
}

func makePage(prefix string, n int, nextToken string) *youtube.VideoListPage {
	page := &youtube.VideoListPage{NextPageToken: nextToken}
	for i := 0; i < n; i++ {
		page.Items = append(page.Items, youtube.Video{ID: fmt.Sprintf("%s-%d", prefix, i)})
	}
	return page
}

func newCollector(t *testing.T, api TrendingAPI, store database.CheckpointStore, opts Options) *Collector {
	t.Helper()
	if opts.Region == "" {
		opts.Region = "US"
	}
	c, err := New(api, store, opts)
	if err != nil {
		t.Fatalf("Failed to create collector: %v", err)
	}
	return c
}

func TestNewValidatesOptions(t *testing.T) {
	api := &fakeAPI{}

	if _, err := New(api, nil, Options{TargetCount: 0, PageSize: 50}); err == nil {
		t.Error("Expected error for non-positive target count")
	}
	if _, err := New(api, nil, Options{TargetCount: 10, PageSize: 0}); err == nil {
		t.Error("Expected error for non-positive page size")
	}
	if _, err := New(api, nil, Options{TargetCount: 10, PageSize: youtube.MaxPageSize + 1}); err == nil {
		t.Error("Expected error for oversized page size")
	}

	c, err := New(api, nil, Options{TargetCount: 10, PageSize: 50})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if c.opts.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected default max retries %d, got: %d", DefaultMaxRetries, c.opts.MaxRetries)
	}
}

func TestRunTruncatesToTarget(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{page: makePage("p1", 50, "t1")},
		{page: makePage("p2", 50, "t2")},
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 70, PageSize: 50})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(outcome.Items) != 70 {
		t.Errorf("Expected 70 items, got: %d", len(outcome.Items))
	}
	if outcome.Partial {
		t.Error("Expected a full result")
	}
	if outcome.Requests != 2 {
		t.Errorf("Expected 2 requests, got: %d", outcome.Requests)
	}
	if api.tokens[0] != "" || api.tokens[1] != "t1" {
		t.Errorf("Unexpected page tokens: %v", api.tokens)
	}
}

func TestRunStopsOnChartExhaustion(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{page: makePage("p1", 50, "t1")},
		{page: makePage("p2", 30, "")}, // no next page
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 200, PageSize: 50})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(outcome.Items) != 80 {
		t.Errorf("Expected 80 items, got: %d", len(outcome.Items))
	}
	if !outcome.Partial {
		t.Error("Expected a partial result")
	}
}

func TestRunQuotaExceededIsPartialSuccess(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{page: makePage("p1", 50, "t1")},
		{page: makePage("p2", 50, "t2")},
		{err: fmt.Errorf("listing trending videos: %w", youtube.ErrQuotaExceeded)},
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 200, PageSize: 50})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected quota exhaustion to be non-fatal, got: %v", err)
	}

	if len(outcome.Items) != 100 {
		t.Errorf("Expected 100 items, got: %d", len(outcome.Items))
	}
	if !outcome.Partial {
		t.Error("Expected a partial result")
	}
	if outcome.Requests != 2 {
		t.Errorf("Expected 2 successful requests, got: %d", outcome.Requests)
	}
}

func TestRunResumesFromCheckpoint(t *testing.T) {
	store := &memStore{checkpoints: []database.Checkpoint{{
		Items:         makePage("old", 50, "").Items,
		NextPageToken: "t1",
		RequestCount:  1,
	}}}
	api := &fakeAPI{responses: []fakeResponse{
		{page: makePage("new", 50, "t2")},
	}}
	c := newCollector(t, api, store, Options{TargetCount: 100, PageSize: 50})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(outcome.Items) != 100 {
		t.Fatalf("Expected 100 items, got: %d", len(outcome.Items))
	}
	// Checkpointed items come first, verbatim.
	if outcome.Items[0].ID != "old-0" || outcome.Items[49].ID != "old-49" {
		t.Errorf("Expected checkpointed items first, got: %s ... %s",
			outcome.Items[0].ID, outcome.Items[49].ID)
	}
	if outcome.Items[50].ID != "new-0" {
		t.Errorf("Expected fresh items after the checkpoint, got: %s", outcome.Items[50].ID)
	}
	if api.tokens[0] != "t1" {
		t.Errorf("Expected resume from token 't1', got: %q", api.tokens[0])
	}
	if outcome.Requests != 2 {
		t.Errorf("Expected checkpointed request count to carry over, got: %d", outcome.Requests)
	}
}

func TestRunCheckpointsAfterEveryPage(t *testing.T) {
	store := &memStore{}
	api := &fakeAPI{responses: []fakeResponse{
		{page: makePage("p1", 50, "t1")},
		{page: makePage("p2", 50, "")},
	}}
	c := newCollector(t, api, store, Options{TargetCount: 200, PageSize: 50})

	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(store.checkpoints) != 2 {
		t.Fatalf("Expected 2 checkpoints, got: %d", len(store.checkpoints))
	}
	if got := len(store.checkpoints[0].Items); got != 50 {
		t.Errorf("Expected 50 items in first checkpoint, got: %d", got)
	}
	if store.checkpoints[0].NextPageToken != "t1" {
		t.Errorf("Expected token 't1' in first checkpoint, got: %q", store.checkpoints[0].NextPageToken)
	}
	if got := len(store.checkpoints[1].Items); got != 100 {
		t.Errorf("Expected 100 items in second checkpoint, got: %d", got)
	}
}

func TestRunStoreFailuresAreNonFatal(t *testing.T) {
	store := &memStore{
		saveErr: errors.New("disk full"),
		loadErr: errors.New("corrupt row"),
	}
	api := &fakeAPI{responses: []fakeResponse{
		{page: makePage("p1", 50, "")},
	}}
	c := newCollector(t, api, store, Options{TargetCount: 50, PageSize: 50})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected store failures to be non-fatal, got: %v", err)
	}
	if len(outcome.Items) != 50 {
		t.Errorf("Expected 50 items, got: %d", len(outcome.Items))
	}
	// A broken load means a fresh start, not a crash.
	if api.tokens[0] != "" {
		t.Errorf("Expected a fresh start, got token: %q", api.tokens[0])
	}
}

func TestRunRetriesTransientErrors(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{err: errors.New("connection reset")},
		{err: errors.New("connection reset")},
		{page: makePage("p1", 50, "")},
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 50, PageSize: 50, MaxRetries: 3})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected recovery after retries, got: %v", err)
	}
	if len(outcome.Items) != 50 {
		t.Errorf("Expected 50 items, got: %d", len(outcome.Items))
	}
	if api.calls != 3 {
		t.Errorf("Expected 3 calls, got: %d", api.calls)
	}
}

func TestRunGivesUpAfterMaxRetries(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{err: errors.New("connection reset")},
		{err: errors.New("connection reset")},
		{err: errors.New("connection reset")},
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 50, PageSize: 50, MaxRetries: 2})

	_, err := c.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	if !strings.Contains(err.Error(), "after 2 retries") {
		t.Errorf("Expected retry count in error, got: %v", err)
	}
	if api.calls != 3 {
		t.Errorf("Expected 3 calls (initial + 2 retries), got: %d", api.calls)
	}
}

func TestRunRetryCounterResetsOnSuccess(t *testing.T) {
	api := &fakeAPI{responses: []fakeResponse{
		{err: errors.New("timeout")},
		{page: makePage("p1", 50, "t1")},
		{err: errors.New("timeout")},
		{page: makePage("p2", 50, "")},
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 100, PageSize: 50, MaxRetries: 1})

	outcome, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected each page to get its own retry budget, got: %v", err)
	}
	if len(outcome.Items) != 100 {
		t.Errorf("Expected 100 items, got: %d", len(outcome.Items))
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := &fakeAPI{responses: []fakeResponse{
		{err: errors.New("dial: context canceled")},
	}}
	c := newCollector(t, api, nil, Options{TargetCount: 50, PageSize: 50})

	if _, err := c.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}
