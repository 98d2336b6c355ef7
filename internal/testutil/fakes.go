package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/service"
)

// FakeFetcher serves week documents from memory. Weeks without an entry
// fail with common.ErrWeekNotFound.
type FakeFetcher struct {
	Payloads map[int]*model.WeekPayload
	Errors   map[int]error
	calls    []FetchCall
	mu       sync.Mutex
}

// FetchCall records a single FetchWeek invocation.
type FetchCall struct {
	Week    int
	NoCache bool
}

// NewFakeFetcher creates an empty fetcher.
func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{
		Payloads: make(map[int]*model.WeekPayload),
		Errors:   make(map[int]error),
	}
}

// Publish makes week available.
func (f *FakeFetcher) Publish(week int, p *model.WeekPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Payloads[week] = p
}

// Fail makes week fail with err.
func (f *FakeFetcher) Fail(week int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[week] = err
}

// FetchWeek implements service.Fetcher.
func (f *FakeFetcher) FetchWeek(ctx context.Context, week int, opts service.FetchOptions) (*model.WeekPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, FetchCall{Week: week, NoCache: opts.NoCache})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.Errors[week]; ok {
		return nil, err
	}
	p, ok := f.Payloads[week]
	if !ok {
		return nil, common.ErrWeekNotFound
	}
	return p, nil
}

// Calls returns the recorded invocations.
func (f *FakeFetcher) Calls() []FetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FetchCall(nil), f.calls...)
}

// Weeks returns the requested week numbers in order.
func (f *FakeFetcher) Weeks() []int {
	calls := f.Calls()
	weeks := make([]int, len(calls))
	for i, c := range calls {
		weeks[i] = c.Week
	}
	return weeks
}

// MemoryCache is an in-memory service.CacheStore.
type MemoryCache struct {
	Err     error
	record  model.CacheRecord
	history []model.LoadRecord
	mu      sync.Mutex
}

// NewMemoryCache creates a cache seeded with rec.
func NewMemoryCache(rec model.CacheRecord) *MemoryCache {
	return &MemoryCache{record: rec}
}

// GetCacheRecord implements service.CacheStore.
func (m *MemoryCache) GetCacheRecord(_ context.Context) (model.CacheRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return model.CacheRecord{}, m.Err
	}
	return m.record, nil
}

// CommitLoad implements service.CacheStore.
func (m *MemoryCache) CommitLoad(_ context.Context, rec model.LoadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.record = model.CacheRecord{
		CachedWeek:   rec.Week,
		Fingerprint:  rec.Fingerprint,
		LastLoadTime: rec.LoadedAt,
	}
	m.history = append(m.history, rec)
	return nil
}

// TouchLastLoad implements service.CacheStore.
func (m *MemoryCache) TouchLastLoad(_ context.Context, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.record.LastLoadTime = at
	return nil
}

// ListLoads implements service.CacheStore, newest first.
func (m *MemoryCache) ListLoads(_ context.Context, limit int) ([]model.LoadRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.LoadRecord(nil), m.history...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LoadedAt.After(out[j].LoadedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ClearCache implements service.CacheStore.
func (m *MemoryCache) ClearCache(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = model.CacheRecord{}
	return nil
}

// Migrate implements service.CacheStore.
func (m *MemoryCache) Migrate(_ context.Context) error { return nil }

// Close implements service.CacheStore.
func (m *MemoryCache) Close() error { return nil }

// Record returns the current cache record.
func (m *MemoryCache) Record() model.CacheRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record
}

// History returns every committed load in commit order.
func (m *MemoryCache) History() []model.LoadRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.LoadRecord(nil), m.history...)
}

// RecordingPresenter captures everything the core emits.
type RecordingPresenter struct {
	Statuses []model.StatusResult
	Changed  []int
	NoDatas  int
	mu       sync.Mutex
}

// ShowStatus implements service.Presenter.
func (p *RecordingPresenter) ShowStatus(_ *model.WeekSnapshot, status model.StatusResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Statuses = append(p.Statuses, status)
}

// ScheduleChanged implements service.Presenter.
func (p *RecordingPresenter) ScheduleChanged(week int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Changed = append(p.Changed, week)
}

// NoData implements service.Presenter.
func (p *RecordingPresenter) NoData() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.NoDatas++
}

// Snapshot returns copies of the recorded values.
func (p *RecordingPresenter) Snapshot() (statuses []model.StatusResult, changed []int, noData int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.StatusResult(nil), p.Statuses...), append([]int(nil), p.Changed...), p.NoDatas
}

// Clock is a settable clock for tests.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

// NewClock creates a clock fixed at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now implements timemath.Clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
