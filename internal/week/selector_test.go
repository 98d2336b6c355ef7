package week

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/schedule"
	"github.com/Veraticus/classwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saturday = time.Date(2025, 3, 8, 9, 0, 0, 0, time.Local)

type selectorFixture struct {
	selector  *Selector
	fetcher   *testutil.FakeFetcher
	store     *schedule.Store
	cache     *testutil.MemoryCache
	presenter *testutil.RecordingPresenter
}

func newSelector(t *testing.T, now time.Time, cached int, opts ...Option) selectorFixture {
	t.Helper()
	fetcher := testutil.NewFakeFetcher()
	store := schedule.NewStore()
	cache := testutil.NewMemoryCache(model.CacheRecord{CachedWeek: cached})
	presenter := &testutil.RecordingPresenter{}
	clock := testutil.NewClock(now)
	loader := NewLoader(fetcher, store, cache, clock)
	return selectorFixture{
		selector:  NewSelector(loader, cache, presenter, clock, opts...),
		fetcher:   fetcher,
		store:     store,
		cache:     cache,
		presenter: presenter,
	}
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(saturday.AddDate(0, 0, 1)))
	assert.False(t, IsWeekend(saturday.AddDate(0, 0, 2)))
	assert.False(t, IsWeekend(tuesday))
	assert.True(t, IsWeekend(time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local)), "all of Saturday counts")
	assert.True(t, IsWeekend(time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local)), "all of Sunday counts")
}

func TestSelect_WeekendFallsBackToCachedWeek(t *testing.T) {
	fx := newSelector(t, saturday, 5)
	fx.fetcher.Publish(5, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())

	assert.Equal(t, Selection{Week: 5, Found: true, Attempts: 2}, sel)
	assert.Equal(t, []int{6, 5}, fx.fetcher.Weeks())
	assert.Equal(t, 5, fx.store.Week())
	assert.Equal(t, ReasonCached, fx.cache.History()[0].Reason)
}

func TestSelect_WeekendLooksAhead(t *testing.T) {
	fx := newSelector(t, saturday, 5)
	fx.fetcher.Publish(5, testutil.StandardWeek())
	fx.fetcher.Publish(6, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())

	assert.Equal(t, Selection{Week: 6, Found: true, Attempts: 1}, sel)
	assert.Equal(t, 6, fx.cache.Record().CachedWeek)
	assert.Equal(t, ReasonLookAhead, fx.cache.History()[0].Reason)
}

func TestSelect_WeekdayLoadsCachedWeek(t *testing.T) {
	fx := newSelector(t, tuesday, 5)
	fx.fetcher.Publish(5, testutil.StandardWeek())
	fx.fetcher.Publish(6, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())

	assert.Equal(t, Selection{Week: 5, Found: true, Attempts: 1}, sel)
	assert.Equal(t, []int{5}, fx.fetcher.Weeks(), "no look-ahead on weekdays")
}

func TestSelect_NoCacheScansDescending(t *testing.T) {
	fx := newSelector(t, tuesday, 0, WithMaxWeek(10))
	fx.fetcher.Publish(3, testutil.StandardWeek())
	fx.fetcher.Publish(7, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())

	assert.Equal(t, Selection{Week: 7, Found: true, Attempts: 4}, sel)
	assert.Equal(t, []int{10, 9, 8, 7}, fx.fetcher.Weeks())
}

func TestSelect_NoCacheOnWeekendScansWithoutLookAhead(t *testing.T) {
	fx := newSelector(t, saturday, 0, WithMaxWeek(4))
	fx.fetcher.Publish(4, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())

	assert.Equal(t, 4, sel.Week)
	assert.Equal(t, []int{4}, fx.fetcher.Weeks())
}

func TestSelect_CachedWeekGoneScans(t *testing.T) {
	fx := newSelector(t, tuesday, 5, WithMaxWeek(6))
	fx.fetcher.Publish(2, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())

	assert.Equal(t, Selection{Week: 2, Found: true, Attempts: 6}, sel)
	assert.Equal(t, []int{5, 6, 5, 4, 3, 2}, fx.fetcher.Weeks())
	assert.Equal(t, ReasonScan, fx.cache.History()[0].Reason)
}

func TestSelect_ExhaustedScanReportsNoData(t *testing.T) {
	fx := newSelector(t, saturday, 5, WithMaxWeek(3))

	sel := fx.selector.Select(context.Background())

	assert.False(t, sel.Found)
	assert.Equal(t, 0, sel.Week)
	assert.Equal(t, []int{6, 5, 3, 2, 1}, fx.fetcher.Weeks())
	_, _, noData := fx.presenter.Snapshot()
	assert.Equal(t, 1, noData)
	assert.Nil(t, fx.store.Current())
}

func TestSelect_ShapeFailureContinuesScan(t *testing.T) {
	fx := newSelector(t, tuesday, 0, WithMaxWeek(3))
	bad := testutil.StandardWeek()
	bad.Code = "500"
	fx.fetcher.Publish(3, bad)
	fx.fetcher.Publish(2, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())
	assert.Equal(t, 2, sel.Week)
}

func TestSelect_CacheReadErrorTreatedAsEmpty(t *testing.T) {
	fx := newSelector(t, tuesday, 5, WithMaxWeek(2))
	fx.cache.Err = assert.AnError
	fx.fetcher.Publish(2, testutil.StandardWeek())

	sel := fx.selector.Select(context.Background())
	assert.Equal(t, 2, sel.Week)
	assert.Equal(t, []int{2}, fx.fetcher.Weeks())
}

func TestSelect_CancelledStopsScan(t *testing.T) {
	fx := newSelector(t, tuesday, 0, WithMaxWeek(5))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sel := fx.selector.Select(ctx)

	assert.False(t, sel.Found)
	assert.Empty(t, fx.fetcher.Weeks())
	_, _, noData := fx.presenter.Snapshot()
	assert.Zero(t, noData, "cancellation is not an exhausted scan")
}

func TestScan_ProgressHook(t *testing.T) {
	var attempted []int
	fx := newSelector(t, tuesday, 9, WithMaxWeek(4), WithProgress(func(w int) {
		attempted = append(attempted, w)
	}))
	fx.fetcher.Publish(9, testutil.StandardWeek())
	fx.fetcher.Publish(2, testutil.StandardWeek())

	sel := fx.selector.Scan(context.Background())

	require.True(t, sel.Found)
	assert.Equal(t, 2, sel.Week, "Scan ignores the cached week")
	assert.Equal(t, []int{4, 3, 2}, attempted)
	assert.Equal(t, 4, fx.selector.MaxWeek())
}
