package week

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/schedule"
	"github.com/Veraticus/classwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tuesday = time.Date(2025, 3, 4, 10, 0, 0, 0, time.Local)

func newLoader(t *testing.T) (*Loader, *testutil.FakeFetcher, *schedule.Store, *testutil.MemoryCache) {
	t.Helper()
	fetcher := testutil.NewFakeFetcher()
	store := schedule.NewStore()
	cache := testutil.NewMemoryCache(model.CacheRecord{})
	return NewLoader(fetcher, store, cache, testutil.NewClock(tuesday)), fetcher, store, cache
}

func TestLoader_LoadCommitsAfterSwap(t *testing.T) {
	loader, fetcher, store, cache := newLoader(t)
	fetcher.Publish(7, testutil.StandardWeek())

	require.True(t, loader.Load(context.Background(), 7, ReasonManual))

	snap := store.Current()
	require.NotNil(t, snap)
	assert.Equal(t, 7, snap.WeekNumber)
	assert.Len(t, snap.Courses, 5)

	rec := cache.Record()
	assert.Equal(t, 7, rec.CachedWeek)
	assert.Equal(t, change.Fingerprint(snap), rec.Fingerprint)
	assert.True(t, tuesday.Equal(rec.LastLoadTime))

	history := cache.History()
	require.Len(t, history, 1)
	assert.Equal(t, ReasonManual, history[0].Reason)
	assert.Equal(t, 5, history[0].Courses)

	assert.False(t, fetcher.Calls()[0].NoCache)
}

func TestLoader_FailuresLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *testutil.FakeFetcher)
	}{
		{name: "absent week", prepare: func(*testutil.FakeFetcher) {}},
		{name: "network error", prepare: func(f *testutil.FakeFetcher) { f.Fail(8, common.ErrNetwork) }},
		{name: "bad code", prepare: func(f *testutil.FakeFetcher) {
			p := testutil.StandardWeek()
			p.Code = "0"
			f.Publish(8, p)
		}},
		{name: "empty course list", prepare: func(f *testutil.FakeFetcher) { f.Publish(8, testutil.Payload()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, fetcher, store, cache := newLoader(t)
			fetcher.Publish(7, testutil.StandardWeek())
			require.True(t, loader.Load(context.Background(), 7, ReasonManual))
			before := store.Current()

			tt.prepare(fetcher)
			assert.False(t, loader.Load(context.Background(), 8, ReasonManual))

			assert.Same(t, before, store.Current())
			assert.Equal(t, 7, cache.Record().CachedWeek)
			assert.Len(t, cache.History(), 1)
		})
	}
}

func TestLoader_ReloadBypassesCache(t *testing.T) {
	loader, fetcher, _, cache := newLoader(t)
	fetcher.Publish(3, testutil.StandardWeek())

	require.True(t, loader.Reload(context.Background(), 3, change.ReasonChanged))

	calls := fetcher.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].NoCache)
	assert.Equal(t, change.ReasonChanged, cache.History()[0].Reason)
}

func TestLoader_CacheWriteFailureStillLoads(t *testing.T) {
	loader, fetcher, store, cache := newLoader(t)
	fetcher.Publish(2, testutil.StandardWeek())
	cache.Err = errors.New("disk full")

	assert.True(t, loader.Load(context.Background(), 2, ReasonManual))
	assert.Equal(t, 2, store.Week())
}

func TestLoader_RejectsInvalidWeek(t *testing.T) {
	loader, fetcher, _, _ := newLoader(t)
	assert.False(t, loader.Load(context.Background(), 0, ReasonManual))
	assert.Empty(t, fetcher.Calls())
}

func TestLoader_CommitsToSQLiteCache(t *testing.T) {
	fetcher := testutil.NewFakeFetcher()
	fetcher.Publish(7, testutil.StandardWeek())
	cache := testutil.SetupTestCache(t)
	loader := NewLoader(fetcher, schedule.NewStore(), cache, testutil.NewClock(tuesday))

	require.True(t, loader.Load(context.Background(), 7, ReasonScan))

	rec, err := cache.GetCacheRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, rec.CachedWeek)
	assert.NotEmpty(t, rec.Fingerprint)
	assert.True(t, tuesday.Equal(rec.LastLoadTime))

	loads, err := cache.ListLoads(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, loads, 1)
	assert.Equal(t, ReasonScan, loads[0].Reason)
	assert.NotEmpty(t, loads[0].ID)
}
