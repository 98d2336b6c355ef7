// Package week loads week documents into the schedule store and decides
// which week to load.
package week

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/schedule"
	"github.com/Veraticus/classwatch/internal/service"
	"github.com/Veraticus/classwatch/internal/timemath"
)

// Load reasons recorded in the load history.
const (
	ReasonManual    = "manual"
	ReasonLookAhead = "look-ahead"
	ReasonCached    = "cached"
	ReasonScan      = "scan"
)

// Loader is the load boundary: fetch, validate, swap the snapshot, then
// persist. Every failure collapses to false.
type Loader struct {
	fetcher service.Fetcher
	store   *schedule.Store
	cache   service.CacheStore
	clock   timemath.Clock
	mu      sync.Mutex
}

// NewLoader creates a loader writing into store and cache.
func NewLoader(fetcher service.Fetcher, store *schedule.Store, cache service.CacheStore, clock timemath.Clock) *Loader {
	if clock == nil {
		clock = timemath.SystemClock{}
	}
	return &Loader{
		fetcher: fetcher,
		store:   store,
		cache:   cache,
		clock:   clock,
	}
}

// Load fetches week and makes it current. It reports whether the week is
// now loaded.
func (l *Loader) Load(ctx context.Context, week int, reason string) bool {
	return l.load(ctx, week, reason, service.FetchOptions{})
}

// Reload is Load with intermediate caches bypassed. It satisfies
// change.Reloader.
func (l *Loader) Reload(ctx context.Context, week int, reason string) bool {
	return l.load(ctx, week, reason, service.FetchOptions{NoCache: true})
}

func (l *Loader) load(ctx context.Context, week int, reason string, opts service.FetchOptions) bool {
	if week < 1 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	payload, err := l.fetcher.FetchWeek(ctx, week, opts)
	if err != nil {
		logLoadFailure(week, err)
		return false
	}

	loadedAt := l.clock.Now()
	snap, err := schedule.BuildSnapshot(payload, week, loadedAt)
	if err != nil {
		logLoadFailure(week, err)
		return false
	}

	l.store.Replace(snap)
	fingerprint := change.Fingerprint(snap)

	slog.Info("Loaded week",
		"week", week,
		"courses", len(snap.Courses),
		"fingerprint", fingerprint,
		"reason", reason)

	err = l.cache.CommitLoad(ctx, model.LoadRecord{
		Week:        week,
		Fingerprint: fingerprint,
		LoadedAt:    loadedAt,
		Courses:     len(snap.Courses),
		Reason:      reason,
	})
	if err != nil {
		common.LogError(err, "Failed to persist load", common.Fields{"week": week})
	}
	return true
}

func logLoadFailure(week int, err error) {
	switch {
	case errors.Is(err, common.ErrWeekNotFound):
		slog.Debug("Week not published", "week", week)
	case errors.Is(err, context.Canceled):
		slog.Debug("Week load cancelled", "week", week)
	default:
		slog.Warn("Week load failed", "week", week, "error", err)
	}
}
