package change

import (
	"context"
	"log/slog"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/schedule"
	"github.com/Veraticus/classwatch/internal/service"
	"github.com/Veraticus/classwatch/internal/timemath"
)

// ReasonChanged is the load-history reason recorded for drift reloads.
const ReasonChanged = "schedule-changed"

// Reloader forces a load of a specific week. The week loader satisfies it.
type Reloader interface {
	Reload(ctx context.Context, week int, reason string) bool
}

// Result describes the outcome of one change check.
type Result struct {
	OldFingerprint string
	NewFingerprint string
	Week           int
	Checked        bool
	Changed        bool
	Reloaded       bool
}

// Tracker compares the published copy of the cached week against the
// cached fingerprint.
type Tracker struct {
	fetcher   service.Fetcher
	cache     service.CacheStore
	reloader  Reloader
	presenter service.Presenter
	clock     timemath.Clock
}

// NewTracker creates a tracker. presenter may be nil.
func NewTracker(fetcher service.Fetcher, cache service.CacheStore, reloader Reloader, presenter service.Presenter, clock timemath.Clock) *Tracker {
	if clock == nil {
		clock = timemath.SystemClock{}
	}
	return &Tracker{
		fetcher:   fetcher,
		cache:     cache,
		reloader:  reloader,
		presenter: presenter,
		clock:     clock,
	}
}

// Check force-fetches the cached week and reloads it when its fingerprint
// drifted. The cached fingerprint is only updated by a successful reload.
// Failures are logged; Check never returns an error.
func (t *Tracker) Check(ctx context.Context) Result {
	rec, err := t.cache.GetCacheRecord(ctx)
	if err != nil {
		common.LogError(err, "Change check could not read cache", nil)
		return Result{}
	}
	if !rec.HasWeek() {
		slog.Info("Change check skipped", "reason", common.ErrNoCachedWeek)
		return Result{}
	}

	result := Result{Week: rec.CachedWeek, OldFingerprint: rec.Fingerprint}

	payload, err := t.fetcher.FetchWeek(ctx, rec.CachedWeek, service.FetchOptions{NoCache: true})
	if err != nil {
		slog.Warn("Change check fetch failed", "week", rec.CachedWeek, "error", err)
		return result
	}
	snap, err := schedule.BuildSnapshot(payload, rec.CachedWeek, t.clock.Now())
	if err != nil {
		slog.Warn("Change check payload rejected", "week", rec.CachedWeek, "error", err)
		return result
	}

	result.Checked = true
	result.NewFingerprint = Fingerprint(snap)

	slog.Info("Compared fingerprints",
		"week", rec.CachedWeek,
		"old", result.OldFingerprint,
		"new", result.NewFingerprint)

	if !HasChanged(result.OldFingerprint, result.NewFingerprint) {
		if err := t.cache.TouchLastLoad(ctx, t.clock.Now()); err != nil {
			common.LogError(err, "Failed to record check time", common.Fields{"week": rec.CachedWeek})
		}
		return result
	}

	result.Changed = true
	slog.Warn("Schedule changed, reloading", "week", rec.CachedWeek)
	if t.presenter != nil {
		t.presenter.ScheduleChanged(rec.CachedWeek)
	}
	result.Reloaded = t.reloader.Reload(ctx, rec.CachedWeek, ReasonChanged)
	return result
}
