// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/classwatch/internal/model"
)

// FetchOptions tunes a single week fetch.
type FetchOptions struct {
	// NoCache asks the source to bypass any intermediate HTTP caches.
	NoCache bool
}

// Fetcher retrieves the published document for one week.
//
// Implementations return errors wrapping common.ErrNetwork,
// common.ErrWeekNotFound or common.ErrShape.
type Fetcher interface {
	FetchWeek(ctx context.Context, week int, opts FetchOptions) (*model.WeekPayload, error)
}

// CacheStore defines the contract for the persisted cache record.
type CacheStore interface {
	// GetCacheRecord returns the zero record when nothing has been cached.
	GetCacheRecord(ctx context.Context) (model.CacheRecord, error)

	// CommitLoad stores week, fingerprint and load time together and
	// appends rec to the load history.
	CommitLoad(ctx context.Context, rec model.LoadRecord) error

	// TouchLastLoad records a successful check that did not change data.
	TouchLastLoad(ctx context.Context, at time.Time) error

	ListLoads(ctx context.Context, limit int) ([]model.LoadRecord, error)
	ClearCache(ctx context.Context) error

	Migrate(ctx context.Context) error
	Close() error
}

// Presenter receives what the core has to show. It must not block.
type Presenter interface {
	ShowStatus(snap *model.WeekSnapshot, status model.StatusResult)
	ScheduleChanged(week int)
	NoData()
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
