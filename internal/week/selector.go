package week

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/service"
	"github.com/Veraticus/classwatch/internal/timemath"
)

// DefaultMaxWeek is the highest week scanned when nothing better is known.
const DefaultMaxWeek = 22

// WeekLoader is satisfied by *Loader.
type WeekLoader interface {
	Load(ctx context.Context, week int, reason string) bool
}

// Selection is the outcome of one selection run.
type Selection struct {
	Week     int
	Found    bool
	Attempts int
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Selector picks the week to load: next week on weekends, then the cached
// week, then a descending scan from MaxWeek.
type Selector struct {
	loader    WeekLoader
	cache     service.CacheStore
	presenter service.Presenter
	clock     timemath.Clock
	onAttempt func(week int)
	maxWeek   int
	mu        sync.Mutex
}

// Option configures a Selector.
type Option func(*Selector)

// WithMaxWeek sets the upper bound of the descending scan.
func WithMaxWeek(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.maxWeek = n
		}
	}
}

// WithProgress registers a hook called before each attempted week.
func WithProgress(fn func(week int)) Option {
	return func(s *Selector) {
		s.onAttempt = fn
	}
}

// NewSelector creates a selector. presenter may be nil.
func NewSelector(loader WeekLoader, cache service.CacheStore, presenter service.Presenter, clock timemath.Clock, opts ...Option) *Selector {
	if clock == nil {
		clock = timemath.SystemClock{}
	}
	s := &Selector{
		loader:    loader,
		cache:     cache,
		presenter: presenter,
		clock:     clock,
		maxWeek:   DefaultMaxWeek,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxWeek returns the scan upper bound.
func (s *Selector) MaxWeek() int {
	return s.maxWeek
}

// Select runs the selection policy once. An exhausted scan notifies the
// presenter and is not retried.
func (s *Selector) Select(ctx context.Context) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sel Selection
	rec := s.cacheRecord(ctx)

	if IsWeekend(s.clock.Now()) && rec.HasWeek() {
		if s.try(ctx, &sel, rec.CachedWeek+1, ReasonLookAhead) {
			return sel
		}
	}

	if rec.HasWeek() {
		if s.try(ctx, &sel, rec.CachedWeek, ReasonCached) {
			return sel
		}
	}

	return s.scan(ctx, &sel)
}

// Scan ignores the cache and returns the highest published week.
func (s *Selector) Scan(ctx context.Context) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sel Selection
	return s.scan(ctx, &sel)
}

func (s *Selector) scan(ctx context.Context, sel *Selection) Selection {
	for w := s.maxWeek; w >= 1; w-- {
		if ctx.Err() != nil {
			return *sel
		}
		if s.try(ctx, sel, w, ReasonScan) {
			return *sel
		}
	}

	slog.Warn("No published week found", "max_week", s.maxWeek, "attempts", sel.Attempts)
	if s.presenter != nil {
		s.presenter.NoData()
	}
	return *sel
}

func (s *Selector) try(ctx context.Context, sel *Selection, week int, reason string) bool {
	sel.Attempts++
	if s.onAttempt != nil {
		s.onAttempt(week)
	}
	if !s.loader.Load(ctx, week, reason) {
		return false
	}
	sel.Week = week
	sel.Found = true
	return true
}

func (s *Selector) cacheRecord(ctx context.Context) model.CacheRecord {
	rec, err := s.cache.GetCacheRecord(ctx)
	if err != nil {
		common.LogError(err, "Failed to read cache, selecting without it", nil)
		return model.CacheRecord{}
	}
	return rec
}
