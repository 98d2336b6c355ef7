// Package poller drives periodic week selection and change checks.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/scheduler"
	"github.com/Veraticus/classwatch/internal/service"
	"github.com/Veraticus/classwatch/internal/timemath"
	"github.com/Veraticus/classwatch/internal/week"
)

// Selector re-runs week selection.
type Selector interface {
	Select(ctx context.Context) week.Selection
}

// Checker runs a change check.
type Checker interface {
	Check(ctx context.Context) change.Result
}

// TickResult reports which actions a tick ran.
type TickResult struct {
	Selection   *week.Selection
	ChangeCheck *change.Result
}

// Poller evaluates both conditions on every tick.
type Poller struct {
	selector Selector
	checker  Checker
	cache    service.CacheStore
	clock    timemath.Clock
	sched    *scheduler.Scheduler
	handle   scheduler.Handle
	cfg      Config
	mu       sync.Mutex
	running  bool
}

// New creates a poller that schedules its ticks on sched.
func New(cfg Config, selector Selector, checker Checker, cache service.CacheStore, clock timemath.Clock, sched *scheduler.Scheduler) *Poller {
	if clock == nil {
		clock = timemath.SystemClock{}
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Poller{
		selector: selector,
		checker:  checker,
		cache:    cache,
		clock:    clock,
		sched:    sched,
		cfg:      cfg,
	}
}

// Start schedules the repeating tick. Calling Start twice is a no-op.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	handle, err := p.sched.Every(p.cfg.Interval, func(ctx context.Context) {
		p.Tick(ctx)
	})
	if err != nil {
		return err
	}
	p.handle = handle
	p.running = true

	slog.Info("Poller started", "interval", p.cfg.Interval)
	return nil
}

// Stop cancels the repeating tick.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.handle.Cancel()
	p.running = false
	slog.Info("Poller stopped")
}

// Tick evaluates the weekend look-ahead and the workday change check
// independently, running zero, one or both.
func (p *Poller) Tick(ctx context.Context) TickResult {
	var result TickResult
	now := p.clock.Now()

	if ShouldCheckNextWeek(now) {
		sel := p.selector.Select(ctx)
		result.Selection = &sel
	}

	if ShouldCheckCourseChange(now, p.lastLoad(ctx), p.cfg) {
		res := p.checker.Check(ctx)
		result.ChangeCheck = &res
	}

	slog.Debug("Poll tick",
		"time", now.Format("15:04"),
		"selection", result.Selection != nil,
		"change_check", result.ChangeCheck != nil)
	return result
}

func (p *Poller) lastLoad(ctx context.Context) (last time.Time) {
	rec, err := p.cache.GetCacheRecord(ctx)
	if err != nil {
		common.LogError(err, "Poller could not read cache", nil)
		return last
	}
	return rec.LastLoadTime
}
