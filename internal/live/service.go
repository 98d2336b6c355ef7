// Package live wires the schedule core into one object with a start/stop
// lifecycle.
package live

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/poller"
	"github.com/Veraticus/classwatch/internal/schedule"
	"github.com/Veraticus/classwatch/internal/scheduler"
	"github.com/Veraticus/classwatch/internal/service"
	"github.com/Veraticus/classwatch/internal/status"
	"github.com/Veraticus/classwatch/internal/timemath"
	"github.com/Veraticus/classwatch/internal/week"
)

// DefaultStatusInterval is how often status is re-emitted while running.
const DefaultStatusInterval = 30 * time.Second

// Config tunes the running service.
type Config struct {
	Poll           poller.Config
	StatusInterval time.Duration
	MaxWeek        int
}

// Deps are the collaborators the service does not own.
type Deps struct {
	Fetcher   service.Fetcher
	Cache     service.CacheStore
	Presenter service.Presenter
	Clock     timemath.Clock
	// OnAttempt, when set, observes every week the selector tries.
	OnAttempt func(week int)
}

// Service is the application context: it owns the snapshot store, the
// scheduler and everything that runs on it. Stop tears all of it down.
type Service struct {
	store     *schedule.Store
	loader    *week.Loader
	selector  *week.Selector
	tracker   *change.Tracker
	poller    *poller.Poller
	sched     *scheduler.Scheduler
	presenter service.Presenter
	clock     timemath.Clock
	cfg       Config
	mu        sync.Mutex
	started   bool
}

// New builds a service. It does not fetch anything until Start or Refresh.
func New(cfg Config, deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = timemath.SystemClock{}
	}
	if deps.Presenter == nil {
		deps.Presenter = nopPresenter{}
	}
	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = DefaultStatusInterval
	}

	store := schedule.NewStore()
	loader := week.NewLoader(deps.Fetcher, store, deps.Cache, deps.Clock)

	opts := []week.Option{week.WithMaxWeek(cfg.MaxWeek)}
	if deps.OnAttempt != nil {
		opts = append(opts, week.WithProgress(deps.OnAttempt))
	}
	selector := week.NewSelector(loader, deps.Cache, deps.Presenter, deps.Clock, opts...)
	tracker := change.NewTracker(deps.Fetcher, deps.Cache, loader, deps.Presenter, deps.Clock)
	sched := scheduler.New()

	return &Service{
		store:     store,
		loader:    loader,
		selector:  selector,
		tracker:   tracker,
		poller:    poller.New(cfg.Poll, selector, tracker, deps.Cache, deps.Clock, sched),
		sched:     sched,
		presenter: deps.Presenter,
		clock:     deps.Clock,
		cfg:       cfg,
	}
}

// Start selects a week, emits the first status and begins polling and
// periodic status emission.
func (s *Service) Start(ctx context.Context) (week.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return week.Selection{Week: s.store.Week(), Found: s.store.Week() > 0}, nil
	}
	if s.sched.Stopped() {
		return week.Selection{}, scheduler.ErrStopped
	}

	sel := s.selector.Select(ctx)
	s.emit()

	if err := s.poller.Start(); err != nil {
		return sel, err
	}
	if _, err := s.sched.Every(s.cfg.StatusInterval, func(context.Context) { s.emit() }); err != nil {
		return sel, err
	}
	s.started = true

	slog.Info("Service started",
		"week", sel.Week,
		"found", sel.Found,
		"status_interval", s.cfg.StatusInterval)
	return sel, nil
}

// Stop cancels every timer the service started. It is safe to call more
// than once and before Start.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poller.Stop()
	s.sched.Stop()
	if s.started {
		slog.Info("Service stopped")
	}
	s.started = false
}

// Refresh re-runs week selection and emits the resulting status.
func (s *Service) Refresh(ctx context.Context) week.Selection {
	sel := s.selector.Select(ctx)
	s.emit()
	return sel
}

// Scan ignores the cached week and loads the highest published week.
func (s *Service) Scan(ctx context.Context) week.Selection {
	sel := s.selector.Scan(ctx)
	s.emit()
	return sel
}

// Load makes a specific week current.
func (s *Service) Load(ctx context.Context, n int) bool {
	ok := s.loader.Load(ctx, n, week.ReasonManual)
	if ok {
		s.emit()
	}
	return ok
}

// CheckChanges runs a change check immediately.
func (s *Service) CheckChanges(ctx context.Context) change.Result {
	res := s.tracker.Check(ctx)
	if res.Reloaded {
		s.emit()
	}
	return res
}

// Status classifies the current time against the loaded week.
func (s *Service) Status() model.StatusResult {
	return status.Detect(s.store.Current(), s.clock.Now())
}

// Snapshot returns the loaded week, or nil.
func (s *Service) Snapshot() *model.WeekSnapshot {
	return s.store.Current()
}

// Now returns the service clock's time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Scheduler exposes the scheduler so presentation code can register
// one-shots that Stop also cancels.
func (s *Service) Scheduler() *scheduler.Scheduler {
	return s.sched
}

// MaxWeek returns the scan upper bound.
func (s *Service) MaxWeek() int {
	return s.selector.MaxWeek()
}

func (s *Service) emit() {
	snap := s.store.Current()
	s.presenter.ShowStatus(snap, status.Detect(snap, s.clock.Now()))
}

type nopPresenter struct{}

func (nopPresenter) ShowStatus(*model.WeekSnapshot, model.StatusResult) {}
func (nopPresenter) ScheduleChanged(int)                                {}
func (nopPresenter) NoData()                                            {}
