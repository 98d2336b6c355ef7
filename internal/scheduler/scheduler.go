// Package scheduler runs cancellable repeating and one-shot tasks that are
// all torn down by a single Stop.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned when scheduling on a stopped scheduler.
var ErrStopped = errors.New("scheduler stopped")

// Task is the unit of work. ctx is cancelled when the task or the
// scheduler is stopped.
type Task func(ctx context.Context)

// Handle cancels a single scheduled task.
type Handle struct {
	s  *Scheduler
	id uint64
}

// Cancel stops the task. It reports whether the task was still pending.
func (h Handle) Cancel() bool {
	if h.s == nil {
		return false
	}
	return h.s.cancel(h.id)
}

type entry struct {
	timer  *time.Timer
	cancel context.CancelFunc
}

// Scheduler owns every timer the application starts.
type Scheduler struct {
	ctx     context.Context
	stop    context.CancelFunc
	entries map[uint64]*entry
	wg      sync.WaitGroup
	nextID  uint64
	mu      sync.Mutex
	stopped bool
}

// New creates a running scheduler.
func New() *Scheduler {
	ctx, stop := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:     ctx,
		stop:    stop,
		entries: make(map[uint64]*entry),
	}
}

// Every runs task every interval until cancelled. Runs of the same task
// never overlap.
func (s *Scheduler) Every(interval time.Duration, task Task) (Handle, error) {
	if interval <= 0 {
		return Handle{}, errors.New("interval must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return Handle{}, ErrStopped
	}

	id := s.allocate()
	ctx, cancel := context.WithCancel(s.ctx)
	s.entries[id] = &entry{cancel: cancel}
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				task(ctx)
			}
		}
	}()

	return Handle{s: s, id: id}, nil
}

// After runs task once after delay unless cancelled first.
func (s *Scheduler) After(delay time.Duration, task Task) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return Handle{}, ErrStopped
	}

	id := s.allocate()
	ctx, cancel := context.WithCancel(s.ctx)
	e := &entry{cancel: cancel}
	s.entries[id] = e
	e.timer = time.AfterFunc(delay, func() {
		if !s.claim(id) {
			return
		}
		defer s.wg.Done()
		defer cancel()
		task(ctx)
	})

	return Handle{s: s, id: id}, nil
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop cancels every task and waits for running ones to return. Tasks
// never start after Stop returns. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.stopped = true
	for id, e := range s.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		e.cancel()
		delete(s.entries, id)
	}
	s.stop()
	s.mu.Unlock()

	s.wg.Wait()
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *Scheduler) allocate() uint64 {
	s.nextID++
	return s.nextID
}

// claim removes a fired one-shot and registers it as running.
func (s *Scheduler) claim(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	s.wg.Add(1)
	return true
}

func (s *Scheduler) cancel(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.cancel()
	delete(s.entries, id)
	return true
}
