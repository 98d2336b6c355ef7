package live

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Veraticus/classwatch/internal/scheduler"
)

// Toggle is a two-state switch whose flip completes after a delay.
// Flips requested while one is pending are ignored.
type Toggle struct {
	sched   *scheduler.Scheduler
	delay   time.Duration
	pending atomic.Bool
	on      atomic.Bool
}

// NewToggle creates a toggle whose transitions run on sched.
func NewToggle(sched *scheduler.Scheduler, delay time.Duration) *Toggle {
	return &Toggle{sched: sched, delay: delay}
}

// Flip starts a transition. done, if non-nil, receives the new state once
// the transition completes. Flip reports whether the request was accepted.
func (t *Toggle) Flip(done func(on bool)) bool {
	if !t.pending.CompareAndSwap(false, true) {
		return false
	}

	_, err := t.sched.After(t.delay, func(context.Context) {
		state := !t.on.Load()
		t.on.Store(state)
		t.pending.Store(false)
		if done != nil {
			done(state)
		}
	})
	if err != nil {
		t.pending.Store(false)
		return false
	}
	return true
}

// On reports the settled state.
func (t *Toggle) On() bool {
	return t.on.Load()
}

// Pending reports whether a transition is in flight.
func (t *Toggle) Pending() bool {
	return t.pending.Load()
}
