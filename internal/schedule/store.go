// Package schedule owns the in-memory week snapshot and turns published
// week documents into snapshots.
package schedule

import (
	"sync/atomic"

	"github.com/Veraticus/classwatch/internal/model"
)

// Store holds the current week snapshot. Readers always see either the
// previous snapshot or the next one, never a partial load.
type Store struct {
	current atomic.Pointer[model.WeekSnapshot]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Current returns the loaded snapshot, or nil before the first load.
func (s *Store) Current() *model.WeekSnapshot {
	return s.current.Load()
}

// Replace swaps in snap. Callers must only pass fully validated snapshots.
func (s *Store) Replace(snap *model.WeekSnapshot) {
	s.current.Store(snap)
}

// Week returns the week number of the current snapshot, or 0.
func (s *Store) Week() int {
	if snap := s.current.Load(); snap != nil {
		return snap.WeekNumber
	}
	return 0
}
