package poller

import (
	"fmt"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/timemath"
	"github.com/Veraticus/classwatch/internal/week"
)

// Config controls the poll loop.
type Config struct {
	// Checkpoints are minutes since midnight at which workday change
	// checks run.
	Checkpoints []int
	Interval    time.Duration
	Window      time.Duration
	Debounce    time.Duration
}

// DefaultConfig polls every 30 minutes and checks for changes around
// 12:00 and 20:00.
func DefaultConfig() Config {
	return Config{
		Checkpoints: []int{12 * 60, 20 * 60},
		Interval:    30 * time.Minute,
		Window:      5 * time.Minute,
		Debounce:    10 * time.Minute,
	}
}

// ParseCheckpoints converts "HH:MM" values to minutes since midnight.
func ParseCheckpoints(values []string) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		t, err := time.Parse("15:04", v)
		if err != nil {
			return nil, fmt.Errorf("%w: checkpoint %q: %w", common.ErrInvalidConfig, v, err)
		}
		out = append(out, timemath.MinutesOf(t))
	}
	return out, nil
}

// ShouldCheckNextWeek reports whether a tick at now re-runs week
// selection for the weekend look-ahead.
func ShouldCheckNextWeek(now time.Time) bool {
	return week.IsWeekend(now)
}

// ShouldCheckCourseChange reports whether a tick at now runs a change
// check: a workday, within cfg.Window of a checkpoint, and at least
// cfg.Debounce after the last load.
func ShouldCheckCourseChange(now, lastLoad time.Time, cfg Config) bool {
	if week.IsWeekend(now) {
		return false
	}
	if !inCheckpointWindow(timemath.MinutesOf(now), cfg) {
		return false
	}
	if lastLoad.IsZero() {
		return true
	}
	return now.Sub(lastLoad) >= cfg.Debounce
}

const minutesPerDay = 24 * 60

// inCheckpointWindow measures distance on the clock face, so a window
// around a late checkpoint reaches past midnight.
func inCheckpointWindow(minutes int, cfg Config) bool {
	window := int(cfg.Window / time.Minute)
	for _, cp := range cfg.Checkpoints {
		d := (minutes - cp + minutesPerDay) % minutesPerDay
		if d > minutesPerDay/2 {
			d = minutesPerDay - d
		}
		if d <= window {
			return true
		}
	}
	return false
}
