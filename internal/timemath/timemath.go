// Package timemath holds the minute-of-day arithmetic used by status
// detection and the poller.
package timemath

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// ParseTime converts "HH:MM" to minutes since midnight. Empty or malformed
// input yields 0.
func ParseTime(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(minuteStr))
	if err != nil {
		return 0
	}
	return hours*60 + minutes
}

// MinutesOf returns minutes since local midnight for t.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesNow returns minutes since local midnight according to clock.
func MinutesNow(clock Clock) int {
	return MinutesOf(clock.Now())
}

// Diff returns target minus now, in minutes.
func Diff(target string, now int) int {
	return ParseTime(target) - now
}

// FormatDuration renders a minute count for display.
//
// Negative values render as "" and must not be shown. Between one and two
// hours the leftover minutes are kept; from two hours on only whole hours
// are shown.
func FormatDuration(minutes int) string {
	switch {
	case minutes < 0:
		return ""
	case minutes == 0:
		return "starting now"
	case minutes < 60:
		return plural(minutes, "minute")
	}

	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 || hours >= 2 {
		return plural(hours, "hour")
	}
	return fmt.Sprintf("%s %s", plural(hours, "hour"), plural(mins, "minute"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
