package timemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"08:05", 485},
		{"23:59", 1439},
		{" 9:30 ", 570},
		{"", 0},
		{"noon", 0},
		{"12", 0},
		{"ab:10", 0},
		{"10:xx", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTime(tt.input))
		})
	}
}

func TestMinutesNow(t *testing.T) {
	clock := ClockFunc(func() time.Time {
		return time.Date(2025, 3, 4, 10, 15, 42, 0, time.Local)
	})
	assert.Equal(t, 615, MinutesNow(clock))
	assert.Equal(t, 15, Diff("10:30", MinutesNow(clock)))
	assert.Equal(t, -15, Diff("10:00", MinutesNow(clock)))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		minutes int
	}{
		{name: "negative", minutes: -1, want: ""},
		{name: "very negative", minutes: -500, want: ""},
		{name: "zero", minutes: 0, want: "starting now"},
		{name: "one minute", minutes: 1, want: "1 minute"},
		{name: "minutes", minutes: 45, want: "45 minutes"},
		{name: "exact hour", minutes: 60, want: "1 hour"},
		{name: "hour and minutes", minutes: 90, want: "1 hour 30 minutes"},
		{name: "hour and one minute", minutes: 61, want: "1 hour 1 minute"},
		{name: "just under two hours", minutes: 119, want: "1 hour 59 minutes"},
		{name: "two hours", minutes: 120, want: "2 hours"},
		{name: "minutes suppressed", minutes: 150, want: "2 hours"},
		{name: "long", minutes: 605, want: "10 hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.minutes))
		})
	}

	assert.Contains(t, FormatDuration(45), "45")
}
