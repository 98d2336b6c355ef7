package status

import (
	"testing"
	"time"

	"github.com/Veraticus/classwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-03-04 is a Tuesday.
func tuesdayAt(hour, minute int) time.Time {
	return time.Date(2025, 3, 4, hour, minute, 0, 0, time.Local)
}

func snapshot(courses ...model.Course) *model.WeekSnapshot {
	return &model.WeekSnapshot{WeekNumber: 5, Courses: courses}
}

func TestDetect_InClass(t *testing.T) {
	snap := snapshot(model.Course{Name: "Algebra", Weekday: 2, StartTime: "09:00", EndTime: "10:30"})

	got := Detect(snap, tuesdayAt(10, 0))
	require.Equal(t, model.StatusInClass, got.Kind)
	assert.Equal(t, "Algebra", got.Course.Name)
	assert.Equal(t, 30, got.RemainingMinutes)
}

func TestDetect_Boundaries(t *testing.T) {
	snap := snapshot(
		model.Course{Name: "Instant", Weekday: 2, StartTime: "12:00", EndTime: "12:00"},
		model.Course{Name: "Morning", Weekday: 2, StartTime: "09:00", EndTime: "10:30"},
	)

	got := Detect(snap, tuesdayAt(12, 0))
	require.Equal(t, model.StatusInClass, got.Kind)
	assert.Equal(t, "Instant", got.Course.Name)
	assert.Equal(t, 0, got.RemainingMinutes)

	got = Detect(snap, tuesdayAt(10, 30))
	require.Equal(t, model.StatusInClass, got.Kind, "end minute is still in class")
	assert.Equal(t, "Morning", got.Course.Name)

	got = Detect(snap, tuesdayAt(9, 0))
	require.Equal(t, model.StatusInClass, got.Kind, "start minute is in class")
	assert.Equal(t, 90, got.RemainingMinutes)
}

func TestDetect_Upcoming(t *testing.T) {
	snap := snapshot(
		model.Course{Name: "Late", Weekday: 2, StartTime: "14:00", EndTime: "15:00"},
		model.Course{Name: "Early", Weekday: 2, StartTime: "09:00", EndTime: "10:00"},
	)

	got := Detect(snap, tuesdayAt(8, 0))
	require.Equal(t, model.StatusUpcoming, got.Kind)
	assert.Equal(t, "Early", got.Course.Name)
	assert.Equal(t, 60, got.MinutesUntil)

	got = Detect(snap, tuesdayAt(12, 0))
	require.Equal(t, model.StatusUpcoming, got.Kind)
	assert.Equal(t, "Late", got.Course.Name)
	assert.Equal(t, 120, got.MinutesUntil)
}

func TestDetect_TieBreakKeepsLoadOrder(t *testing.T) {
	snap := snapshot(
		model.Course{Name: "Section A", Weekday: 2, StartTime: "09:00", EndTime: "10:00"},
		model.Course{Name: "Section B", Weekday: 2, StartTime: "09:00", EndTime: "10:00"},
	)

	assert.Equal(t, "Section A", Detect(snap, tuesdayAt(8, 0)).Course.Name)
	assert.Equal(t, "Section A", Detect(snap, tuesdayAt(9, 30)).Course.Name)
}

func TestDetect_Tomorrow(t *testing.T) {
	snap := snapshot(
		model.Course{Name: "Done", Weekday: 2, StartTime: "08:00", EndTime: "09:00"},
		model.Course{Name: "Wed 3", Weekday: 3, StartTime: "15:00", EndTime: "16:00"},
		model.Course{Name: "Wed 1", Weekday: 3, StartTime: "08:00", EndTime: "09:00"},
		model.Course{Name: "Wed 2", Weekday: 3, StartTime: "10:00", EndTime: "11:00"},
	)

	got := Detect(snap, tuesdayAt(18, 0))
	require.Equal(t, model.StatusTomorrow, got.Kind)
	require.Len(t, got.Courses, 3)
	assert.Equal(t, "Wed 1", got.Courses[0].Name)
	assert.Equal(t, "Wed 2", got.Courses[1].Name)
	assert.Equal(t, "Wed 3", got.Courses[2].Name)
	assert.Nil(t, got.Course)
}

func TestDetect_TomorrowWrapsToSunday(t *testing.T) {
	snap := snapshot(model.Course{Name: "Sunday Lab", Weekday: 0, StartTime: "10:00", EndTime: "12:00"})
	saturday := time.Date(2025, 3, 8, 20, 0, 0, 0, time.Local)

	got := Detect(snap, saturday)
	require.Equal(t, model.StatusTomorrow, got.Kind)
	assert.Equal(t, "Sunday Lab", got.Courses[0].Name)
}

func TestDetect_NoClass(t *testing.T) {
	assert.Equal(t, model.NoClass(), Detect(nil, tuesdayAt(9, 0)))
	assert.Equal(t, model.NoClass(), Detect(&model.WeekSnapshot{}, tuesdayAt(9, 0)))

	snap := snapshot(model.Course{Name: "Friday", Weekday: 5, StartTime: "09:00", EndTime: "10:00"})
	assert.Equal(t, model.StatusNoClass, Detect(snap, tuesdayAt(9, 0)).Kind)
}

func TestDetect_Idempotent(t *testing.T) {
	snap := snapshot(
		model.Course{Name: "A", Weekday: 2, StartTime: "09:00", EndTime: "10:30"},
		model.Course{Name: "B", Weekday: 3, StartTime: "09:00", EndTime: "10:30"},
	)
	now := tuesdayAt(11, 0)

	first := Detect(snap, now)
	second := Detect(snap, now)
	assert.Equal(t, first, second)
}

func TestStartingSoon(t *testing.T) {
	c := model.Course{Name: "A"}
	assert.True(t, StartingSoon(model.Upcoming(c, 5)))
	assert.True(t, StartingSoon(model.Upcoming(c, 0)))
	assert.False(t, StartingSoon(model.Upcoming(c, 6)))
	assert.False(t, StartingSoon(model.InClass(c, 3)))
}

func TestCompletedDays(t *testing.T) {
	snap := snapshot(
		model.Course{Name: "Mon", Weekday: 1, StartTime: "08:00", EndTime: "09:00"},
		model.Course{Name: "Tue 1", Weekday: 2, StartTime: "08:00", EndTime: "09:00"},
		model.Course{Name: "Tue 2", Weekday: 2, StartTime: "14:00", EndTime: "15:00"},
	)

	done := CompletedDays(snap, tuesdayAt(12, 0))
	assert.True(t, done[0])
	assert.True(t, done[1])
	assert.False(t, done[2], "afternoon course still pending")
	assert.False(t, done[3])

	done = CompletedDays(snap, tuesdayAt(15, 1))
	assert.True(t, done[2])

	thursday := time.Date(2025, 3, 6, 12, 0, 0, 0, time.Local)
	done = CompletedDays(snap, thursday)
	assert.True(t, done[3], "earlier day without courses is complete")
	assert.False(t, done[4], "today without courses is not marked")

	assert.Empty(t, CompletedDays(nil, thursday))
}
