package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeekSnapshot_CoursesOn(t *testing.T) {
	snap := &WeekSnapshot{
		WeekNumber: 3,
		Courses: []Course{
			{Name: "B", Weekday: 2, StartTime: "10:00"},
			{Name: "A", Weekday: 2, StartTime: "08:00"},
			{Name: "C", Weekday: 3, StartTime: "08:00"},
		},
	}

	got := snap.CoursesOn(2)
	assert.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name, "load order is preserved")
	assert.Empty(t, snap.CoursesOn(5))

	var empty *WeekSnapshot
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.CoursesOn(2))
}

func TestWeekSnapshot_WeekdayName(t *testing.T) {
	snap := &WeekSnapshot{}
	snap.WeekdayNames[1] = "周一"

	assert.Equal(t, "周一", snap.WeekdayName(1))
	assert.Equal(t, "Tuesday", snap.WeekdayName(2))
	assert.Equal(t, "", snap.WeekdayName(9))

	var missing *WeekSnapshot
	assert.Equal(t, "Sunday", missing.WeekdayName(0))
}

func TestCourse_Key(t *testing.T) {
	a := Course{Name: "Math", TeacherName: "Li", Weekday: 1, StartTime: "08:00", Location: "A"}
	b := a
	b.Location = "B"
	b.EndTime = "09:00"

	assert.Equal(t, a.Key(), b.Key(), "location and end time are not part of identity")
	assert.Equal(t, "08:00-09:00", b.TimeRange())
}

func TestStatusResult_HasCourse(t *testing.T) {
	c := Course{Name: "Math"}
	assert.True(t, InClass(c, 10).HasCourse())
	assert.True(t, Upcoming(c, 10).HasCourse())
	assert.False(t, Tomorrow([]Course{c}).HasCourse())
	assert.False(t, NoClass().HasCourse())
	assert.Equal(t, "no-class", NoClass().Kind.String())
}
