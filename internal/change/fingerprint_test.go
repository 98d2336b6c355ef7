package change

import (
	"testing"

	"github.com/Veraticus/classwatch/internal/model"
	"github.com/stretchr/testify/assert"
)

func week(courses ...model.Course) *model.WeekSnapshot {
	return &model.WeekSnapshot{WeekNumber: 3, Courses: courses}
}

var (
	math    = model.Course{Name: "Math", TeacherName: "Li", Weekday: 2, StartTime: "09:00", EndTime: "10:30", Location: "A-101"}
	physics = model.Course{Name: "Physics", TeacherName: "Wang", Weekday: 3, StartTime: "10:00", EndTime: "11:35", Location: "B"}
)

func TestFingerprint_KnownValues(t *testing.T) {
	assert.Equal(t, "0", Fingerprint(nil))
	assert.Equal(t, "0", Fingerprint(week()))
	assert.Equal(t, "tnt2ex", Fingerprint(week(math)))
	assert.Equal(t, "m5ev9m", Fingerprint(week(math, physics)))

	wrapped := physics
	wrapped.Location = "B-2"
	assert.Equal(t, "-mrvrwx", Fingerprint(week(math, wrapped)), "negative hashes keep their sign")
}

func TestFingerprint_Deterministic(t *testing.T) {
	snap := week(math, physics)
	assert.Equal(t, Fingerprint(snap), Fingerprint(snap))

	other := week(math, physics)
	other.WeekNumber = 9
	assert.Equal(t, Fingerprint(snap), Fingerprint(other), "week number is not part of the fingerprint")
}

func TestFingerprint_Sensitivity(t *testing.T) {
	base := Fingerprint(week(math, physics))

	moved := math
	moved.Location = "B-202"
	assert.NotEqual(t, base, Fingerprint(week(moved, physics)), "location change")

	later := math
	later.EndTime = "10:45"
	assert.NotEqual(t, base, Fingerprint(week(later, physics)), "end time change")

	assert.NotEqual(t, base, Fingerprint(week(physics, math)), "order matters")

	retaught := math
	retaught.TeacherName = "Zhao"
	assert.Equal(t, base, Fingerprint(week(retaught, physics)), "teacher is not fingerprinted")
}

func TestFingerprint_NonASCII(t *testing.T) {
	c := model.Course{Name: "线性代数", Weekday: 2, StartTime: "08:00", EndTime: "09:35", Location: "A-101"}
	assert.Equal(t, "bzzete", Fingerprint(week(c)))
}

func TestHasChanged(t *testing.T) {
	assert.False(t, HasChanged("abc", "abc"))
	assert.True(t, HasChanged("abc", "abd"))
	assert.True(t, HasChanged("", "abc"))
}
