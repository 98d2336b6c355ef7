// Package status classifies the current moment against a week snapshot.
package status

import (
	"sort"
	"time"

	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/timemath"
)

// StartingSoonMinutes is the threshold under which an upcoming course is
// presented as starting rather than with a countdown.
const StartingSoonMinutes = 5

type timedCourse struct {
	course model.Course
	start  int
	end    int
}

// Detect returns the status for now. It has no side effects; a nil or empty
// snapshot yields NoClass.
func Detect(snap *model.WeekSnapshot, now time.Time) model.StatusResult {
	if snap.IsEmpty() {
		return model.NoClass()
	}

	today := int(now.Weekday())
	current := timemath.MinutesOf(now)

	for _, tc := range sortedDay(snap, today) {
		if current >= tc.start && current <= tc.end {
			return model.InClass(tc.course, tc.end-current)
		}
	}

	for _, tc := range sortedDay(snap, today) {
		if tc.start > current {
			return model.Upcoming(tc.course, tc.start-current)
		}
	}

	tomorrow := sortedDay(snap, (today+1)%7)
	if len(tomorrow) == 0 {
		return model.NoClass()
	}
	courses := make([]model.Course, len(tomorrow))
	for i, tc := range tomorrow {
		courses[i] = tc.course
	}
	return model.Tomorrow(courses)
}

// sortedDay returns the weekday's courses ordered by start minute. Equal
// starts keep load order.
func sortedDay(snap *model.WeekSnapshot, weekday int) []timedCourse {
	day := snap.CoursesOn(weekday)
	out := make([]timedCourse, len(day))
	for i, c := range day {
		out[i] = timedCourse{
			course: c,
			start:  timemath.ParseTime(c.StartTime),
			end:    timemath.ParseTime(c.EndTime),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start < out[j].start
	})
	return out
}

// StartingSoon reports whether r is an upcoming course within
// StartingSoonMinutes.
func StartingSoon(r model.StatusResult) bool {
	return r.Kind == model.StatusUpcoming && r.MinutesUntil <= StartingSoonMinutes
}

// CompletedDays reports which weekdays of the loaded week are finished.
// Days earlier in the week than today are finished. Today is finished once
// it has courses and every one of them has ended.
func CompletedDays(snap *model.WeekSnapshot, now time.Time) map[int]bool {
	done := make(map[int]bool)
	if snap.IsEmpty() {
		return done
	}

	today := int(now.Weekday())
	current := timemath.MinutesOf(now)

	for weekday := 0; weekday < today; weekday++ {
		done[weekday] = true
	}

	todays := snap.CoursesOn(today)
	if len(todays) == 0 {
		return done
	}
	for _, c := range todays {
		if current < timemath.ParseTime(c.EndTime) {
			return done
		}
	}
	done[today] = true
	return done
}
