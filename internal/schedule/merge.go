package schedule

import (
	"sort"

	"github.com/Veraticus/classwatch/internal/model"
)

// Session is one time range of a merged course.
type Session struct {
	TimeRange string
	Location  string
	StartTime string
}

// MergedCourse groups every session of the same course and teacher on a day.
type MergedCourse struct {
	Name        string
	TeacherName string
	Sessions    []Session
}

// Merge groups courses by (name, teacher) in first-seen order. Sessions are
// ordered by start time.
func Merge(courses []model.Course) []MergedCourse {
	type key struct{ name, teacher string }

	index := make(map[key]int)
	var merged []MergedCourse
	for _, c := range courses {
		k := key{c.Name, c.TeacherName}
		i, ok := index[k]
		if !ok {
			i = len(merged)
			index[k] = i
			merged = append(merged, MergedCourse{Name: c.Name, TeacherName: c.TeacherName})
		}
		merged[i].Sessions = append(merged[i].Sessions, Session{
			TimeRange: c.TimeRange(),
			Location:  c.Location,
			StartTime: c.StartTime,
		})
	}

	for i := range merged {
		sort.SliceStable(merged[i].Sessions, func(a, b int) bool {
			return merged[i].Sessions[a].StartTime < merged[i].Sessions[b].StartTime
		})
	}
	return merged
}

// Locations returns the distinct non-empty locations of merged, in order.
func Locations(merged []MergedCourse) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range merged {
		for _, s := range m.Sessions {
			if s.Location == "" || seen[s.Location] {
				continue
			}
			seen[s.Location] = true
			out = append(out, s.Location)
		}
	}
	return out
}
