// Package model defines the core data types for the schedule watcher.
package model

import "fmt"

// Course is a single class session in a week's timetable.
// Courses are never modified after a snapshot is built.
type Course struct {
	Name        string `json:"name"`
	TeacherName string `json:"teacher_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Location    string `json:"location"`
	ClassCode   string `json:"class_code"`
	Weekday     int    `json:"weekday"`
}

// CourseKey identifies a course session within a week.
type CourseKey struct {
	Name        string
	TeacherName string
	StartTime   string
	Weekday     int
}

// Key returns the identity of the course.
func (c Course) Key() CourseKey {
	return CourseKey{
		Name:        c.Name,
		TeacherName: c.TeacherName,
		Weekday:     c.Weekday,
		StartTime:   c.StartTime,
	}
}

// TimeRange renders the session as "HH:MM-HH:MM".
func (c Course) TimeRange() string {
	return fmt.Sprintf("%s-%s", c.StartTime, c.EndTime)
}

// ValidWeekday reports whether d is a weekday index (0=Sunday … 6=Saturday).
func ValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}
