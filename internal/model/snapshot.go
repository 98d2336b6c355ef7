package model

import "time"

// Node maps a period number to its display label.
type Node struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// TimeSlot is a pair of consecutive periods with their wall-clock range.
type TimeSlot struct {
	Name   string    `json:"name"`
	Period string    `json:"period"`
	Codes  [2]string `json:"codes"`
}

// WeekSnapshot is the complete, validated view of one week's timetable.
// A snapshot is built once and then only read; loading a new week replaces
// the whole value.
type WeekSnapshot struct {
	LoadedAt     time.Time  `json:"loaded_at"`
	Courses      []Course   `json:"courses"`
	Nodes        []Node     `json:"nodes"`
	TimeSlots    []TimeSlot `json:"time_slots"`
	WeekdayNames [7]string  `json:"weekday_names"`
	WeekNumber   int        `json:"week_number"`
}

// IsEmpty reports whether the snapshot is missing or has no courses.
func (s *WeekSnapshot) IsEmpty() bool {
	return s == nil || len(s.Courses) == 0
}

// CoursesOn returns the courses held on weekday, in load order.
func (s *WeekSnapshot) CoursesOn(weekday int) []Course {
	if s.IsEmpty() {
		return nil
	}
	var out []Course
	for _, c := range s.Courses {
		if c.Weekday == weekday {
			out = append(out, c)
		}
	}
	return out
}

// WeekdayName returns the label for weekday, falling back to the English
// name when the payload carried no labels.
func (s *WeekSnapshot) WeekdayName(weekday int) string {
	if !ValidWeekday(weekday) {
		return ""
	}
	if s != nil && s.WeekdayNames[weekday] != "" {
		return s.WeekdayNames[weekday]
	}
	return time.Weekday(weekday).String()
}
