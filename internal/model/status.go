package model

// StatusKind is the classification of "now" against the timetable.
type StatusKind string

const (
	// StatusInClass means a course is running right now.
	StatusInClass StatusKind = "in-class"

	// StatusUpcoming means another course starts later today.
	StatusUpcoming StatusKind = "upcoming"

	// StatusTomorrow means today is done and tomorrow has courses.
	StatusTomorrow StatusKind = "tomorrow"

	// StatusNoClass means nothing is left today or tomorrow.
	StatusNoClass StatusKind = "no-class"
)

// String returns the string representation of StatusKind.
func (k StatusKind) String() string {
	return string(k)
}

// StatusResult is a tagged union over the four status kinds. Only the fields
// that belong to Kind are populated.
type StatusResult struct {
	Course           *Course    `json:"course,omitempty"`
	Kind             StatusKind `json:"status"`
	Courses          []Course   `json:"courses,omitempty"`
	RemainingMinutes int        `json:"remaining_minutes,omitempty"`
	MinutesUntil     int        `json:"minutes_until,omitempty"`
}

// InClass builds an in-class result.
func InClass(c Course, remainingMinutes int) StatusResult {
	return StatusResult{Kind: StatusInClass, Course: &c, RemainingMinutes: remainingMinutes}
}

// Upcoming builds an upcoming result.
func Upcoming(c Course, minutesUntil int) StatusResult {
	return StatusResult{Kind: StatusUpcoming, Course: &c, MinutesUntil: minutesUntil}
}

// Tomorrow builds a tomorrow result. courses must already be ordered.
func Tomorrow(courses []Course) StatusResult {
	return StatusResult{Kind: StatusTomorrow, Courses: courses}
}

// NoClass builds a no-class result.
func NoClass() StatusResult {
	return StatusResult{Kind: StatusNoClass}
}

// HasCourse reports whether the result points at a single course.
func (r StatusResult) HasCourse() bool {
	return (r.Kind == StatusInClass || r.Kind == StatusUpcoming) && r.Course != nil
}
