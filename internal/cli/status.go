package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/status"
	"github.com/Veraticus/classwatch/internal/timemath"
)

// NoDataMessage is shown once every week has been tried without success.
const NoDataMessage = "No schedule data available"

// StatusLine renders a status result as one plain sentence.
func StatusLine(r model.StatusResult) string {
	switch r.Kind {
	case model.StatusInClass:
		if r.Course == nil {
			break
		}
		line := fmt.Sprintf("In class: %s%s", r.Course.Name, at(r.Course.Location))
		if r.RemainingMinutes > 0 {
			line += ", ends in " + timemath.FormatDuration(r.RemainingMinutes)
		} else {
			line += ", ending now"
		}
		return line
	case model.StatusUpcoming:
		if r.Course == nil {
			break
		}
		if status.StartingSoon(r) {
			return fmt.Sprintf("Starting: %s%s, %s", r.Course.Name, at(r.Course.Location), startsIn(r.MinutesUntil))
		}
		return fmt.Sprintf("Next: %s%s, %s", r.Course.Name, at(r.Course.Location), startsIn(r.MinutesUntil))
	case model.StatusTomorrow:
		if len(r.Courses) == 0 {
			break
		}
		first := r.Courses[0]
		return fmt.Sprintf("Done for today. Tomorrow: %d %s, first %s at %s",
			len(r.Courses), plural(len(r.Courses), "course", "courses"), first.Name, first.StartTime)
	}
	return "No classes today or tomorrow"
}

// FormatStatus renders a status result with icon and color.
func FormatStatus(r model.StatusResult) string {
	line := StatusLine(r)
	switch r.Kind {
	case model.StatusInClass:
		return InClassStyle.Render(ClassIcon + " " + line)
	case model.StatusUpcoming:
		if status.StartingSoon(r) {
			return StartingStyle.Render(ClockIcon + " " + line)
		}
		return UpcomingStyle.Render(ClockIcon + " " + line)
	case model.StatusTomorrow:
		var b strings.Builder
		b.WriteString(InfoStyle.Render(CalendarIcon + " " + line))
		for _, c := range r.Courses {
			b.WriteString("\n   ")
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("%s  %s%s", c.TimeRange(), c.Name, at(c.Location))))
		}
		return b.String()
	default:
		return SubtleStyle.Render(RestIcon + " " + line)
	}
}

func startsIn(minutes int) string {
	d := timemath.FormatDuration(minutes)
	if minutes == 0 {
		return d
	}
	return "starts in " + d
}

func at(location string) string {
	if location == "" {
		return ""
	}
	return " @ " + location
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
