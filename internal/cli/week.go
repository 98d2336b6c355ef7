package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/schedule"
	"github.com/Veraticus/classwatch/internal/status"
)

// weekOrder lists weekdays Monday first.
var weekOrder = []int{1, 2, 3, 4, 5, 6, 0}

// RenderWeek renders every day of snap that has courses. Finished days are
// dimmed and today is marked.
func RenderWeek(snap *model.WeekSnapshot, now time.Time) string {
	if snap.IsEmpty() {
		return SubtleStyle.Render(NoDataMessage)
	}

	done := status.CompletedDays(snap, now)
	today := int(now.Weekday())

	var b strings.Builder
	b.WriteString(FormatTitle(fmt.Sprintf("Week %d", snap.WeekNumber)))
	b.WriteString("\n")

	for _, weekday := range weekOrder {
		courses := snap.CoursesOn(weekday)
		if len(courses) == 0 {
			continue
		}

		header := snap.WeekdayName(weekday)
		switch {
		case done[weekday]:
			header = SubtleStyle.Render(DoneIcon + " " + header)
		case weekday == today:
			header = UpcomingStyle.Render("▶ " + header)
		default:
			header = BoldStyle.Render(header)
		}
		b.WriteString(header)
		b.WriteString("\n")

		for _, m := range schedule.Merge(courses) {
			times := make([]string, len(m.Sessions))
			for i, s := range m.Sessions {
				times[i] = s.TimeRange
			}
			line := fmt.Sprintf("  %s  %s", strings.Join(times, ", "), m.Name)
			if locs := schedule.Locations([]schedule.MergedCourse{m}); len(locs) > 0 {
				line += " @ " + strings.Join(locs, ", ")
			}
			if m.TeacherName != "" {
				line += SubtleStyle.Render("  " + m.TeacherName)
			}
			if done[weekday] {
				line = SubtleStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if len(snap.TimeSlots) > 0 {
		b.WriteString("\n")
		slots := make([]string, len(snap.TimeSlots))
		for i, s := range snap.TimeSlots {
			slots[i] = fmt.Sprintf("%s %s", s.Period, s.Name)
		}
		b.WriteString(SubtleStyle.Render("Periods: " + strings.Join(slots, " · ")))
		b.WriteString("\n")
	}
	return b.String()
}
