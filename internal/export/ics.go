package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/timemath"
)

const productID = "-//classwatch//Schedule Export//EN"

// CourseDate returns the date of weekday in academic week, where
// termStart is any day in week 1. Weeks run Monday to Sunday.
func CourseDate(termStart time.Time, week, weekday int) time.Time {
	y, m, d := termStart.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, termStart.Location())
	monday := start.AddDate(0, 0, -((int(start.Weekday()) + 6) % 7))
	return monday.AddDate(0, 0, (week-1)*7+(weekday+6)%7)
}

// BuildCalendar turns every course in snap into a timed event.
func BuildCalendar(snap *model.WeekSnapshot, termStart time.Time) (*ics.Calendar, error) {
	if snap.IsEmpty() {
		return nil, common.ErrNoData
	}
	if termStart.IsZero() {
		return nil, fmt.Errorf("%w: export.term_start", common.ErrMissingConfig)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("Week %d", snap.WeekNumber))

	for i, c := range snap.Courses {
		day := CourseDate(termStart, snap.WeekNumber, c.Weekday)
		start := atMinute(day, timemath.ParseTime(c.StartTime))
		end := atMinute(day, timemath.ParseTime(c.EndTime))

		event := cal.AddEvent(fmt.Sprintf("w%d-%d-%s@classwatch", snap.WeekNumber, i, day.Format("20060102")))
		event.SetDtStampTime(snap.LoadedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(c.Name)
		if c.Location != "" {
			event.SetLocation(c.Location)
		}
		if c.TeacherName != "" {
			event.SetDescription(c.TeacherName)
		}
	}
	return cal, nil
}

// atMinute returns the wall-clock time minutes after midnight on day.
func atMinute(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
}

// WriteICS serializes the week as an iCalendar document.
func WriteICS(w io.Writer, snap *model.WeekSnapshot, termStart time.Time) error {
	cal, err := BuildCalendar(snap, termStart)
	if err != nil {
		return err
	}
	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}
