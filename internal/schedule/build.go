package schedule

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
)

const weekdayLabelPrefix = "周"

var periodDigits = regexp.MustCompile(`\d{2}`)

// Validate checks the document shape: a success code and a non-empty
// course collection in the first data element.
func Validate(p *model.WeekPayload) error {
	if p == nil {
		return fmt.Errorf("%w: empty document", common.ErrShape)
	}
	if string(p.Code) != model.SuccessCode {
		return fmt.Errorf("%w: code %q", common.ErrShape, p.Code)
	}
	if len(p.Data) == 0 {
		return fmt.Errorf("%w: no data element", common.ErrShape)
	}
	if len(p.Data[0].Courses) == 0 {
		return fmt.Errorf("%w: no courses", common.ErrShape)
	}
	return nil
}

// BuildSnapshot validates p and normalizes it into a snapshot for week.
func BuildSnapshot(p *model.WeekPayload, week int, loadedAt time.Time) (*model.WeekSnapshot, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	data := p.Data[0]

	courses := make([]model.Course, 0, len(data.Courses))
	for i, raw := range data.Courses {
		weekday := int(raw.WeekDay)
		if !model.ValidWeekday(weekday) {
			slog.Warn("Skipping course with invalid weekday",
				"week", week,
				"index", i,
				"course", raw.CourseName,
				"weekday", weekday)
			continue
		}
		courses = append(courses, model.Course{
			Name:        strings.TrimSpace(raw.CourseName),
			TeacherName: strings.TrimSpace(raw.TeacherName),
			Weekday:     weekday,
			StartTime:   strings.TrimSpace(raw.StartTime),
			EndTime:     strings.TrimSpace(raw.EndTime),
			Location:    raw.ResolvedLocation(),
			ClassCode:   raw.ClassTime,
		})
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: no usable courses", common.ErrShape)
	}

	nodes := make([]model.Node, 0, len(data.Nodes))
	for _, n := range data.Nodes {
		nodes = append(nodes, model.Node{Number: string(n.NodeNumber), Name: string(n.NodeName)})
	}

	snap := &model.WeekSnapshot{
		WeekNumber: week,
		Courses:    courses,
		Nodes:      nodes,
		LoadedAt:   loadedAt,
	}
	for _, d := range data.Date {
		idx := int(d.Index)
		if model.ValidWeekday(idx) && d.Label != "" {
			snap.WeekdayNames[idx] = weekdayLabelPrefix + d.Label
		}
	}
	snap.TimeSlots = BuildTimeSlots(nodes, courses)

	return snap, nil
}

// BuildTimeSlots pairs consecutive periods into slots. A slot is named by
// the real time range of a course spanning exactly those periods when one
// exists, otherwise by the period labels.
func BuildTimeSlots(nodes []model.Node, courses []model.Course) []model.TimeSlot {
	if len(nodes) == 0 || len(courses) == 0 {
		return nil
	}

	ranges := make(map[string]string)
	for _, c := range courses {
		if c.StartTime == "" || c.EndTime == "" {
			continue
		}
		digits := ClassCodePeriods(c.ClassCode)
		if len(digits) < 2 {
			continue
		}
		key := digits[0] + "-" + digits[len(digits)-1]
		ranges[key] = c.TimeRange()
	}

	var slots []model.TimeSlot
	for i := 0; i+1 < len(nodes); i += 2 {
		first, second := nodes[i], nodes[i+1]
		period := first.Name + "-" + second.Name
		name, ok := ranges[first.Number+"-"+second.Number]
		if !ok {
			name = period
		}
		slots = append(slots, model.TimeSlot{
			Name:   name,
			Period: period,
			Codes:  [2]string{first.Number, second.Number},
		})
	}
	return slots
}

// ClassCodePeriods extracts the two-digit period numbers from a class code.
// The first character is the weekday and is skipped.
func ClassCodePeriods(code string) []string {
	if len(code) < 3 {
		return nil
	}
	return periodDigits.FindAllString(code[1:], -1)
}
