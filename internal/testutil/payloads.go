package testutil

import (
	"github.com/Veraticus/classwatch/internal/model"
)

// Course builds a raw course record.
func Course(name string, weekday int, start, end, location string) model.RawCourse {
	return model.RawCourse{
		CourseName:    name,
		TeacherName:   "Teacher " + name,
		WeekDay:       model.FlexInt(weekday),
		StartTime:     start,
		EndTime:       end,
		ClassroomName: location,
	}
}

// Payload wraps courses in a valid week document.
func Payload(courses ...model.RawCourse) *model.WeekPayload {
	return &model.WeekPayload{
		Code: model.SuccessCode,
		Data: []model.WeekData{{Courses: courses}},
	}
}

// StandardWeek is a small but realistic week: two courses on Tuesday and
// three on Wednesday.
func StandardWeek() *model.WeekPayload {
	return Payload(
		Course("Linear Algebra", 2, "09:00", "10:30", "A-101"),
		Course("Physics", 2, "14:00", "15:35", "B-204"),
		Course("Databases", 3, "08:00", "09:35", "C-310"),
		Course("Operating Systems", 3, "10:00", "11:35", "C-310"),
		Course("English", 3, "14:00", "15:35", "D-105"),
	)
}
