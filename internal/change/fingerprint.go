// Package change detects out-of-band edits to a published week by comparing
// fingerprints of its course data.
package change

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/Veraticus/classwatch/internal/model"
)

const (
	fieldSeparator  = "|"
	courseSeparator = "||"
)

// Fingerprint summarizes the schedule-relevant fields of every course in
// load order. Equal fingerprints mean equivalent schedules, whatever the
// week number. The hash is a 32-bit rolling hash and may collide; a
// collision only delays a refresh.
func Fingerprint(snap *model.WeekSnapshot) string {
	if snap == nil {
		return hashString("")
	}
	return hashString(canonical(snap.Courses))
}

// HasChanged reports whether two fingerprints differ.
func HasChanged(oldFingerprint, newFingerprint string) bool {
	return oldFingerprint != newFingerprint
}

func canonical(courses []model.Course) string {
	parts := make([]string, len(courses))
	for i, c := range courses {
		parts[i] = strings.Join([]string{
			c.Name,
			strconv.Itoa(c.Weekday),
			c.StartTime,
			c.EndTime,
			c.Location,
		}, fieldSeparator)
	}
	return strings.Join(parts, courseSeparator)
}

// hashString computes h = h*31 + unit over UTF-16 code units with int32
// wraparound, rendered in base 36.
func hashString(s string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return strconv.FormatInt(int64(h), 36)
}
