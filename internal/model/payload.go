package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SuccessCode is the value of WeekPayload.Code for a usable document.
const SuccessCode = "1"

// WeekPayload is the JSON document published for each week.
type WeekPayload struct {
	Code FlexString `json:"code"`
	Msg  string     `json:"msg"`
	Data []WeekData `json:"data"`
}

// WeekData is the first (and only meaningful) element of WeekPayload.Data.
type WeekData struct {
	Weekday string      `json:"weekday"`
	Courses []RawCourse `json:"courses"`
	Nodes   []RawNode   `json:"nodesLst"`
	Date    []RawDate   `json:"date"`
	Week    FlexInt     `json:"week"`
}

// RawCourse is a course record exactly as published. The end time key is
// spelled "endTIme" upstream.
type RawCourse struct {
	CourseName    string  `json:"courseName"`
	TeacherName   string  `json:"teacherName"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTIme"`
	ClassTime     string  `json:"classTime"`
	ClassroomName string  `json:"classroomName"`
	BuildingName  string  `json:"buildingName"`
	Location      string  `json:"location"`
	ClassWeek     string  `json:"classWeek"`
	WeekDay       FlexInt `json:"weekDay"`
}

// ResolvedLocation picks the most specific location the record carries.
func (c RawCourse) ResolvedLocation() string {
	switch {
	case c.Location != "":
		return c.Location
	case c.ClassroomName != "":
		return c.ClassroomName
	default:
		return c.BuildingName
	}
}

// RawNode maps a period number to its label.
type RawNode struct {
	NodeNumber FlexString `json:"nodeNumber"`
	NodeName   FlexString `json:"nodeName"`
}

// RawDate maps a weekday index to a localized label.
type RawDate struct {
	Label string  `json:"xqmc"`
	Index FlexInt `json:"xqid"`
}

// FlexInt decodes from either a JSON number or a numeric string.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// FlexString decodes from either a JSON string or a number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
