package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "code": "1",
  "msg": "ok",
  "data": [{
    "week": "7",
    "weekday": "2",
    "courses": [
      {"courseName": "Linear Algebra", "teacherName": "Li", "weekDay": "2",
       "startTime": "08:00", "endTIme": "09:35", "classTime": "20102",
       "classroomName": "A-101(East)", "buildingName": "A"},
      {"courseName": "Physics", "teacherName": "Wang", "weekDay": 4,
       "startTime": "10:00", "endTIme": "11:35", "classTime": "40304",
       "buildingName": "B"}
    ],
    "nodesLst": [{"nodeNumber": "01", "nodeName": "1"}, {"nodeNumber": 2, "nodeName": "2"}],
    "date": [{"xqid": 1, "xqmc": "一"}, {"xqid": "0", "xqmc": "日"}]
  }]
}`

func TestWeekPayload_Decode(t *testing.T) {
	var p WeekPayload
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &p))

	assert.Equal(t, FlexString(SuccessCode), p.Code)
	require.Len(t, p.Data, 1)

	data := p.Data[0]
	assert.Equal(t, FlexInt(7), data.Week)
	require.Len(t, data.Courses, 2)
	assert.Equal(t, FlexInt(2), data.Courses[0].WeekDay)
	assert.Equal(t, FlexInt(4), data.Courses[1].WeekDay)
	assert.Equal(t, "09:35", data.Courses[0].EndTime)
	assert.Equal(t, FlexString("2"), data.Nodes[1].NodeNumber)
	assert.Equal(t, FlexInt(0), data.Date[1].Index)
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexInt
		wantErr bool
	}{
		{name: "number", input: `3`, want: 3},
		{name: "quoted number", input: `"5"`, want: 5},
		{name: "padded string", input: `" 6 "`, want: 6},
		{name: "empty string", input: `""`, want: 0},
		{name: "null", input: `null`, want: 0},
		{name: "garbage", input: `"monday"`, wantErr: true},
		{name: "float", input: `1.5`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexInt
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawCourse_ResolvedLocation(t *testing.T) {
	assert.Equal(t, "Lab 3", RawCourse{Location: "Lab 3", ClassroomName: "A-101"}.ResolvedLocation())
	assert.Equal(t, "A-101", RawCourse{ClassroomName: "A-101", BuildingName: "A"}.ResolvedLocation())
	assert.Equal(t, "A", RawCourse{BuildingName: "A"}.ResolvedLocation())
	assert.Empty(t, RawCourse{}.ResolvedLocation())
}
