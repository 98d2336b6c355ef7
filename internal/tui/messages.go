package tui

import (
	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/week"
)

// Messages from the core, delivered through the presenter bridge.
type statusMsg struct {
	snap   *model.WeekSnapshot
	status model.StatusResult
}

type scheduleChangedMsg struct {
	week int
}

type noDataMsg struct{}

// Results of commands started by the model.
type startedMsg struct {
	err       error
	selection week.Selection
}

type refreshedMsg struct {
	selection week.Selection
}

type checkedMsg struct {
	result change.Result
}

type quoteMsg struct {
	text string
}

type toggledMsg struct {
	on bool
}
