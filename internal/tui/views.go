package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/classwatch/internal/cli"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/status"
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.showWeek {
		sections = append(sections, cli.RenderWeek(m.snap, m.now()))
	} else {
		sections = append(sections, m.renderStatus())
	}

	if m.quoteTxt != "" {
		sections = append(sections, m.theme.Italic.Render("“"+m.quoteTxt+"”"))
	}
	if m.notice != "" {
		sections = append(sections, m.theme.Notice.Render(m.notice))
	}
	if m.lastErr != nil {
		sections = append(sections, m.theme.StatusError.Render("Error: "+m.lastErr.Error()))
	}
	sections = append(sections, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := "classwatch"
	if !m.snap.IsEmpty() {
		title = fmt.Sprintf("classwatch · week %d", m.snap.WeekNumber)
	}
	header := m.theme.Title.Render(title)
	if m.busy {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", m.spinner.View())
	}
	return header
}

func (m Model) renderStatus() string {
	if m.noData && m.snap.IsEmpty() {
		return m.theme.RoundedBox.Render(m.theme.StatusError.Render(cli.NoDataMessage))
	}

	line := cli.StatusLine(m.status)
	var styled string
	switch m.status.Kind {
	case model.StatusInClass:
		styled = m.theme.StatusInClass.Render(cli.ClassIcon + " " + line)
	case model.StatusUpcoming:
		if status.StartingSoon(m.status) {
			styled = m.theme.StatusSoon.Render(cli.ClockIcon + " " + line)
		} else {
			styled = m.theme.StatusNext.Render(cli.ClockIcon + " " + line)
		}
	case model.StatusTomorrow:
		var b strings.Builder
		b.WriteString(m.theme.StatusNext.Render(cli.CalendarIcon + " " + line))
		for _, c := range m.status.Courses {
			b.WriteString("\n  ")
			b.WriteString(m.theme.Subtitle.Render(c.TimeRange() + "  " + c.Name))
		}
		styled = b.String()
	default:
		styled = m.theme.StatusIdle.Render(cli.RestIcon + " " + line)
	}

	if m.status.HasCourse() && m.status.Course.TeacherName != "" {
		styled += "\n" + m.theme.Subtitle.Render(m.status.Course.TeacherName)
	}
	return m.theme.RoundedBox.Render(styled)
}
