// Package tui implements the live status view.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/classwatch/internal/change"
	"github.com/Veraticus/classwatch/internal/live"
	"github.com/Veraticus/classwatch/internal/model"
	"github.com/Veraticus/classwatch/internal/tui/themes"
	"github.com/Veraticus/classwatch/internal/week"
)

// Service is what the live view needs from the core.
type Service interface {
	Start(ctx context.Context) (week.Selection, error)
	Refresh(ctx context.Context) week.Selection
	CheckChanges(ctx context.Context) change.Result
	Status() model.StatusResult
	Snapshot() *model.WeekSnapshot
	Now() time.Time
}

// Config holds what the model needs beyond the service.
type Config struct {
	Service Service
	Toggle  *live.Toggle
	// Send delivers asynchronous messages back to the program.
	Send func(tea.Msg)
	// Quote, when set, supplies the line shown under the status.
	Quote func(ctx context.Context) string
	Theme themes.Theme
	Ctx   context.Context
}

// Model holds the live view state.
type Model struct {
	ctx      context.Context
	svc      Service
	toggle   *live.Toggle
	send     func(tea.Msg)
	quote    func(ctx context.Context) string
	snap     *model.WeekSnapshot
	lastErr  error
	theme    themes.Theme
	notice   string
	quoteTxt string
	status   model.StatusResult
	spinner  spinner.Model
	help     help.Model
	keymap   KeyMap
	width    int
	height   int
	busy     bool
	noData   bool
	showWeek bool
	quitting bool
}

// NewModel creates the live view model.
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cfg.Theme.StatusNext

	ctx := cfg.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	return Model{
		ctx:     ctx,
		svc:     cfg.Service,
		toggle:  cfg.Toggle,
		send:    cfg.Send,
		quote:   cfg.Quote,
		theme:   cfg.Theme,
		status:  model.NoClass(),
		spinner: s,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		busy:    true,
	}
}

// Init starts the service and fetches the quote.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.startCmd()}
	if m.quote != nil {
		cmds = append(cmds, m.quoteCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case statusMsg:
		m.snap = msg.snap
		m.status = msg.status
		if !msg.snap.IsEmpty() {
			m.noData = false
		}
		return m, nil

	case scheduleChangedMsg:
		m.notice = fmt.Sprintf("Week %d changed, reloading", msg.week)
		return m, nil

	case noDataMsg:
		m.noData = true
		return m, nil

	case startedMsg:
		m.busy = false
		m.lastErr = msg.err
		m.refreshFromService()
		return m, nil

	case refreshedMsg:
		m.busy = false
		if msg.selection.Found {
			m.notice = fmt.Sprintf("Loaded week %d", msg.selection.Week)
		}
		m.refreshFromService()
		return m, nil

	case checkedMsg:
		m.busy = false
		m.notice = checkNotice(msg.result)
		m.refreshFromService()
		return m, nil

	case quoteMsg:
		m.quoteTxt = msg.text
		return m, nil

	case toggledMsg:
		m.showWeek = msg.on
		m.refreshFromService()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, m.refreshCmd())

	case key.Matches(msg, m.keymap.Check):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, m.checkCmd())

	case key.Matches(msg, m.keymap.ToggleWeek):
		m.flipWeekView()
		return m, nil
	}
	return m, nil
}

// flipWeekView requests a view transition. Requests made while one is
// pending are ignored by the toggle.
func (m Model) flipWeekView() {
	if m.toggle == nil || m.send == nil {
		return
	}
	send := m.send
	m.toggle.Flip(func(on bool) {
		send(toggledMsg{on: on})
	})
}

func (m *Model) refreshFromService() {
	if m.svc == nil {
		return
	}
	m.snap = m.svc.Snapshot()
	m.status = m.svc.Status()
}

func (m Model) startCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		sel, err := svc.Start(ctx)
		return startedMsg{selection: sel, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return refreshedMsg{selection: svc.Refresh(ctx)}
	}
}

func (m Model) checkCmd() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return checkedMsg{result: svc.CheckChanges(ctx)}
	}
}

func (m Model) quoteCmd() tea.Cmd {
	quote, ctx := m.quote, m.ctx
	return func() tea.Msg {
		return quoteMsg{text: quote(ctx)}
	}
}

func checkNotice(r change.Result) string {
	switch {
	case r.Week == 0:
		return "Nothing cached to check"
	case !r.Checked:
		return fmt.Sprintf("Could not check week %d", r.Week)
	case r.Changed && r.Reloaded:
		return fmt.Sprintf("Week %d changed and was reloaded", r.Week)
	case r.Changed:
		return fmt.Sprintf("Week %d changed but reload failed", r.Week)
	default:
		return fmt.Sprintf("Week %d is up to date", r.Week)
	}
}

func (m Model) now() time.Time {
	if m.svc != nil {
		return m.svc.Now()
	}
	return time.Now()
}
