package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/classwatch/internal/model"
)

// Bridge is the service.Presenter for the live view. It forwards every
// event to the running program. Events before Attach are dropped.
type Bridge struct {
	send func(tea.Msg)
	mu   sync.RWMutex
}

// NewBridge creates a detached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach starts forwarding to send, usually tea.Program.Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

// ShowStatus implements service.Presenter.
func (b *Bridge) ShowStatus(snap *model.WeekSnapshot, status model.StatusResult) {
	b.forward(statusMsg{snap: snap, status: status})
}

// ScheduleChanged implements service.Presenter.
func (b *Bridge) ScheduleChanged(week int) {
	b.forward(scheduleChangedMsg{week: week})
}

// NoData implements service.Presenter.
func (b *Bridge) NoData() {
	b.forward(noDataMsg{})
}

func (b *Bridge) forward(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}
