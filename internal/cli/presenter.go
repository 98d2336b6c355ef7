package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Veraticus/classwatch/internal/model"
)

// TerminalPresenter prints status lines as they are emitted. Repeated
// identical lines are suppressed.
type TerminalPresenter struct {
	writer io.Writer
	last   string
	mu     sync.Mutex
}

// NewTerminalPresenter creates a presenter writing to w, or stdout.
func NewTerminalPresenter(w io.Writer) *TerminalPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &TerminalPresenter{writer: w}
}

// ShowStatus implements service.Presenter.
func (p *TerminalPresenter) ShowStatus(_ *model.WeekSnapshot, r model.StatusResult) {
	line := FormatStatus(r)

	p.mu.Lock()
	defer p.mu.Unlock()
	if line == p.last {
		return
	}
	p.last = line
	p.print(line)
}

// ScheduleChanged implements service.Presenter.
func (p *TerminalPresenter) ScheduleChanged(week int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.print(FormatWarning(fmt.Sprintf("Schedule for week %d changed, reloading", week)))
}

// NoData implements service.Presenter.
func (p *TerminalPresenter) NoData() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = ""
	p.print(FormatError(NoDataMessage))
}

func (p *TerminalPresenter) print(line string) {
	_, _ = fmt.Fprintln(p.writer, line)
}
