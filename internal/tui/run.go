package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/classwatch/internal/live"
	"github.com/Veraticus/classwatch/internal/tui/themes"
)

// Options configures the live view program.
type Options struct {
	Quote     func(ctx context.Context) string
	ThemeName string
	AltScreen bool
}

// Stoppable is a Service that can be torn down when the view exits.
type Stoppable interface {
	Service
	Stop()
}

// Run starts the live view and blocks until the user quits or ctx is
// cancelled. The service is stopped before Run returns.
func Run(ctx context.Context, svc Stoppable, bridge *Bridge, toggle *live.Toggle, opts Options) error {
	defer svc.Stop()

	var p *tea.Program
	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	m := NewModel(Config{
		Ctx:     ctx,
		Service: svc,
		Toggle:  toggle,
		Send:    send,
		Quote:   opts.Quote,
		Theme:   themes.ByName(opts.ThemeName),
	})

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p = tea.NewProgram(m, programOpts...)
	bridge.Attach(p.Send)
	defer bridge.Attach(nil)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}
