package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/ui/output"
	"go.trai.ch/zerr"
)

// Terminal runs the selector and prompt as short-lived Bubble Tea programs.
// Everything is drawn on stderr so stdout stays free for the runner.
type Terminal struct {
	opts []tea.ProgramOption
}

// NewTerminal creates a Terminal. Options are passed to every program and
// override the defaults.
func NewTerminal(opts ...tea.ProgramOption) *Terminal {
	lipgloss.SetColorProfile(output.ColorProfile())

	base := []tea.ProgramOption{tea.WithOutput(os.Stderr)}
	return &Terminal{opts: append(base, opts...)}
}

// Select shows items and returns the index of the confirmed one.
func (t *Terminal) Select(ctx context.Context, title string, items []ports.SelectItem) (int, error) {
	if len(items) == 0 {
		return -1, zerr.Wrap(domain.ErrNoTasks, "nothing to select")
	}

	final, err := t.run(ctx, NewSelectModel(title, items))
	if err != nil {
		return -1, err
	}

	m, ok := final.(*SelectModel)
	if !ok || m.Cancelled || m.Chosen < 0 {
		return -1, zerr.Wrap(domain.ErrSelectionCancelled, "no task selected")
	}
	return m.Chosen, nil
}

// Prompt reads one line of input.
func (t *Terminal) Prompt(ctx context.Context, req ports.PromptRequest) (string, error) {
	final, err := t.run(ctx, NewPromptModel(req))
	if err != nil {
		return "", err
	}

	m, ok := final.(*PromptModel)
	if !ok || m.Cancelled || !m.Submitted {
		return "", zerr.Wrap(domain.ErrParameterResolutionCancelled, "input aborted")
	}
	return m.Value(), nil
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, t.opts...)
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, zerr.Wrap(err, "terminal ui failed")
	}
	return final, nil
}
