package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/ui/style"
)

// PromptModel reads one line of input and previews the resulting command
// after every keystroke.
type PromptModel struct {
	Request ports.PromptRequest
	Input   textinput.Model

	Submitted bool
	Cancelled bool
}

// NewPromptModel creates a prompt pre-filled with req.Initial.
func NewPromptModel(req ports.PromptRequest) *PromptModel {
	input := textinput.New()
	input.Prompt = labelStyle.Render(req.Label) + ": "
	input.Placeholder = req.Placeholder
	input.SetValue(req.Initial)
	input.CursorEnd()
	input.Focus()

	return &PromptModel{Request: req, Input: input}
}

// Init starts the cursor blink.
func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles submission, cancellation and editing.
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "enter":
			m.Submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// Value returns the current input.
func (m *PromptModel) Value() string {
	return m.Input.Value()
}

// View renders the input line and the live command preview.
func (m *PromptModel) View() string {
	var s strings.Builder
	s.WriteString(m.Input.View() + "\n")
	if m.Request.Preview != nil {
		s.WriteString(detailStyle.Render(style.Dollar+" ") + previewStyle.Render(m.Request.Preview(m.Input.Value())) + "\n")
	}
	s.WriteString(helpStyle.Render("enter confirm • esc cancel"))
	return s.String()
}
