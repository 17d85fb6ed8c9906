package tui_test

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rt/internal/adapters/tui"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
)

func newTestTerminal(t *testing.T, input string) *tui.Terminal {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	return tui.NewTerminal(
		tea.WithInput(strings.NewReader(input)),
		tea.WithOutput(&bytes.Buffer{}),
		tea.WithoutSignalHandler(),
	)
}

func TestTerminal_Select(t *testing.T) {
	term := newTestTerminal(t, "\x1b[B\r")

	idx, err := term.Select(t.Context(), "tasks", sampleItems())
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestTerminal_Select_Cancelled(t *testing.T) {
	term := newTestTerminal(t, "\x03")

	_, err := term.Select(t.Context(), "tasks", sampleItems())
	require.ErrorIs(t, err, domain.ErrSelectionCancelled)
	assert.Equal(t, domain.ExitCancelled, domain.ExitCodeFor(err))
}

func TestTerminal_Select_Empty(t *testing.T) {
	term := newTestTerminal(t, "")

	_, err := term.Select(t.Context(), "tasks", nil)
	require.ErrorIs(t, err, domain.ErrNoTasks)
}

func TestTerminal_Prompt(t *testing.T) {
	term := newTestTerminal(t, "prod\r")

	value, err := term.Prompt(t.Context(), ports.PromptRequest{Label: "env"})
	require.NoError(t, err)
	assert.Equal(t, "prod", value)
}

func TestTerminal_Prompt_Cancelled(t *testing.T) {
	term := newTestTerminal(t, "\x03")

	_, err := term.Prompt(t.Context(), ports.PromptRequest{Label: "env"})
	require.ErrorIs(t, err, domain.ErrParameterResolutionCancelled)
}
