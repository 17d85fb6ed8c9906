// Package tui provides the interactive task selector and parameter prompt.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/ui/style"
)

const (
	defaultListHeight = 10
	// selectorChrome is the number of lines around the list: title, filter,
	// blank line and help.
	selectorChrome = 4
)

// SelectModel is a filterable list. Typing narrows the list to items whose
// label contains the query, ignoring case, in their original order.
type SelectModel struct {
	Title  string
	Items  []ports.SelectItem
	Filter textinput.Model

	// Visible holds indices into Items that match the filter.
	Visible    []int
	Cursor     int
	ListOffset int
	ListHeight int

	Chosen    int
	Cancelled bool
}

// NewSelectModel creates a selector over items with an empty filter.
func NewSelectModel(title string, items []ports.SelectItem) *SelectModel {
	filter := textinput.New()
	filter.Prompt = style.Pointer + " "
	filter.Placeholder = "type to filter"
	filter.Focus()

	m := &SelectModel{
		Title:      title,
		Items:      items,
		Filter:     filter,
		ListHeight: defaultListHeight,
		Chosen:     -1,
	}
	m.applyFilter()
	return m
}

// Init starts the cursor blink.
func (m *SelectModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "enter":
			if len(m.Visible) == 0 {
				return m, nil
			}
			m.Chosen = m.Visible[m.Cursor]
			return m, tea.Quit
		case "up", "ctrl+p", "shift+tab":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n", "tab":
			m.move(1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.ListHeight = max(1, msg.Height-selectorChrome)
		m.ensureVisible()
		return m, nil
	}

	var cmd tea.Cmd
	query := m.Filter.Value()
	m.Filter, cmd = m.Filter.Update(msg)
	if m.Filter.Value() != query {
		m.applyFilter()
	}
	return m, cmd
}

func (m *SelectModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Visible) {
		return
	}
	m.Cursor = next
	m.ensureVisible()
}

func (m *SelectModel) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.Cursor < m.ListOffset {
		m.ListOffset = m.Cursor
	} else if m.Cursor >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.Cursor - m.ListHeight + 1
	}
}

// applyFilter recomputes the visible items and moves the cursor to the top.
func (m *SelectModel) applyFilter() {
	query := strings.ToLower(m.Filter.Value())

	m.Visible = m.Visible[:0]
	for i, item := range m.Items {
		if strings.Contains(strings.ToLower(item.Label), query) {
			m.Visible = append(m.Visible, i)
		}
	}
	m.Cursor = 0
	m.ListOffset = 0
}

// View renders the title, the filter line and the visible window of items.
func (m *SelectModel) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.Title) + "\n")
	s.WriteString(m.Filter.View() + "\n")

	if len(m.Visible) == 0 {
		s.WriteString(detailStyle.Render("  no matches") + "\n")
	}

	end := min(m.ListOffset+m.ListHeight, len(m.Visible))
	for row := m.ListOffset; row < end; row++ {
		item := m.Items[m.Visible[row]]

		line := "  " + itemStyle.Render(item.Label)
		if row == m.Cursor {
			line = selectedStyle.Render(style.Pointer + " " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + detailStyle.Render(item.Detail)
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("↑/↓ move • enter select • esc cancel"))
	return s.String()
}
