package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/rt/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	itemStyle = lipgloss.NewStyle()

	detailStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	previewStyle = lipgloss.NewStyle().
			Foreground(style.Green)
)
