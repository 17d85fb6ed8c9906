package ports

import "context"

// SelectItem is one row in the interactive selector.
type SelectItem struct {
	// Label is the text matched by the filter.
	Label string
	// Detail is shown next to the label but not matched.
	Detail string
}

// PromptRequest describes a single line of input requested from the operator.
type PromptRequest struct {
	Label       string
	Placeholder string
	Initial     string
	// Preview renders the command that would run for the current input.
	Preview func(input string) string
}

// Selector presents a filterable list and returns the chosen index.
//
//go:generate go run go.uber.org/mock/mockgen -source=terminal.go -destination=mocks/mock_terminal.go -package=mocks
type Selector interface {
	// Select blocks until the operator confirms an item or cancels.
	// Cancellation returns domain.ErrSelectionCancelled.
	Select(ctx context.Context, title string, items []SelectItem) (int, error)
}

// Prompter reads a line of text from the operator.
type Prompter interface {
	// Prompt blocks until the operator submits or cancels.
	// Cancellation returns domain.ErrParameterResolutionCancelled.
	Prompt(ctx context.Context, req PromptRequest) (string, error)
}

// Environment reports facts about the process's surroundings.
type Environment interface {
	// Interactive reports whether an operator can answer prompts.
	Interactive() bool
}
