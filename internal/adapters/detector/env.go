// Package detector inspects the working directory and the terminal to decide how rt runs.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Env reports whether an operator is present to answer prompts.
type Env struct {
	stdin      int
	stderr     int
	isTerminal func(fd int) bool
	getenv     func(string) string
}

// NewEnv creates an Env bound to the process's standard streams.
func NewEnv() *Env {
	return &Env{
		stdin:      int(os.Stdin.Fd()),  //nolint:gosec // fd fits in int
		stderr:     int(os.Stderr.Fd()), //nolint:gosec // fd fits in int
		isTerminal: term.IsTerminal,
		getenv:     os.Getenv,
	}
}

// Interactive reports whether the selector and prompts can be shown.
// Both stdin and stderr must be terminals and CI must not be set.
func (e *Env) Interactive() bool {
	if IsCI(e.getenv) {
		return false
	}
	return e.isTerminal(e.stdin) && e.isTerminal(e.stderr)
}

// IsCI reports whether the CI environment variable marks a non-interactive run.
func IsCI(getenv func(string) string) bool {
	ci := getenv("CI")
	return ci == "true" || ci == "1"
}
