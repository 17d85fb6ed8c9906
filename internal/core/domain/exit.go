package domain

import "errors"

// Exit codes reserved for failures of rt itself. They sit above the range
// commonly used by child processes and below the 128+signal range.
const (
	ExitOK             = 0
	ExitToolFailure    = 200
	ExitNoRunner       = 201
	ExitCancelled      = 202
	ExitTaskNotFound   = 203
	ExitSpawnFailed    = 204
	ExitNotInteractive = 205
)

var exitCodes = []struct {
	err  error
	code int
}{
	{ErrNoRunnerFound, ExitNoRunner},
	{ErrSelectionCancelled, ExitCancelled},
	{ErrParameterResolutionCancelled, ExitCancelled},
	{ErrTaskNotFound, ExitTaskNotFound},
	{ErrRunnerNotInstalled, ExitSpawnFailed},
	{ErrSpawnFailed, ExitSpawnFailed},
	{ErrNotInteractive, ExitNotInteractive},
}

// ExitCodeFor maps an error to the process exit code rt reports for it.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ExitToolFailure
}

// IsCancellation reports whether err means the operator backed out.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrSelectionCancelled) || errors.Is(err, ErrParameterResolutionCancelled)
}
