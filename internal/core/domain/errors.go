package domain

import "go.trai.ch/zerr"

var (
	// ErrNoRunnerFound is returned when no supported task file exists in the directory.
	ErrNoRunnerFound = zerr.New("no supported task file found")

	// ErrParseFailed is returned when a detected task file cannot be parsed.
	ErrParseFailed = zerr.New("failed to parse task file")

	// ErrTaskFileReadFailed is returned when a detected task file cannot be read.
	ErrTaskFileReadFailed = zerr.New("failed to read task file")

	// ErrNoTasks is returned when the task file declares no runnable tasks.
	ErrNoTasks = zerr.New("no tasks found")

	// ErrTaskNotFound is returned when an explicitly named task is not in the catalog.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrSelectionCancelled is returned when the operator aborts the task selector.
	ErrSelectionCancelled = zerr.New("selection cancelled")

	// ErrParameterResolutionCancelled is returned when the operator aborts a parameter prompt.
	ErrParameterResolutionCancelled = zerr.New("parameter input cancelled")

	// ErrNotInteractive is returned when input is required but no terminal is attached.
	ErrNotInteractive = zerr.New("interactive terminal required")

	// ErrInvalidExtraArgs is returned when a line of extra arguments cannot be tokenized.
	ErrInvalidExtraArgs = zerr.New("invalid extra arguments")

	// ErrUnboundParameter is returned when a command is built while a required parameter has no value.
	ErrUnboundParameter = zerr.New("required parameter is not bound")

	// ErrUnknownRunner is returned for a runner tag that does not name a known runner.
	ErrUnknownRunner = zerr.New("unknown runner")

	// ErrRunnerNotInstalled is returned when the runner binary cannot be found on PATH.
	ErrRunnerNotInstalled = zerr.New("runner is not installed")

	// ErrSpawnFailed is returned when the runner process cannot be started.
	ErrSpawnFailed = zerr.New("failed to start command")

	// ErrHistoryWriteFailed is returned when a history record cannot be appended.
	ErrHistoryWriteFailed = zerr.New("failed to write history")

	// ErrHistoryReadFailed is returned when the history log cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read history")

	// ErrHistoryDirUnavailable is returned when no writable history directory can be found.
	ErrHistoryDirUnavailable = zerr.New("no writable history directory")

	// ErrHistoryEmpty is returned when history replay is requested but nothing was recorded.
	ErrHistoryEmpty = zerr.New("history is empty")

	// ErrInvalidHistoryEntry is returned when a history entry has no command to replay.
	ErrInvalidHistoryEntry = zerr.New("history entry has no command")
)
