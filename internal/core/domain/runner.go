package domain

import "go.trai.ch/zerr"

// RunnerKind identifies the task runner that owns a task file.
type RunnerKind int

const (
	// RunnerMake is GNU make driven by a Makefile.
	RunnerMake RunnerKind = iota + 1
	// RunnerJust is just driven by a justfile.
	RunnerJust
	// RunnerTask is go-task driven by a Taskfile.
	RunnerTask
	// RunnerCargoMake is cargo-make driven by a Makefile.toml.
	RunnerCargoMake
	// RunnerMise is mise driven by a mise.toml.
	RunnerMise
	// RunnerMask is mask driven by a maskfile.md.
	RunnerMask
)

// AllRunners lists every runner kind in detection precedence order.
var AllRunners = []RunnerKind{
	RunnerCargoMake,
	RunnerMise,
	RunnerMask,
	RunnerTask,
	RunnerJust,
	RunnerMake,
}

var runnerNames = map[RunnerKind]string{
	RunnerMake:      "make",
	RunnerJust:      "just",
	RunnerTask:      "task",
	RunnerCargoMake: "cargo-make",
	RunnerMise:      "mise",
	RunnerMask:      "mask",
}

var runnerPrograms = map[RunnerKind]string{
	RunnerMake:      "make",
	RunnerJust:      "just",
	RunnerTask:      "task",
	RunnerCargoMake: "cargo",
	RunnerMise:      "mise",
	RunnerMask:      "mask",
}

// String returns the tag stored in history records.
func (k RunnerKind) String() string {
	if name, ok := runnerNames[k]; ok {
		return name
	}
	return "unknown"
}

// Program returns the executable that runs tasks of this kind.
func (k RunnerKind) Program() string {
	return runnerPrograms[k]
}

// Valid reports whether k is one of the known runner kinds.
func (k RunnerKind) Valid() bool {
	_, ok := runnerNames[k]
	return ok
}

// ParseRunnerKind maps a history tag back to its RunnerKind.
func ParseRunnerKind(s string) (RunnerKind, error) {
	for kind, name := range runnerNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrUnknownRunner, "unrecognized runner tag"), "runner", s)
}
