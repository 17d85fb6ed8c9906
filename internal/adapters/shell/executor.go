// Package shell runs runner commands with the operator's terminal attached.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/zerr"
)

// signalExitBase is added to a signal number to form the exit code of a
// child that was killed by that signal.
const signalExitBase = 128

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	environ func() []string
}

// Option configures an Executor.
type Option func(*Executor)

// WithStreams replaces the process's own standard streams.
// Passing *os.File values keeps the child attached to a real terminal.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates a new Executor bound to the process's standard streams.
func NewExecutor(logger ports.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:  logger,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes cmd in dir and waits for it. A child that exits non-zero is
// not an error: its code is returned as is. Errors mean the child never ran.
func (e *Executor) Run(ctx context.Context, cmd domain.Command, dir string) (int, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExitToolFailure, zerr.Wrap(err, "command not started")
	}

	executable, err := resolveExecutable(cmd.Program, e.environ())
	if err != nil {
		notFound := zerr.Wrap(domain.ErrRunnerNotInstalled, err.Error())
		return domain.ExitSpawnFailed, zerr.With(notFound, "program", cmd.Program)
	}

	// The child owns the terminal until it exits. It is not tied to ctx so an
	// interrupt reaches it through the terminal instead of killing it outright.
	c := exec.Command(executable, cmd.Args...) //nolint:gosec,noctx // runs the operator's own task runner
	c.Args[0] = cmd.Program
	c.Dir = dir
	c.Stdin = e.stdin
	c.Stdout = e.stdout
	c.Stderr = e.stderr

	// Interrupts are swallowed while the child runs and default handling is
	// restored once it exits.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	e.logger.Debug("exec " + strings.Join(cmd.Argv(), " "))

	if err := c.Start(); err != nil {
		spawnErr := zerr.Wrap(domain.ErrSpawnFailed, err.Error())
		return domain.ExitSpawnFailed, zerr.With(spawnErr, "program", cmd.Program)
	}

	return exitCode(c.Wait())
}

// exitCode converts the result of Wait into the code rt exits with.
func exitCode(err error) (int, error) {
	if err == nil {
		return domain.ExitOK, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return domain.ExitToolFailure, zerr.Wrap(err, "failed to wait for command")
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return signalExitBase + int(status.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}

// resolveExecutable finds program on the PATH carried by env.
// Programs given with a directory are checked in place.
func resolveExecutable(program string, env []string) (string, error) {
	if strings.ContainsRune(program, filepath.Separator) || strings.ContainsRune(program, '/') {
		if err := findExecutable(program); err != nil {
			return "", err
		}
		return program, nil
	}
	if runtime.GOOS == "windows" {
		return exec.LookPath(program)
	}
	return lookPath(program, env)
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
