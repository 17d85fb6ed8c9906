// Package app implements the application layer for rt.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/engine/builder"
	"go.trai.ch/rt/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// ParameterResolver binds a task's parameters for one invocation.
type ParameterResolver interface {
	Resolve(ctx context.Context, req resolver.Request) (domain.ResolvedInvocation, error)
}

// App represents the main application logic.
type App struct {
	loader       ports.CatalogLoader
	selector     ports.Selector
	resolver     ParameterResolver
	executor     ports.Executor
	history      ports.HistoryStore
	shellHistory ports.ShellHistory
	env          ports.Environment
	logger       ports.Logger
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.CatalogLoader,
	selector ports.Selector,
	res ParameterResolver,
	executor ports.Executor,
	history ports.HistoryStore,
	shellHistory ports.ShellHistory,
	env ports.Environment,
	log ports.Logger,
) *App {
	return &App{
		loader:       loader,
		selector:     selector,
		resolver:     res,
		executor:     executor,
		history:      history,
		shellHistory: shellHistory,
		env:          env,
		logger:       log,
		now:          time.Now,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Dir is the directory searched for a task file and used as the working directory.
	Dir string
	// TaskName skips the selector when set.
	TaskName string
	// Args are the tokens given after "--".
	Args []string
	// ArgsMode prompts for optional parameters and extra arguments.
	ArgsMode bool
}

// HistoryOptions configuration for the History method.
type HistoryOptions struct {
	// Limit caps the number of entries offered. Zero or less offers all of them.
	Limit int
}

// Run detects the task file in opts.Dir, picks a task, resolves its
// parameters and executes it. The returned code is the child's exit code when
// it ran, or the reserved code for the failure otherwise.
func (a *App) Run(ctx context.Context, opts RunOptions) (int, error) {
	dir, err := absDir(opts.Dir)
	if err != nil {
		return domain.ExitCodeFor(err), err
	}

	catalog, err := a.loader.Load(dir)
	if err != nil {
		return domain.ExitCodeFor(err), err
	}

	task, err := a.pickTask(ctx, catalog, opts.TaskName)
	if err != nil {
		return domain.ExitCodeFor(err), err
	}

	inv, err := a.resolver.Resolve(ctx, resolver.Request{
		Runner:   catalog.Runner,
		Task:     task,
		Args:     opts.Args,
		ArgsMode: opts.ArgsMode,
	})
	if err != nil {
		return domain.ExitCodeFor(err), err
	}

	cmd, err := builder.Build(inv)
	if err != nil {
		return domain.ExitCodeFor(err), err
	}

	return a.execute(ctx, cmd, dir, catalog.Runner.String(), task.Name)
}

func (a *App) pickTask(ctx context.Context, catalog *domain.Catalog, name string) (domain.Task, error) {
	if len(catalog.Tasks) == 0 {
		return domain.Task{}, zerr.With(zerr.Wrap(domain.ErrNoTasks, "task file declares no tasks"), "file", catalog.FilePath)
	}

	if name != "" {
		task, ok := catalog.Lookup(name)
		if !ok {
			err := zerr.With(zerr.Wrap(domain.ErrTaskNotFound, "no task named "+strconv.Quote(name)), "file", catalog.FilePath)
			return domain.Task{}, zerr.With(err, "available", strings.Join(catalog.Names(), ", "))
		}
		return task, nil
	}

	if !a.env.Interactive() {
		return domain.Task{}, zerr.Wrap(domain.ErrNotInteractive, "pass a task name to run without a terminal")
	}

	items := make([]ports.SelectItem, len(catalog.Tasks))
	for i, t := range catalog.Tasks {
		items[i] = ports.SelectItem{Label: t.Name, Detail: t.Description}
	}

	title := domain.AppName + " · " + filepath.Base(catalog.FilePath)
	idx, err := a.selector.Select(ctx, title, items)
	if err != nil {
		return domain.Task{}, err
	}
	return catalog.Tasks[idx], nil
}

// History lets the operator pick a recorded command and replays it.
func (a *App) History(ctx context.Context, opts HistoryOptions) (int, error) {
	entries, err := a.history.List(opts.Limit)
	if err != nil {
		return domain.ExitCodeFor(err), err
	}
	if len(entries) == 0 {
		return domain.ExitToolFailure, zerr.Wrap(domain.ErrHistoryEmpty, "run a task first")
	}

	if !a.env.Interactive() {
		err := zerr.Wrap(domain.ErrNotInteractive, "history selection needs a terminal")
		return domain.ExitCodeFor(err), err
	}

	items := make([]ports.SelectItem, len(entries))
	for i, e := range entries {
		items[i] = ports.SelectItem{Label: FormatHistoryEntry(e)}
		if e.ExitCode != 0 {
			items[i].Detail = "exit " + strconv.Itoa(e.ExitCode)
		}
	}

	idx, err := a.selector.Select(ctx, domain.AppName+" · history", items)
	if err != nil {
		return domain.ExitCodeFor(err), err
	}

	return a.Replay(ctx, entries[idx])
}

// Replay re-executes a recorded command in its recorded directory without
// detecting, parsing or prompting again. A directory that no longer exists
// falls back to the current one.
func (a *App) Replay(ctx context.Context, entry domain.HistoryEntry) (int, error) {
	cmd, ok := domain.CommandFromArgv(entry.Command)
	if !ok {
		err := zerr.Wrap(domain.ErrInvalidHistoryEntry, "cannot replay")
		return domain.ExitCodeFor(err), zerr.With(err, "id", entry.ID)
	}

	dir := entry.Cwd
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return domain.ExitToolFailure, zerr.Wrap(wdErr, "failed to get working directory")
		}
		a.logger.Warn(fmt.Sprintf("%s no longer exists, running in %s", dir, wd))
		dir = wd
	}

	return a.execute(ctx, cmd, dir, entry.Runner, entry.Task)
}

// List writes the tasks found in dir as "name<TAB>description" lines.
func (a *App) List(_ context.Context, dir string, w io.Writer) error {
	dir, err := absDir(dir)
	if err != nil {
		return err
	}

	catalog, err := a.loader.Load(dir)
	if err != nil {
		return err
	}

	for _, t := range catalog.Tasks {
		line := t.Name
		if t.Description != "" {
			line += "\t" + t.Description
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return zerr.Wrap(err, "failed to write task list")
		}
	}
	return nil
}

// execute runs cmd and records it. A command that never started is recorded
// nowhere. Shell and rt history are best effort: a failure to write either
// never changes the exit code.
func (a *App) execute(ctx context.Context, cmd domain.Command, dir, runner, task string) (int, error) {
	started := a.now().UTC()

	code, err := a.executor.Run(ctx, cmd, dir)
	if err != nil {
		return code, err
	}

	if err := a.shellHistory.Append(cmd); err != nil {
		a.logger.Debug("shell history not updated: " + err.Error())
	}

	entry := domain.HistoryEntry{
		Version:   domain.HistoryVersion,
		Timestamp: started,
		Command:   cmd.Argv(),
		Cwd:       dir,
		Runner:    runner,
		Task:      task,
		ExitCode:  code,
	}
	if err := a.history.Record(entry); err != nil {
		a.logger.Warn("history not saved: " + err.Error())
	}

	return code, nil
}

// FormatHistoryEntry renders an entry as a single selector line.
func FormatHistoryEntry(e domain.HistoryEntry) string {
	preview := strings.Join(e.Command, " ")
	if cmd, ok := domain.CommandFromArgv(e.Command); ok {
		preview = builder.Preview(cmd)
	}
	return e.Timestamp.Local().Format("2006-01-02 15:04") + "  " + preview + "  (" + e.Cwd + ")"
}

func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve directory"), "dir", dir)
	}
	return abs, nil
}
