package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rt/internal/app"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/core/ports/mocks"
	"go.trai.ch/rt/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app          *app.App
	loader       *mocks.MockCatalogLoader
	selector     *mocks.MockSelector
	prompter     *mocks.MockPrompter
	executor     *mocks.MockExecutor
	history      *mocks.MockHistoryStore
	shellHistory *mocks.MockShellHistory
	env          *mocks.MockEnvironment
	logger       *mocks.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:       mocks.NewMockCatalogLoader(ctrl),
		selector:     mocks.NewMockSelector(ctrl),
		prompter:     mocks.NewMockPrompter(ctrl),
		executor:     mocks.NewMockExecutor(ctrl),
		history:      mocks.NewMockHistoryStore(ctrl),
		shellHistory: mocks.NewMockShellHistory(ctrl),
		env:          mocks.NewMockEnvironment(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	f.app = app.New(
		f.loader,
		f.selector,
		resolver.New(f.prompter, f.env),
		f.executor,
		f.history,
		f.shellHistory,
		f.env,
		f.logger,
	)
	return f
}

func justCatalog(dir string) *domain.Catalog {
	return domain.NewCatalog(domain.RunnerJust, filepath.Join(dir, "justfile"), []domain.Task{
		{Name: "build", Description: "Compile everything"},
		{Name: "test-all"},
	})
}

func argvOf(cmd domain.Command) []string {
	return cmd.Argv()
}

func TestApp_Run_NamedTaskWithExtras(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)
	f.shellHistory.EXPECT().Append(gomock.Any()).Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), dir).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _ string) (int, error) {
			assert.Equal(t, []string{"just", "build", "--release"}, argvOf(cmd))
			return 0, nil
		})
	f.history.EXPECT().Record(gomock.Any()).DoAndReturn(func(e domain.HistoryEntry) error {
		assert.Equal(t, []string{"just", "build", "--release"}, e.Command)
		assert.Equal(t, dir, e.Cwd)
		assert.Equal(t, "just", e.Runner)
		assert.Equal(t, "build", e.Task)
		assert.Equal(t, 0, e.ExitCode)
		assert.Equal(t, domain.HistoryVersion, e.Version)
		assert.False(t, e.Timestamp.IsZero())
		return nil
	})

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir, TaskName: "build", Args: []string{"--release"}})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestApp_Run_NoRunner(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(nil, wrapErr(domain.ErrNoRunnerFound))

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir})
	require.ErrorIs(t, err, domain.ErrNoRunnerFound)
	assert.Equal(t, domain.ExitNoRunner, code)
}

func TestApp_Run_NoTasks(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(domain.NewCatalog(domain.RunnerMake, filepath.Join(dir, "Makefile"), nil), nil)

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir})
	require.ErrorIs(t, err, domain.ErrNoTasks)
	assert.Equal(t, domain.ExitToolFailure, code)
}

func TestApp_Run_TaskNotFound(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir, TaskName: "deploy"})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, domain.ExitTaskNotFound, code)
	assert.Contains(t, metadataOf(err), "available")
}

func TestApp_Run_SelectsTask(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)
	f.env.EXPECT().Interactive().Return(true).AnyTimes()
	f.selector.EXPECT().Select(gomock.Any(), "rt · justfile", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, items []ports.SelectItem) (int, error) {
			require.Len(t, items, 2)
			assert.Equal(t, ports.SelectItem{Label: "build", Detail: "Compile everything"}, items[0])
			return 1, nil
		})
	f.shellHistory.EXPECT().Append(gomock.Any()).Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), dir).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _ string) (int, error) {
			assert.Equal(t, []string{"just", "test-all"}, argvOf(cmd))
			return 3, nil
		})
	f.history.EXPECT().Record(gomock.Any()).DoAndReturn(func(e domain.HistoryEntry) error {
		assert.Equal(t, 3, e.ExitCode)
		return nil
	})

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}

func TestApp_Run_SelectionCancelled(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)
	f.env.EXPECT().Interactive().Return(true)
	f.selector.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).Return(-1, domain.ErrSelectionCancelled)

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir})
	require.ErrorIs(t, err, domain.ErrSelectionCancelled)
	assert.Equal(t, domain.ExitCancelled, code)
}

func TestApp_Run_NotInteractiveWithoutTaskName(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)
	f.env.EXPECT().Interactive().Return(false)

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir})
	require.ErrorIs(t, err, domain.ErrNotInteractive)
	assert.Equal(t, domain.ExitNotInteractive, code)
}

func TestApp_Run_SpawnFailureSkipsHistory(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)
	// No Append or Record expectations: a command that never started is not recorded.
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), dir).
		Return(domain.ExitSpawnFailed, wrapErr(domain.ErrRunnerNotInstalled))

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir, TaskName: "build"})
	require.ErrorIs(t, err, domain.ErrRunnerNotInstalled)
	assert.Equal(t, domain.ExitSpawnFailed, code)
}

func TestApp_Run_HistoryFailuresKeepExitCode(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()

	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)
	f.shellHistory.EXPECT().Append(gomock.Any()).Return(errors.New("read-only file system"))
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), dir).Return(1, nil)
	f.history.EXPECT().Record(gomock.Any()).Return(errors.New("disk full"))
	f.logger.EXPECT().Warn("history not saved: disk full")

	code, err := f.app.Run(t.Context(), app.RunOptions{Dir: dir, TaskName: "build"})
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func recordedEntries(dirs ...string) []domain.HistoryEntry {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.HistoryEntry{
		{ID: "3", Version: 1, Timestamp: base.Add(2 * time.Hour), Command: []string{"just", "build"}, Runner: "just", Task: "build"},
		{ID: "2", Version: 1, Timestamp: base.Add(time.Hour), Command: []string{"task", "greet", "MSG=hi"}, Runner: "task", Task: "greet", ExitCode: 1},
		{ID: "1", Version: 1, Timestamp: base, Command: []string{"make", "all"}, Runner: "make", Task: "all"},
	}
	for i := range entries {
		entries[i].Cwd = dirs[i%len(dirs)]
	}
	return entries
}

func TestApp_History_Replay(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	entries := recordedEntries(dir)

	f.history.EXPECT().List(50).Return(entries, nil)
	f.env.EXPECT().Interactive().Return(true)
	f.selector.EXPECT().Select(gomock.Any(), "rt · history", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, items []ports.SelectItem) (int, error) {
			require.Len(t, items, 3)
			assert.Contains(t, items[1].Label, "task greet MSG=hi")
			assert.Contains(t, items[1].Label, "("+dir+")")
			assert.Equal(t, "exit 1", items[1].Detail)
			assert.Empty(t, items[0].Detail)
			return 1, nil
		})
	f.shellHistory.EXPECT().Append(gomock.Any()).Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), dir).DoAndReturn(
		func(_ context.Context, cmd domain.Command, _ string) (int, error) {
			assert.Equal(t, []string{"task", "greet", "MSG=hi"}, argvOf(cmd))
			return 0, nil
		})
	f.history.EXPECT().Record(gomock.Any()).DoAndReturn(func(e domain.HistoryEntry) error {
		assert.Empty(t, e.ID)
		assert.Equal(t, "task", e.Runner)
		assert.Equal(t, "greet", e.Task)
		assert.Equal(t, dir, e.Cwd)
		return nil
	})

	code, err := f.app.History(t.Context(), app.HistoryOptions{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestApp_History_Empty(t *testing.T) {
	f := newFixture(t)
	f.history.EXPECT().List(0).Return(nil, nil)

	code, err := f.app.History(t.Context(), app.HistoryOptions{})
	require.ErrorIs(t, err, domain.ErrHistoryEmpty)
	assert.Equal(t, domain.ExitToolFailure, code)
}

func TestApp_History_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.history.EXPECT().List(10).Return(recordedEntries(t.TempDir()), nil)
	f.env.EXPECT().Interactive().Return(true)
	f.selector.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).Return(-1, domain.ErrSelectionCancelled)

	code, err := f.app.History(t.Context(), app.HistoryOptions{Limit: 10})
	require.ErrorIs(t, err, domain.ErrSelectionCancelled)
	assert.Equal(t, domain.ExitCancelled, code)
}

func TestApp_Replay_MissingDirectory(t *testing.T) {
	f := newFixture(t)
	gone := filepath.Join(t.TempDir(), "removed")
	wd := t.TempDir()
	t.Chdir(wd)

	f.logger.EXPECT().Warn(gone + " no longer exists, running in " + wd)
	f.shellHistory.EXPECT().Append(gomock.Any()).Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any(), wd).Return(0, nil)
	f.history.EXPECT().Record(gomock.Any()).DoAndReturn(func(e domain.HistoryEntry) error {
		assert.Equal(t, wd, e.Cwd)
		return nil
	})

	code, err := f.app.Replay(t.Context(), domain.HistoryEntry{Command: []string{"make", "all"}, Cwd: gone, Runner: "make"})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestApp_Replay_InvalidEntry(t *testing.T) {
	f := newFixture(t)

	code, err := f.app.Replay(t.Context(), domain.HistoryEntry{ID: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidHistoryEntry)
	assert.Equal(t, domain.ExitToolFailure, code)
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	f.loader.EXPECT().Load(dir).Return(justCatalog(dir), nil)

	var buf bytes.Buffer
	require.NoError(t, f.app.List(t.Context(), dir, &buf))
	assert.Equal(t, "build\tCompile everything\ntest-all\n", buf.String())
}

func TestFormatHistoryEntry(t *testing.T) {
	e := domain.HistoryEntry{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local),
		Command:   []string{"just", "greet", "hello world"},
		Cwd:       "/work",
	}
	assert.Equal(t, "2026-03-01 12:00  just greet 'hello world'  (/work)", app.FormatHistoryEntry(e))
}
