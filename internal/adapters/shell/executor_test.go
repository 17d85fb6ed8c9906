package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rt/internal/adapters/shell"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newExecutor(t *testing.T, opts ...shell.Option) *shell.Executor {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return shell.NewExecutor(mockLogger, opts...)
}

func shCommand(script string) domain.Command {
	return domain.Command{Program: "sh", Args: []string{"-c", script}}
}

func TestExecutor_Run_ExitCode(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   int
	}{
		{name: "success", script: "exit 0", want: 0},
		{name: "child failure propagates", script: "exit 3", want: 3},
		{name: "signalled child", script: "kill -TERM $$", want: 128 + 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := newExecutor(t, shell.WithStreams(nil, &bytes.Buffer{}, &bytes.Buffer{}))

			code, err := executor.Run(t.Context(), shCommand(tt.script), t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestExecutor_Run_Streams(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	executor := newExecutor(t, shell.WithStreams(strings.NewReader("ping\n"), stdout, stderr))

	code, err := executor.Run(t.Context(), shCommand("read line; echo \"$line\"; echo oops >&2"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ping\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_Run_WorkingDirectory(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	executor := newExecutor(t, shell.WithStreams(nil, stdout, &bytes.Buffer{}))

	_, err = executor.Run(t.Context(), shCommand("pwd -P"), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, strings.TrimSpace(stdout.String()))
}

func TestExecutor_Run_RunnerNotInstalled(t *testing.T) {
	executor := newExecutor(t)

	code, err := executor.Run(t.Context(), domain.Command{Program: "rt-no-such-runner"}, t.TempDir())
	require.ErrorIs(t, err, domain.ErrRunnerNotInstalled)
	assert.Equal(t, domain.ExitSpawnFailed, code)
	assert.Equal(t, domain.ExitSpawnFailed, domain.ExitCodeFor(err))
}

func TestExecutor_Run_NotExecutable(t *testing.T) {
	executor := newExecutor(t)

	script := filepath.Join(t.TempDir(), "runner")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), domain.PrivateFilePerm))

	_, err := executor.Run(t.Context(), domain.Command{Program: script}, t.TempDir())
	require.ErrorIs(t, err, domain.ErrRunnerNotInstalled)
}

func TestExecutor_Run_CancelledContext(t *testing.T) {
	executor := newExecutor(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := executor.Run(ctx, shCommand("exit 0"), t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestExecutor_Run_AttachesTerminal(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	executor := newExecutor(t, shell.WithStreams(tty, tty, tty))

	code, err := executor.Run(t.Context(), shCommand("test -t 0 && test -t 1 && test -t 2"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, code, "child should see a terminal on every standard stream")
}
