package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestNewCatalog_LaterDuplicateWins(t *testing.T) {
	catalog := domain.NewCatalog(domain.RunnerJust, "justfile", []domain.Task{
		{Name: "build", Description: "first"},
		{Name: "test"},
		{Name: "build", Description: "second"},
	})

	require.Len(t, catalog.Tasks, 2)
	assert.Equal(t, []string{"build", "test"}, catalog.Names())
	assert.Equal(t, "second", catalog.Tasks[0].Description)
}

func TestCatalog_Lookup(t *testing.T) {
	catalog := domain.NewCatalog(domain.RunnerMake, "Makefile", []domain.Task{{Name: "all"}})

	task, ok := catalog.Lookup("all")
	assert.True(t, ok)
	assert.Equal(t, "all", task.Name)

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestTask_RequiredParameters(t *testing.T) {
	task := domain.Task{
		Name: "deploy",
		Parameters: []domain.Parameter{
			{Name: "env", Required: true},
			{Name: "region", Default: "eu", HasDefault: true},
			{Name: "tag", Required: true},
		},
	}

	required := task.RequiredParameters()
	require.Len(t, required, 2)
	assert.Equal(t, "env", required[0].Name)
	assert.Equal(t, "tag", required[1].Name)

	p, ok := task.Parameter("region")
	assert.True(t, ok)
	assert.Equal(t, "eu", p.Default)
}

func TestTask_Equal(t *testing.T) {
	a := domain.Task{Name: "a", Parameters: []domain.Parameter{{Name: "x", Required: true}}}
	b := domain.Task{Name: "a", Parameters: []domain.Parameter{{Name: "x", Required: true}}}
	c := domain.Task{Name: "a", Parameters: []domain.Parameter{{Name: "x"}}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestRunnerKind(t *testing.T) {
	tests := []struct {
		kind    domain.RunnerKind
		tag     string
		program string
	}{
		{domain.RunnerMake, "make", "make"},
		{domain.RunnerJust, "just", "just"},
		{domain.RunnerTask, "task", "task"},
		{domain.RunnerCargoMake, "cargo-make", "cargo"},
		{domain.RunnerMise, "mise", "mise"},
		{domain.RunnerMask, "mask", "mask"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.tag, tt.kind.String())
			assert.Equal(t, tt.program, tt.kind.Program())
			assert.True(t, tt.kind.Valid())

			parsed, err := domain.ParseRunnerKind(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parsed)
		})
	}

	_, err := domain.ParseRunnerKind("gradle")
	require.ErrorIs(t, err, domain.ErrUnknownRunner)
	assert.False(t, domain.RunnerKind(0).Valid())
}

func TestCommand_Argv(t *testing.T) {
	cmd := domain.Command{Program: "cargo", Args: []string{"make", "build"}}
	assert.Equal(t, []string{"cargo", "make", "build"}, cmd.Argv())

	back, ok := domain.CommandFromArgv(cmd.Argv())
	require.True(t, ok)
	assert.Equal(t, cmd, back)

	_, ok = domain.CommandFromArgv(nil)
	assert.False(t, ok)
}

func TestResolvedInvocation_Value(t *testing.T) {
	inv := domain.ResolvedInvocation{Bindings: []domain.Binding{{Name: "env", Value: "prod"}}}

	v, ok := inv.Value("env")
	assert.True(t, ok)
	assert.Equal(t, "prod", v)

	_, ok = inv.Value("region")
	assert.False(t, ok)
}

func TestResolvedInvocation_Values(t *testing.T) {
	inv := domain.ResolvedInvocation{Bindings: []domain.Binding{
		{Name: "files", Value: "a.go"},
		{Name: "env", Value: "prod"},
		{Name: "files", Value: "b.go"},
	}}

	assert.Equal(t, []string{"a.go", "b.go"}, inv.Values("files"))
	assert.Nil(t, inv.Values("missing"))
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, domain.ExitOK},
		{"no runner", zerr.Wrap(domain.ErrNoRunnerFound, "detect"), domain.ExitNoRunner},
		{"selection cancelled", domain.ErrSelectionCancelled, domain.ExitCancelled},
		{"prompt cancelled", zerr.With(zerr.Wrap(domain.ErrParameterResolutionCancelled, "x"), "param", "env"), domain.ExitCancelled},
		{"task not found", domain.ErrTaskNotFound, domain.ExitTaskNotFound},
		{"not installed", domain.ErrRunnerNotInstalled, domain.ExitSpawnFailed},
		{"spawn", domain.ErrSpawnFailed, domain.ExitSpawnFailed},
		{"not interactive", domain.ErrNotInteractive, domain.ExitNotInteractive},
		{"parse", domain.ErrParseFailed, domain.ExitToolFailure},
		{"plain", errors.New("boom"), domain.ExitToolFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ExitCodeFor(tt.err))
		})
	}
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, domain.IsCancellation(domain.ErrSelectionCancelled))
	assert.True(t, domain.IsCancellation(zerr.Wrap(domain.ErrParameterResolutionCancelled, "prompt")))
	assert.False(t, domain.IsCancellation(domain.ErrTaskNotFound))
}
