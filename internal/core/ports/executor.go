package ports

import (
	"context"

	"go.trai.ch/rt/internal/core/domain"
)

// Executor runs a built command with the terminal attached.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run starts cmd in dir and waits for it to exit.
	//
	// It returns the child's exit code. A non-nil error means the command
	// could not be started at all; the exit code is then meaningless.
	Run(ctx context.Context, cmd domain.Command, dir string) (int, error)
}
