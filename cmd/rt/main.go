// Package main is the entry point for rt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/rt/cmd/rt/commands"
	"go.trai.ch/rt/internal/app"
	"go.trai.ch/rt/internal/core/domain"
	_ "go.trai.ch/rt/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, provideComponents))
}

func provideComponents(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr passed in
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return domain.ExitToolFailure
	}
	defer cleanup()

	// 2. Interface - CLI
	cli := commands.New(components.App, components.Logger)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	err = cli.Execute(ctx)
	code := cli.ExitCode()
	if err == nil {
		return code
	}

	if domain.IsCancellation(err) {
		components.Logger.Info("cancelled")
	} else {
		components.Logger.Error(err)
	}

	if code == domain.ExitOK {
		code = domain.ExitCodeFor(err)
	}
	return code
}
