// Package commands implements the CLI for rt.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/rt/internal/app"
	"go.trai.ch/rt/internal/build"
	"go.trai.ch/rt/internal/core/domain"
)

// CLI represents the command line interface for rt.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	code    int

	argsMode bool
	history  bool
	list     bool
	limit    int
	verbose  bool
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) (int, error)
	History(ctx context.Context, opts app.HistoryOptions) (int, error)
	List(ctx context.Context, dir string, w io.Writer) error
}

// Verboser is implemented by loggers that can toggle debug output.
type Verboser interface {
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. The logger, when it
// implements Verboser, follows the --verbose flag.
func New(a Application, logger any) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "rt [task] [-- args...]",
		Short: "Run tasks from whichever task runner this directory uses",
		Long: "rt detects the task file in the current directory (Makefile.toml, mise.toml,\n" +
			"maskfile.md, Taskfile, justfile or Makefile), lets you pick a task, asks for\n" +
			"its parameters and runs it with the matching runner.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if v, ok := logger.(Verboser); ok {
				v.SetVerbose(c.verbose)
			}
		},
		RunE: c.run,
	}

	// Registered before the version flag so -v stays with --verbose.
	flags := rootCmd.Flags()
	flags.BoolVarP(&c.argsMode, "args", "a", false, "Prompt for optional parameters and extra arguments")
	flags.BoolVarP(&c.history, "history", "H", false, "Pick a previous command and run it again")
	flags.IntVarP(&c.limit, "limit", "n", historyLimitFromEnv(os.Getenv), "Number of history entries to offer")
	flags.BoolVarP(&c.list, "list", "l", false, "Print the available tasks and exit")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Show debug output")
	rootCmd.MarkFlagsMutuallyExclusive("history", "list")
	rootCmd.MarkFlagsMutuallyExclusive("history", "args")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd = rootCmd
	return c
}

func (c *CLI) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if c.history {
		code, err := c.app.History(ctx, app.HistoryOptions{Limit: c.limit})
		c.code = code
		return err
	}

	if c.list {
		return c.app.List(ctx, ".", cmd.OutOrStdout())
	}

	taskName, taskArgs := splitArgs(args, cmd.ArgsLenAtDash())
	code, err := c.app.Run(ctx, app.RunOptions{
		Dir:      ".",
		TaskName: taskName,
		Args:     taskArgs,
		ArgsMode: c.argsMode,
	})
	c.code = code
	return err
}

// splitArgs separates the task name from the arguments passed to it. The
// first token before "--" names the task; every other token is forwarded.
func splitArgs(args []string, dash int) (string, []string) {
	before := args
	var after []string
	if dash >= 0 {
		before, after = args[:dash], args[dash:]
	}

	if len(before) == 0 {
		return "", after
	}

	rest := make([]string, 0, len(before)-1+len(after))
	rest = append(rest, before[1:]...)
	rest = append(rest, after...)
	if len(rest) == 0 {
		rest = nil
	}
	return before[0], rest
}

func historyLimitFromEnv(getenv func(string) string) int {
	if v := getenv(domain.EnvHistoryLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return domain.DefaultHistoryLimit
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// ExitCode returns the exit code reported by the last executed command.
func (c *CLI) ExitCode() int {
	return c.code
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
