// Package builder turns a resolved task invocation into the runner command
// that executes it, and renders commands for display.
package builder

import (
	"strings"

	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Build maps an invocation to the program and arguments of its runner.
// Every required parameter must be bound.
func Build(inv domain.ResolvedInvocation) (domain.Command, error) {
	for _, p := range inv.Task.RequiredParameters() {
		if len(inv.Values(p.Name)) == 0 {
			err := zerr.Wrap(domain.ErrUnboundParameter, "required parameter has no value")
			err = zerr.With(err, "task", inv.Task.Name)
			return domain.Command{}, zerr.With(err, "parameter", p.Name)
		}
	}
	if gaps := PositionalGaps(inv); len(gaps) > 0 {
		err := zerr.Wrap(domain.ErrUnboundParameter, "a later positional parameter is bound")
		err = zerr.With(err, "task", inv.Task.Name)
		return domain.Command{}, zerr.With(err, "parameter", gaps[0].Name)
	}
	return assemble(inv)
}

// PositionalGaps returns the unbound positional parameters without a default
// that precede a bound positional parameter. Each must receive a value, or
// the later values would shift into its slot.
func PositionalGaps(inv domain.ResolvedInvocation) []domain.Parameter {
	params := positionalParams(inv.Task)
	last := lastBound(inv, params)

	var gaps []domain.Parameter
	for _, p := range params[:last+1] {
		if len(inv.Values(p.Name)) == 0 && !p.HasDefault {
			gaps = append(gaps, p)
		}
	}
	return gaps
}

// Sketch builds the command for an invocation that may still be missing
// required values. Positional arguments stop at the first unbound parameter
// without a default. The result is only meant for previews.
func Sketch(inv domain.ResolvedInvocation) domain.Command {
	cmd, _ := assemble(inv)
	return cmd
}

func assemble(inv domain.ResolvedInvocation) (domain.Command, error) {
	if !inv.Runner.Valid() {
		return domain.Command{}, zerr.With(zerr.Wrap(domain.ErrUnknownRunner, "cannot build command"), "runner", int(inv.Runner))
	}

	name := inv.Task.Name
	var args []string

	switch inv.Runner {
	case domain.RunnerMake:
		args = append(args, name)
		args = append(args, inv.ExtraArgs...)
	case domain.RunnerJust:
		args = append(args, name)
		args = append(args, positionals(inv)...)
		args = append(args, inv.ExtraArgs...)
	case domain.RunnerTask:
		args = append(args, name)
		args = append(args, variables(inv)...)
		args = appendSeparated(args, inv.ExtraArgs)
	case domain.RunnerCargoMake:
		args = append(args, "make", name)
		args = append(args, inv.ExtraArgs...)
	case domain.RunnerMise:
		args = append(args, "run", name)
		args = appendSeparated(args, inv.ExtraArgs)
	case domain.RunnerMask:
		args = append(args, strings.Fields(name)...)
		args = append(args, positionals(inv)...)
		args = append(args, flags(inv)...)
		args = append(args, inv.ExtraArgs...)
	}

	return domain.Command{Program: inv.Runner.Program(), Args: args}, nil
}

// appendSeparated adds extras after a "--" so the runner hands them to the task.
func appendSeparated(args, extras []string) []string {
	if len(extras) == 0 {
		return args
	}
	args = append(args, "--")
	return append(args, extras...)
}

// positionals returns the positional values in declared order. Unbound
// optional parameters that sit before a later bound one take their default
// so every value keeps its position.
func positionals(inv domain.ResolvedInvocation) []string {
	params := positionalParams(inv.Task)
	last := lastBound(inv, params)

	var out []string
	for _, p := range params[:last+1] {
		if vals := inv.Values(p.Name); len(vals) > 0 {
			out = append(out, vals...)
			continue
		}
		if p.HasDefault {
			out = append(out, p.Default)
			continue
		}
		break
	}
	return out
}

func positionalParams(task domain.Task) []domain.Parameter {
	var params []domain.Parameter
	for _, p := range task.Parameters {
		if p.Kind == domain.ParamPositional {
			params = append(params, p)
		}
	}
	return params
}

func lastBound(inv domain.ResolvedInvocation, params []domain.Parameter) int {
	last := -1
	for i, p := range params {
		if len(inv.Values(p.Name)) > 0 {
			last = i
		}
	}
	return last
}

func variables(inv domain.ResolvedInvocation) []string {
	var out []string
	for _, p := range inv.Task.Parameters {
		if p.Kind != domain.ParamVariable {
			continue
		}
		if v, ok := inv.Value(p.Name); ok {
			out = append(out, p.Name+"="+v)
		}
	}
	return out
}

// flags renders bound flag parameters. "true" means a bare switch and
// "false" or an empty value leaves the flag out.
func flags(inv domain.ResolvedInvocation) []string {
	var out []string
	for _, p := range inv.Task.Parameters {
		if p.Kind != domain.ParamFlag {
			continue
		}
		v, ok := inv.Value(p.Name)
		if !ok {
			continue
		}
		switch v {
		case "", "false":
		case "true":
			out = append(out, "--"+p.Name)
		default:
			out = append(out, "--"+p.Name, v)
		}
	}
	return out
}
