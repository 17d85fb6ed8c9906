// Package resolver binds values to a task's parameters from the command line
// and, when needed, from interactive prompts.
package resolver

import (
	"context"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/rt/internal/engine/builder"
	"go.trai.ch/zerr"
)

// Request is the input to a single resolution.
type Request struct {
	Runner domain.RunnerKind
	Task   domain.Task
	// Args are the tokens given after "--" on the command line.
	Args []string
	// ArgsMode also prompts for optional parameters and a line of extra arguments.
	ArgsMode bool
}

// Resolver produces resolved invocations.
type Resolver struct {
	prompter ports.Prompter
	env      ports.Environment
}

// New creates a Resolver that prompts through prompter when env is interactive.
func New(prompter ports.Prompter, env ports.Environment) *Resolver {
	return &Resolver{prompter: prompter, env: env}
}

// Resolve returns an invocation in which every required parameter is bound.
// It either binds them all or fails; it never returns a partial result.
func (r *Resolver) Resolve(ctx context.Context, req Request) (domain.ResolvedInvocation, error) {
	inv := domain.ResolvedInvocation{Runner: req.Runner, Task: req.Task}
	inv.Bindings, inv.ExtraArgs = bindArgs(req.Task, req.Args)

	// An optional positional without a default that sits before a bound one
	// must be filled, or the later value would take its slot.
	gaps := make(map[string]bool)
	for _, p := range builder.PositionalGaps(inv) {
		gaps[p.Name] = true
	}

	for _, p := range req.Task.Parameters {
		if len(inv.Values(p.Name)) > 0 {
			continue
		}
		if gaps[p.Name] {
			p.Required = true
		}
		if !p.Required && !req.ArgsMode {
			continue
		}
		if !r.env.Interactive() {
			if !p.Required {
				continue
			}
			err := zerr.Wrap(domain.ErrNotInteractive, "cannot prompt for a required parameter")
			err = zerr.With(err, "task", req.Task.Name)
			return domain.ResolvedInvocation{}, zerr.With(err, "parameter", p.Name)
		}

		values, err := r.promptParameter(ctx, inv, p)
		if err != nil {
			return domain.ResolvedInvocation{}, err
		}
		for _, v := range values {
			inv.Bindings = append(inv.Bindings, domain.Binding{Name: p.Name, Value: v})
		}
	}

	if req.ArgsMode && r.env.Interactive() {
		extras, err := r.promptExtras(ctx, inv)
		if err != nil {
			return domain.ResolvedInvocation{}, err
		}
		inv.ExtraArgs = append(inv.ExtraArgs, extras...)
	}

	return inv, nil
}

// promptParameter asks for one parameter. Required parameters re-prompt on
// empty input; optional ones accept it and fall back to their default.
func (r *Resolver) promptParameter(ctx context.Context, inv domain.ResolvedInvocation, p domain.Parameter) ([]string, error) {
	label := p.Name
	if !p.Required {
		label += " (optional)"
	}

	placeholder := ""
	if p.Variadic {
		placeholder = "one or more values"
	}

	for {
		input, err := r.prompter.Prompt(ctx, ports.PromptRequest{
			Label:       label,
			Placeholder: placeholder,
			Initial:     p.Default,
			Preview: func(s string) string {
				return builder.PreviewInvocation(withValues(inv, p, parseValues(p, s)))
			},
		})
		if err != nil {
			return nil, cancelled(err, p.Name)
		}

		if p.Variadic {
			values, splitErr := shellquote.Split(input)
			if splitErr != nil {
				placeholder = "unbalanced quotes, try again"
				continue
			}
			if len(values) > 0 || !p.Required {
				return values, nil
			}
		} else if strings.TrimSpace(input) != "" {
			return []string{input}, nil
		} else if !p.Required {
			return nil, nil
		}

		placeholder = "a value is required"
	}
}

func (r *Resolver) promptExtras(ctx context.Context, inv domain.ResolvedInvocation) ([]string, error) {
	placeholder := "extra arguments"
	for {
		input, err := r.prompter.Prompt(ctx, ports.PromptRequest{
			Label:       "args",
			Placeholder: placeholder,
			Preview: func(s string) string {
				preview := inv
				preview.ExtraArgs = append(append([]string{}, inv.ExtraArgs...), splitLenient(s)...)
				return builder.PreviewInvocation(preview)
			},
		})
		if err != nil {
			return nil, cancelled(err, "args")
		}

		extras, err := shellquote.Split(input)
		if err != nil {
			placeholder = "unbalanced quotes, try again"
			continue
		}
		return extras, nil
	}
}

func cancelled(err error, name string) error {
	if domain.IsCancellation(err) {
		err = zerr.Wrap(err, "prompt aborted")
	} else {
		err = zerr.Wrap(domain.ErrParameterResolutionCancelled, err.Error())
	}
	return zerr.With(err, "parameter", name)
}

// bindArgs assigns command-line tokens to parameters. "key=value" tokens bind
// the named parameter. Other tokens not starting with "-" fill unbound
// positional parameters in order, and a variadic one keeps taking them.
// The first token that binds nothing ends binding: it and every token after
// it are returned as extra arguments in the order given.
func bindArgs(task domain.Task, args []string) ([]domain.Binding, []string) {
	var bindings []domain.Binding
	bound := make(map[string]bool)

	for i, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok {
			if p, found := task.Parameter(key); found && !bound[p.Name] {
				bindings = append(bindings, domain.Binding{Name: p.Name, Value: value})
				bound[p.Name] = true
				continue
			}
		}
		if !strings.HasPrefix(arg, "-") {
			if p, ok := nextPositional(task, bound); ok {
				bindings = append(bindings, domain.Binding{Name: p.Name, Value: arg})
				if !p.Variadic {
					bound[p.Name] = true
				}
				continue
			}
		}
		return bindings, append([]string(nil), args[i:]...)
	}

	return bindings, nil
}

func nextPositional(task domain.Task, bound map[string]bool) (domain.Parameter, bool) {
	for _, p := range task.Parameters {
		if p.Kind == domain.ParamPositional && !bound[p.Name] {
			return p, true
		}
	}
	return domain.Parameter{}, false
}

func parseValues(p domain.Parameter, input string) []string {
	if p.Variadic {
		return splitLenient(input)
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return []string{input}
}

// splitLenient tokenizes input for previews, tolerating unbalanced quotes.
func splitLenient(input string) []string {
	if words, err := shellquote.Split(input); err == nil {
		return words
	}
	return strings.Fields(input)
}

func withValues(inv domain.ResolvedInvocation, p domain.Parameter, values []string) domain.ResolvedInvocation {
	bindings := make([]domain.Binding, 0, len(inv.Bindings)+len(values))
	bindings = append(bindings, inv.Bindings...)
	for _, v := range values {
		bindings = append(bindings, domain.Binding{Name: p.Name, Value: v})
	}
	inv.Bindings = bindings
	return inv
}
