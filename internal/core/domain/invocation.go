package domain

// Binding is a value assigned to a named task parameter.
type Binding struct {
	Name  string
	Value string
}

// ResolvedInvocation is everything needed to build a runner command for a task.
type ResolvedInvocation struct {
	Runner    RunnerKind
	Task      Task
	Bindings  []Binding
	ExtraArgs []string
}

// Value returns the value bound to the named parameter.
func (r ResolvedInvocation) Value(name string) (string, bool) {
	for _, b := range r.Bindings {
		if b.Name == name {
			return b.Value, true
		}
	}
	return "", false
}

// Values returns every value bound to the named parameter in binding order.
// Variadic parameters may carry more than one.
func (r ResolvedInvocation) Values(name string) []string {
	var out []string
	for _, b := range r.Bindings {
		if b.Name == name {
			out = append(out, b.Value)
		}
	}
	return out
}

// Command is a program and its argument vector.
type Command struct {
	Program string
	Args    []string
}

// Argv returns the program followed by its arguments.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// CommandFromArgv splits an argument vector into a Command.
func CommandFromArgv(argv []string) (Command, bool) {
	if len(argv) == 0 || argv[0] == "" {
		return Command{}, false
	}
	args := make([]string, len(argv)-1)
	copy(args, argv[1:])
	return Command{Program: argv[0], Args: args}, true
}
