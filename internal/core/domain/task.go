package domain

// ParamKind describes how a parameter value reaches the runner.
type ParamKind int

const (
	// ParamPositional values are passed as bare arguments in declared order.
	ParamPositional ParamKind = iota
	// ParamFlag values are passed as --name value, or --name alone when set to "true".
	ParamFlag
	// ParamVariable values are passed as NAME=value.
	ParamVariable
)

// Parameter is a declared input of a task.
type Parameter struct {
	Name       string
	Required   bool
	Default    string
	HasDefault bool
	Kind       ParamKind
	Variadic   bool
}

// Task represents one runnable unit declared in a task file.
// A Task is never modified after parsing.
type Task struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// RequiredParameters returns the parameters that must be bound before building a command.
func (t Task) RequiredParameters() []Parameter {
	var out []Parameter
	for _, p := range t.Parameters {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// Parameter returns the declared parameter with the given name.
func (t Task) Parameter(name string) (Parameter, bool) {
	for _, p := range t.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Equal reports whether two tasks have identical content.
func (t Task) Equal(o Task) bool {
	if t.Name != o.Name || t.Description != o.Description || len(t.Parameters) != len(o.Parameters) {
		return false
	}
	for i := range t.Parameters {
		if t.Parameters[i] != o.Parameters[i] {
			return false
		}
	}
	return true
}

// DedupeTasks collapses tasks that share a name. The later declaration wins
// but keeps the position of the first one.
func DedupeTasks(tasks []Task) []Task {
	index := make(map[string]int, len(tasks))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if i, ok := index[t.Name]; ok {
			out[i] = t
			continue
		}
		index[t.Name] = len(out)
		out = append(out, t)
	}
	return out
}

// Catalog is the ordered set of tasks found in one task file.
type Catalog struct {
	Runner   RunnerKind
	FilePath string
	Tasks    []Task
}

// NewCatalog builds a catalog, collapsing duplicate task names.
func NewCatalog(runner RunnerKind, filePath string, tasks []Task) *Catalog {
	return &Catalog{
		Runner:   runner,
		FilePath: filePath,
		Tasks:    DedupeTasks(tasks),
	}
}

// Lookup returns the task with the given name.
func (c *Catalog) Lookup(name string) (Task, bool) {
	for _, t := range c.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// Names returns the task names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		names = append(names, t.Name)
	}
	return names
}
