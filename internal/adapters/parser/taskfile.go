package parser

import (
	"errors"
	"strings"

	"go.trai.ch/rt/internal/core/domain"
	"gopkg.in/yaml.v3"
)

type taskfileTask struct {
	Desc     string    `yaml:"desc"`
	Summary  string    `yaml:"summary"`
	Internal yaml.Node `yaml:"internal"`
	Vars     yaml.Node `yaml:"vars"`
	Requires yaml.Node `yaml:"requires"`
}

// ParseTaskfile extracts the public tasks of a go-task Taskfile.
func ParseTaskfile(data []byte) ([]domain.Task, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, parseError("invalid Taskfile YAML", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if isNull(root) {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, parseError("Taskfile must be a mapping at the top level", nil)
	}

	tasksNode := mappingValue(root, "tasks")
	if tasksNode == nil || isNull(tasksNode) {
		return nil, nil
	}
	if tasksNode.Kind != yaml.MappingNode {
		return nil, parseError("Taskfile 'tasks' must be a mapping", nil)
	}

	var tasks []domain.Task
	for i := 0; i+1 < len(tasksNode.Content); i += 2 {
		name := tasksNode.Content[i].Value
		value := tasksNode.Content[i+1]

		if isNull(value) {
			tasks = append(tasks, domain.Task{Name: name})
			continue
		}
		if value.Kind != yaml.MappingNode {
			return nil, parseError("Taskfile task '"+name+"' must be a mapping", nil)
		}

		var def taskfileTask
		if err := value.Decode(&def); err != nil {
			return nil, parseError("invalid Taskfile task '"+name+"'", err)
		}
		if def.Internal.Kind == yaml.ScalarNode && def.Internal.Value == "true" {
			continue
		}

		params, err := taskfileParameters(&def)
		if err != nil {
			return nil, parseError("invalid Taskfile task '"+name+"'", err)
		}

		tasks = append(tasks, domain.Task{
			Name:        name,
			Description: taskfileDescription(&def),
			Parameters:  params,
		})
	}

	return tasks, nil
}

func taskfileDescription(def *taskfileTask) string {
	if desc := strings.TrimSpace(def.Desc); desc != "" {
		return desc
	}
	summary := strings.TrimSpace(def.Summary)
	first, _, _ := strings.Cut(summary, "\n")
	return strings.TrimSpace(first)
}

func taskfileParameters(def *taskfileTask) ([]domain.Parameter, error) {
	type varDefault struct {
		value  string
		static bool
	}

	var (
		varOrder []string
		defaults = make(map[string]varDefault)
	)
	if def.Vars.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(def.Vars.Content); i += 2 {
			name := def.Vars.Content[i].Value
			v := def.Vars.Content[i+1]
			varOrder = append(varOrder, name)
			if v.Kind == yaml.ScalarNode && !isNull(v) {
				defaults[name] = varDefault{value: v.Value, static: true}
			} else {
				defaults[name] = varDefault{}
			}
		}
	}

	required, err := taskfileRequiredVars(&def.Requires)
	if err != nil {
		return nil, err
	}

	var (
		params []domain.Parameter
		seen   = make(map[string]bool)
	)
	for _, name := range required {
		if seen[name] {
			continue
		}
		seen[name] = true
		p := domain.Parameter{Name: name, Kind: domain.ParamVariable, Required: true}
		if d, ok := defaults[name]; ok && d.static {
			p.Required = false
			p.Default = d.value
			p.HasDefault = true
		}
		params = append(params, p)
	}
	for _, name := range varOrder {
		if seen[name] {
			continue
		}
		seen[name] = true
		d := defaults[name]
		params = append(params, domain.Parameter{
			Name:       name,
			Kind:       domain.ParamVariable,
			Default:    d.value,
			HasDefault: d.static,
		})
	}
	return params, nil
}

func taskfileRequiredVars(requires *yaml.Node) ([]string, error) {
	if requires.Kind == 0 || isNull(requires) {
		return nil, nil
	}
	if requires.Kind != yaml.MappingNode {
		return nil, errors.New("requires must be a mapping")
	}
	vars := mappingValue(requires, "vars")
	if vars == nil || isNull(vars) {
		return nil, nil
	}
	if vars.Kind != yaml.SequenceNode {
		return nil, errors.New("requires.vars must be a sequence")
	}

	names := make([]string, 0, len(vars.Content))
	for _, item := range vars.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			names = append(names, item.Value)
		case yaml.MappingNode:
			if n := mappingValue(item, "name"); n != nil && n.Value != "" {
				names = append(names, n.Value)
			}
		default:
			return nil, errors.New("requires.vars entries must be names")
		}
	}
	return names, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
