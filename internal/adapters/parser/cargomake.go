package parser

import (
	"strings"

	"go.trai.ch/rt/internal/core/domain"
)

// ParseCargoMake extracts the public tasks of a cargo-make Makefile.toml.
// The format has no parameter schema; arguments are passed through as extra args.
func ParseCargoMake(data []byte) ([]domain.Task, error) {
	order, table, err := tomlTasks(data, "Makefile.toml")
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	for _, name := range order {
		def, ok := table[name].(map[string]any)
		if !ok || tomlBool(def, "private") {
			continue
		}
		tasks = append(tasks, domain.Task{
			Name:        name,
			Description: strings.TrimSpace(tomlString(def, "description")),
		})
	}
	return tasks, nil
}
