package parser

import (
	"strings"

	"go.trai.ch/rt/internal/core/domain"
)

// ParseMise extracts the visible tasks of a mise.toml.
func ParseMise(data []byte) ([]domain.Task, error) {
	order, table, err := tomlTasks(data, "mise")
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	for _, name := range order {
		switch def := table[name].(type) {
		case string, []any:
			tasks = append(tasks, domain.Task{Name: name})
		case map[string]any:
			if tomlBool(def, "hide") {
				continue
			}
			tasks = append(tasks, domain.Task{
				Name:        name,
				Description: strings.TrimSpace(tomlString(def, "description")),
			})
		}
	}
	return tasks, nil
}
