package parser

import (
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// tomlTasks decodes a TOML document and returns the entries of its [tasks]
// table together with the order in which they were declared.
func tomlTasks(data []byte, format string) ([]string, map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, nil, parseError("invalid "+format+" TOML", err)
	}

	tasks, ok := doc["tasks"]
	if !ok {
		return nil, nil, nil
	}
	table, ok := tasks.(map[string]any)
	if !ok {
		return nil, nil, parseError(format+" 'tasks' must be a table", nil)
	}

	order, err := tomlTaskOrder(data)
	if err != nil {
		return nil, nil, parseError("invalid "+format+" TOML", err)
	}
	return order, table, nil
}

// tomlTaskOrder walks the document's expressions to recover the declaration
// order of the keys directly under "tasks", which map decoding loses.
func tomlTaskOrder(data []byte) ([]string, error) {
	var (
		p       unstable.Parser
		order   []string
		seen    = make(map[string]bool)
		current []string
	)

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			current = keyParts(expr)
			if expr.Kind == unstable.Table && len(current) >= 2 && current[0] == "tasks" {
				add(current[1])
			}
		case unstable.KeyValue:
			key := append(append([]string{}, current...), keyParts(expr)...)
			switch {
			case len(key) >= 2 && key[0] == "tasks":
				add(key[1])
			case len(key) == 1 && key[0] == "tasks" && expr.Value().Kind == unstable.InlineTable:
				it := expr.Value().Children()
				for it.Next() {
					if it.Node().Kind != unstable.KeyValue {
						continue
					}
					if parts := keyParts(it.Node()); len(parts) > 0 {
						add(parts[0])
					}
				}
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return order, nil
}

func keyParts(n *unstable.Node) []string {
	var parts []string
	it := n.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func tomlString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func tomlBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
