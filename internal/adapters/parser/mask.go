package parser

import (
	"regexp"
	"strings"

	"go.trai.ch/rt/internal/core/domain"
)

var (
	maskMarker = regexp.MustCompile(`\(([A-Za-z_][\w-]*)\??\)`)
	maskFlag   = regexp.MustCompile(`(?:^|[\s` + "`" + `(])--([A-Za-z0-9][\w-]*)`)
	maskSpan   = regexp.MustCompile("`([^`]+)`")
)

type maskSection struct {
	name    string
	desc    string
	hasCode bool
	params  []domain.Parameter
}

func (s *maskSection) addParam(p domain.Parameter) {
	for _, existing := range s.params {
		if existing.Name == p.Name {
			return
		}
	}
	s.params = append(s.params, p)
}

// ParseMaskfile extracts the runnable commands of a maskfile.md.
// Nested headings become space-separated subcommand names.
func ParseMaskfile(data []byte) ([]domain.Task, error) {
	var (
		sections []*maskSection
		stack    []string
		cur      *maskSection
		fence    string
	)

	for _, line := range splitLines(data) {
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			if cur != nil {
				cur.hasCode = true
			}
			continue
		}

		if level, text, ok := markdownHeading(trimmed); ok {
			if level < 2 {
				stack = nil
				cur = nil
				continue
			}
			name, params := maskHeading(text)
			depth := min(level-2, len(stack))
			stack = append(stack[:depth], name)
			cur = &maskSection{name: strings.Join(stack, " ")}
			for _, p := range params {
				cur.addParam(p)
			}
			sections = append(sections, cur)
			continue
		}

		if cur == nil || trimmed == "" {
			continue
		}

		if isMarkdownBullet(trimmed) {
			item := strings.TrimSpace(trimmed[1:])
			if strings.HasPrefix(item, "desc:") {
				continue
			}
			for _, m := range maskFlag.FindAllStringSubmatch(item, -1) {
				cur.addParam(domain.Parameter{Name: m[1], Kind: domain.ParamFlag})
			}
			for _, m := range maskMarker.FindAllStringSubmatch(item, -1) {
				cur.addParam(domain.Parameter{Name: m[1], Kind: domain.ParamPositional})
			}
			continue
		}

		// Prose declares flags only inside inline code spans.
		for _, span := range maskSpan.FindAllStringSubmatch(trimmed, -1) {
			for _, m := range maskFlag.FindAllStringSubmatch(span[1], -1) {
				cur.addParam(domain.Parameter{Name: m[1], Kind: domain.ParamFlag})
			}
		}

		if cur.desc == "" && !cur.hasCode && !strings.HasPrefix(trimmed, "**") {
			cur.desc = strings.TrimSpace(strings.TrimLeft(trimmed, ">"))
		}
	}

	var tasks []domain.Task
	for _, s := range sections {
		if !s.hasCode || s.name == "" {
			continue
		}
		tasks = append(tasks, domain.Task{
			Name:        s.name,
			Description: s.desc,
			Parameters:  s.params,
		})
	}
	return tasks, nil
}

// maskHeading removes argument markers from a heading and returns them as parameters.
func maskHeading(text string) (string, []domain.Parameter) {
	var params []domain.Parameter
	for _, m := range maskMarker.FindAllStringSubmatch(text, -1) {
		params = append(params, domain.Parameter{Name: m[1], Kind: domain.ParamPositional})
	}
	name := strings.Join(strings.Fields(maskMarker.ReplaceAllString(text, "")), " ")
	return name, params
}

func markdownHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return 0, "", false
	}
	text := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(line[level:]), "#"))
	return level, text, true
}

func isMarkdownBullet(line string) bool {
	if len(line) < 2 {
		return false
	}
	return (line[0] == '*' || line[0] == '-' || line[0] == '+') && (line[1] == ' ' || line[1] == '\t')
}
