package parser

import (
	"strings"

	"go.trai.ch/rt/internal/core/domain"
)

var makeDirectives = map[string]bool{
	"include":   true,
	"-include":  true,
	"sinclude":  true,
	"ifeq":      true,
	"ifneq":     true,
	"ifdef":     true,
	"ifndef":    true,
	"else":      true,
	"endif":     true,
	"export":    true,
	"unexport":  true,
	"override":  true,
	"private":   true,
	"undefine":  true,
	"vpath":     true,
	"load":      true,
	"-load":     true,
	"define":    true,
	"endef":     true,
	"$(eval":    true,
	"$(info":    true,
	"$(warning": true,
	"$(error":   true,
}

// ParseMakefile extracts the explicit targets of a Makefile.
//
// Make parameters are environment variables, so tasks never declare any.
func ParseMakefile(data []byte) ([]domain.Task, error) {
	var (
		tasks     []domain.Task
		index     = make(map[string]int)
		pending   string
		inDefine  bool
		continued bool
	)

	for _, raw := range splitLines(data) {
		line := strings.TrimRight(raw, " \t")
		wasContinued := continued
		continued = strings.HasSuffix(line, "\\")
		if wasContinued {
			continue
		}

		if inDefine {
			if fields := strings.Fields(line); len(fields) > 0 && fields[0] == "endef" {
				inDefine = false
			}
			continue
		}

		if line == "" {
			pending = ""
			continue
		}
		if line[0] == '\t' || line[0] == ' ' {
			pending = ""
			continue
		}
		if line[0] == '#' {
			pending = commentText(line)
			continue
		}

		if fields := strings.Fields(line); makeDirectives[fields[0]] {
			if isDefine(fields) {
				inDefine = true
			}
			pending = ""
			continue
		}

		targets, rest, ok := splitMakeRule(line)
		if !ok {
			pending = ""
			continue
		}

		desc := makeInlineDescription(rest)
		if desc == "" {
			desc = pending
		}
		pending = ""

		for _, name := range strings.Fields(targets) {
			if !isMakeTarget(name) {
				continue
			}
			if i, ok := index[name]; ok {
				if desc != "" {
					tasks[i].Description = desc
				}
				continue
			}
			index[name] = len(tasks)
			tasks = append(tasks, domain.Task{Name: name, Description: desc})
		}
	}

	return tasks, nil
}

func isDefine(fields []string) bool {
	for _, f := range fields {
		if f == "define" {
			return true
		}
		if f != "override" && f != "export" && f != "private" {
			return false
		}
	}
	return false
}

// splitMakeRule splits "targets: prerequisites" and rejects variable assignments.
func splitMakeRule(line string) (targets, rest string, ok bool) {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return "", "", false
	}
	if eq := strings.IndexByte(line, '='); eq >= 0 && eq < colon {
		return "", "", false
	}

	after := line[colon+1:]
	switch {
	case strings.HasPrefix(after, "="):
		return "", "", false
	case strings.HasPrefix(after, ":="), strings.HasPrefix(after, "::="):
		return "", "", false
	case strings.HasPrefix(after, ":"):
		after = after[1:]
	}

	return line[:colon], after, true
}

func makeInlineDescription(rest string) string {
	i := strings.IndexByte(rest, '#')
	if i < 0 {
		return ""
	}
	return commentText(rest[i:])
}

func isMakeTarget(name string) bool {
	switch name {
	case "", "Makefile", "makefile", "GNUmakefile":
		return false
	}
	return !strings.HasPrefix(name, ".") && !strings.ContainsAny(name, "%$=")
}
