package parser

import (
	"strconv"
	"strings"
	"unicode"

	"go.trai.ch/rt/internal/core/domain"
)

var justKeywords = map[string]bool{
	"set":      true,
	"alias":    true,
	"export":   true,
	"unexport": true,
	"import":   true,
	"mod":      true,
}

type justAttributes struct {
	private bool
	hasDoc  bool
	doc     string
}

// ParseJustfile extracts the public recipes of a justfile along with their parameters.
func ParseJustfile(data []byte) ([]domain.Task, error) {
	var (
		tasks    []domain.Task
		comments []string
		attrs    justAttributes
		inBody   bool
	)

	reset := func() {
		comments = nil
		attrs = justAttributes{}
	}

	for _, raw := range splitLines(data) {
		if inBody {
			if strings.TrimSpace(raw) == "" || raw[0] == ' ' || raw[0] == '\t' {
				continue
			}
			inBody = false
		}

		line := strings.TrimRight(raw, " \t")
		switch {
		case line == "":
			comments = nil
			continue
		case line[0] == ' ' || line[0] == '\t':
			reset()
			continue
		case line[0] == '#':
			if !strings.HasPrefix(line, "#!") {
				if text := commentText(line); text != "" {
					comments = append(comments, text)
				}
			}
			continue
		case line[0] == '[':
			attrs.parse(line)
			continue
		}

		if first := strings.TrimSuffix(strings.Fields(line)[0], "?"); justKeywords[first] {
			reset()
			continue
		}

		colon := topLevelIndex(line, ':')
		if colon < 0 || (colon+1 < len(line) && line[colon+1] == '=') {
			reset()
			continue
		}

		fields := splitTopLevelFields(strings.TrimPrefix(line[:colon], "@"))
		if len(fields) == 0 || !isJustIdentifier(fields[0]) {
			reset()
			continue
		}

		name := fields[0]
		desc := strings.Join(comments, " ")
		if attrs.hasDoc {
			desc = attrs.doc
		}
		private := attrs.private || strings.HasPrefix(name, "_")
		reset()
		inBody = true

		if private {
			continue
		}

		params := make([]domain.Parameter, 0, len(fields)-1)
		for _, tok := range fields[1:] {
			if p, ok := parseJustParameter(tok); ok {
				params = append(params, p)
			}
		}

		tasks = append(tasks, domain.Task{
			Name:        name,
			Description: desc,
			Parameters:  params,
		})
	}

	return tasks, nil
}

func (a *justAttributes) parse(line string) {
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
	for _, item := range splitTopLevel(inner, ',') {
		item = strings.TrimSpace(item)
		name, arg := item, ""
		if i := strings.IndexAny(item, "(:"); i >= 0 {
			name = strings.TrimSpace(item[:i])
			arg = strings.TrimSpace(item[i+1:])
			if item[i] == '(' {
				arg = strings.TrimSpace(strings.TrimSuffix(arg, ")"))
			}
		}
		switch name {
		case "private":
			a.private = true
		case "doc":
			a.hasDoc = true
			a.doc = unquoteJust(arg)
		}
	}
}

func parseJustParameter(tok string) (domain.Parameter, bool) {
	p := domain.Parameter{Kind: domain.ParamPositional}
	optionalVariadic := false

	switch {
	case strings.HasPrefix(tok, "+"):
		p.Variadic = true
		tok = tok[1:]
	case strings.HasPrefix(tok, "*"):
		p.Variadic = true
		optionalVariadic = true
		tok = tok[1:]
	}
	tok = strings.TrimPrefix(tok, "$")

	name, def, hasDefault := strings.Cut(tok, "=")
	if !isJustIdentifier(name) {
		return domain.Parameter{}, false
	}
	p.Name = name

	if hasDefault {
		p.Default = unquoteJust(def)
		p.HasDefault = true
	} else {
		p.Required = !optionalVariadic
	}
	return p, true
}

func unquoteJust(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return strings.Trim(s, "'")
	case s[0] == '"' && s[len(s)-1] == '"':
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}

func isJustIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// topLevelIndex returns the first index of sep outside quotes and brackets.
func topLevelIndex(s string, sep byte) int {
	var quote byte
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			return i
		}
	}
	return -1
}

// splitTopLevel splits s on sep outside quotes and brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	for {
		i := topLevelIndex(s, sep)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}

// splitTopLevelFields splits s on whitespace outside quotes and brackets.
func splitTopLevelFields(s string) []string {
	var (
		fields []string
		cur    strings.Builder
		quote  byte
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' && i+1 < len(s) {
				cur.WriteByte(c)
				i++
				c = s[i]
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
		case (c == ' ' || c == '\t') && depth == 0:
			flush()
			continue
		}
		cur.WriteByte(c)
	}
	flush()
	return fields
}
