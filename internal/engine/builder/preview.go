package builder

import (
	"strings"

	"go.trai.ch/rt/internal/core/domain"
)

// shellSpecial lists the characters that force an argument into quotes.
const shellSpecial = " \t\n'\"\\$`!&|;<>*?()[]{}~#"

// Preview renders a command as a single line that a POSIX shell would
// split back into the same argument vector.
func Preview(cmd domain.Command) string {
	argv := cmd.Argv()
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}

// Quote single-quotes an argument when a shell would otherwise alter it.
func Quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, shellSpecial) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// PreviewInvocation renders the command an invocation would run, tolerating
// parameters that are not bound yet.
func PreviewInvocation(inv domain.ResolvedInvocation) string {
	return Preview(Sketch(inv))
}
