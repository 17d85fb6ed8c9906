// Package shellhist appends executed commands to the operator's shell history
// file so they can be recalled with the shell's own history search.
package shellhist

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/zerr"
)

// probeLines is how many lines are read when sniffing the history format.
const probeLines = 20

// Appender implements ports.ShellHistory for the file named by HISTFILE.
type Appender struct {
	getenv func(string) string
	now    func() time.Time
}

// NewAppender creates an Appender reading HISTFILE and SHELL from the environment.
func NewAppender() *Appender {
	return &Appender{getenv: os.Getenv, now: time.Now}
}

// Append writes cmd as a single history line. It does nothing when HISTFILE
// is unset.
func (a *Appender) Append(cmd domain.Command) error {
	path := a.getenv("HISTFILE")
	if path == "" {
		return nil
	}

	line := CommandLine(cmd)
	if strings.TrimSpace(line) == "" {
		return nil
	}

	if isZsh(a.getenv("SHELL")) && isZshExtended(path) {
		line = ": " + strconv.FormatInt(a.now().Unix(), 10) + ":0;" + line
	}

	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to lock shell history"), "path", path)
	}
	defer func() { _ = lock.Unlock() }()

	//nolint:gosec // HISTFILE is chosen by the operator
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.PrivateFilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open shell history"), "path", path)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, "failed to append shell history"), "path", path)
	}
	return f.Close()
}

// CommandLine renders cmd the way a shell history line stores it.
func CommandLine(cmd domain.Command) string {
	argv := cmd.Argv()
	parts := make([]string, len(argv))
	for i, arg := range argv {
		parts[i] = Escape(strings.NewReplacer("\n", " ", "\r", " ").Replace(arg))
	}
	return strings.Join(parts, " ")
}

// Escape quotes arg unless it consists only of characters every shell
// leaves alone.
func Escape(arg string) string {
	if arg == "" {
		return "''"
	}
	if strings.IndexFunc(arg, func(r rune) bool { return !isSafe(r) }) < 0 {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'"'"'`) + "'"
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("@%_+=:,./-", r)
}

func isZsh(shell string) bool {
	return shell != "" && filepath.Base(shell) == "zsh"
}

// isZshExtended reports whether the first non-empty line looks like
// ": <start>:<elapsed>;<command>".
func isZshExtended(path string) bool {
	f, err := os.Open(path) //nolint:gosec // HISTFILE is chosen by the operator
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for i := 0; i < probeLines && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return strings.HasPrefix(line, ": ") && strings.Contains(line, ";")
	}
	return false
}
