package history

import (
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Locator decides where the history log lives.
type Locator struct {
	getenv  func(string) string
	goos    string
	homeDir func() (string, error)
	workDir func() (string, error)
}

// NewLocator creates a Locator reading the process environment.
func NewLocator() *Locator {
	return &Locator{
		getenv:  os.Getenv,
		goos:    runtime.GOOS,
		homeDir: os.UserHomeDir,
		workDir: os.Getwd,
	}
}

// Candidates lists the directories tried for the history log, best first.
func (l *Locator) Candidates() []string {
	var dirs []string
	add := func(dir string) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	add(l.getenv(domain.EnvStateDir))
	if xdg := l.getenv("XDG_STATE_HOME"); xdg != "" {
		add(filepath.Join(xdg, domain.AppName))
	}

	home, err := l.homeDir()
	if err != nil {
		home = ""
	}

	if l.goos == "windows" {
		if local := l.getenv("LOCALAPPDATA"); local != "" {
			add(filepath.Join(local, domain.AppName))
		}
	} else if home != "" {
		add(filepath.Join(home, ".local", "state", domain.AppName))
	}

	if home != "" {
		add(filepath.Join(home, domain.LocalStateDirName))
	}

	if wd, err := l.workDir(); err == nil {
		add(filepath.Join(wd, domain.LocalStateDirName))
	}

	return dirs
}

// Path returns the history file inside the first candidate directory that
// can be created and written to.
func (l *Locator) Path() (string, error) {
	candidates := l.Candidates()
	for _, dir := range candidates {
		if writable(dir) {
			return filepath.Join(dir, domain.HistoryFileName), nil
		}
	}
	return "", zerr.With(zerr.Wrap(domain.ErrHistoryDirUnavailable, "no candidate directory is writable"), "tried", candidates)
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
