package detector

import (
	"io/fs"
	"path/filepath"

	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/zerr"
)

// StatFS is the filesystem capability needed for detection.
type StatFS interface {
	Stat(path string) (fs.FileInfo, error)
}

// Candidates lists the file names recognised for each runner, in the order they are probed.
var Candidates = map[domain.RunnerKind][]string{
	domain.RunnerCargoMake: {"Makefile.toml"},
	domain.RunnerMise:      {"mise.toml", ".mise.toml"},
	domain.RunnerMask:      {"maskfile.md"},
	domain.RunnerTask: {
		"Taskfile.yml", "taskfile.yml", "Taskfile.yaml", "taskfile.yaml",
		"Taskfile.dist.yml", "taskfile.dist.yml", "Taskfile.dist.yaml", "taskfile.dist.yaml",
	},
	domain.RunnerJust: {"justfile", "Justfile", ".justfile"},
	domain.RunnerMake: {"GNUmakefile", "makefile", "Makefile"},
}

// Detection is the runner chosen for a directory and the file that selected it.
type Detection struct {
	Runner domain.RunnerKind
	Path   string
}

// DetectRunner probes dir for task files in precedence order and returns the first match.
// Only regular files count. No file contents are read.
func DetectRunner(fsys StatFS, dir string) (Detection, error) {
	for _, kind := range domain.AllRunners {
		for _, name := range Candidates[kind] {
			path := filepath.Join(dir, name)
			info, err := fsys.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			return Detection{Runner: kind, Path: path}, nil
		}
	}
	return Detection{}, zerr.With(zerr.Wrap(domain.ErrNoRunnerFound, "nothing to run here"), "dir", dir)
}
