// Package config finds the task file for a directory and loads its catalog.
package config

import (
	"fmt"

	"go.trai.ch/rt/internal/adapters/detector"
	"go.trai.ch/rt/internal/adapters/parser"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.CatalogLoader on top of a FileSystem.
type Loader struct {
	fs     FileSystem
	logger ports.Logger
}

// NewLoader creates a new Loader reading through fsys.
func NewLoader(fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load detects the runner for dir, reads its task file and parses it.
// The catalog is rebuilt on every call.
func (l *Loader) Load(dir string) (*domain.Catalog, error) {
	det, err := detector.DetectRunner(l.fs, dir)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(det.Path)
	if err != nil {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrTaskFileReadFailed, "cannot read task file"), "path", det.Path),
			"reason", err.Error(),
		)
	}

	tasks, err := parser.Parse(det.Runner, data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load tasks"), "path", det.Path)
	}

	catalog := domain.NewCatalog(det.Runner, det.Path, tasks)
	l.logger.Debug(fmt.Sprintf("using %s from %s (%d tasks)", det.Runner, det.Path, len(catalog.Tasks)))
	return catalog, nil
}
