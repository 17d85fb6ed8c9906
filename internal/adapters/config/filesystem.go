package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view of the disk used to find and load task files.
type FileSystem interface {
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem on the real disk.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the entire file at path.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from runner detection in the working directory
	return os.ReadFile(path)
}

// MapFSAdapter serves an fs.FS (typically fstest.MapFS) as if it were mounted at Root.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// NewMapFSAdapter creates a new MapFSAdapter with the given root path and filesystem.
func NewMapFSAdapter(root string, fsys fs.FS) *MapFSAdapter {
	return &MapFSAdapter{
		FS:   fsys,
		Root: root,
	}
}

// Stat returns file info for the given path.
func (m *MapFSAdapter) Stat(path string) (fs.FileInfo, error) {
	return fs.Stat(m.FS, m.toRelPath(path))
}

// ReadFile reads the entire file at path.
func (m *MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.toRelPath(path))
}

// toRelPath maps an absolute path under Root to a path inside FS.
// Paths outside Root are returned unchanged so lookups fail with fs.ErrNotExist.
func (m *MapFSAdapter) toRelPath(absPath string) string {
	absPath = filepath.ToSlash(absPath)
	root := filepath.ToSlash(m.Root)
	if !strings.HasPrefix(absPath, "/") {
		return absPath
	}
	if root != "/" && absPath != root && !strings.HasPrefix(absPath, root+"/") {
		return absPath
	}
	rel := strings.TrimPrefix(strings.TrimPrefix(absPath, root), "/")
	if rel == "" {
		return "."
	}
	return rel
}
