// Package history persists executed commands as JSON Lines and reads them back
// for replay.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/oklog/ulid/v2"
	"go.trai.ch/rt/internal/core/domain"
	"go.trai.ch/rt/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxLineSize bounds a single history record. Longer lines are never
// written and are skipped when read.
const maxLineSize = 1 << 20

// Store implements ports.HistoryStore on an append-only file.
type Store struct {
	logger ports.Logger
	locate func() (string, error)
	now    func() time.Time

	once sync.Once
	path string
	err  error
}

// NewStore creates a Store whose file location is decided by locate on
// first use and then kept for the rest of the process.
func NewStore(logger ports.Logger, locate func() (string, error)) *Store {
	return &Store{
		logger: logger,
		locate: locate,
		now:    time.Now,
	}
}

// NewFileStore creates a Store bound to a known file path.
func NewFileStore(logger ports.Logger, path string) *Store {
	return NewStore(logger, func() (string, error) { return path, nil })
}

// Path returns the history file location.
func (s *Store) Path() (string, error) {
	s.once.Do(func() {
		s.path, s.err = s.locate()
	})
	return s.path, s.err
}

// Record appends entry as one line. Missing ID, version, and timestamp are
// filled in. The line is written with a single call while holding an
// exclusive lock so concurrent runs never interleave partial records.
func (s *Store) Record(entry domain.HistoryEntry) error {
	path, err := s.Path()
	if err != nil {
		return zerr.Wrap(domain.ErrHistoryWriteFailed, err.Error())
	}

	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	if entry.Version == 0 {
		entry.Version = domain.HistoryVersion
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	line, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(domain.ErrHistoryWriteFailed, err.Error())
	}
	if len(line) > maxLineSize {
		return zerr.With(zerr.Wrap(domain.ErrHistoryWriteFailed, "record too large"), "bytes", len(line))
	}
	line = append(line, '\n')

	lock := flock.New(path + domain.HistoryLockSuffix)
	if err := lock.Lock(); err != nil {
		return s.writeError(err, path)
	}
	defer func() { _ = lock.Unlock() }()

	//nolint:gosec // path comes from the state directory lookup
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.PrivateFilePerm)
	if err != nil {
		return s.writeError(err, path)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return s.writeError(err, path)
	}
	if err := f.Close(); err != nil {
		return s.writeError(err, path)
	}
	return nil
}

// List returns up to limit entries, newest first. Lines that fail to decode
// or carry no command are skipped.
func (s *Store) List(limit int) ([]domain.HistoryEntry, error) {
	path, err := s.Path()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrHistoryReadFailed, err.Error())
	}

	lock := flock.New(path + domain.HistoryLockSuffix)
	if err := lock.RLock(); err != nil {
		return nil, s.readError(err, path)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the state directory lookup
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, s.readError(err, path)
	}

	entries, skipped := decode(data)
	if skipped > 0 {
		s.logger.Debug("skipped " + strconv.Itoa(skipped) + " unreadable history lines in " + path)
	}

	// Oldest first on disk, newest first for display.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func decode(data []byte) ([]domain.HistoryEntry, int) {
	var entries []domain.HistoryEntry
	skipped := 0

	for len(data) > 0 {
		var line []byte
		line, data, _ = bytes.Cut(data, []byte{'\n'})
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if len(line) > maxLineSize {
			skipped++
			continue
		}
		var entry domain.HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil || len(entry.Command) == 0 {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

func (s *Store) writeError(err error, path string) error {
	return zerr.With(zerr.Wrap(domain.ErrHistoryWriteFailed, err.Error()), "path", path)
}

func (s *Store) readError(err error, path string) error {
	return zerr.With(zerr.Wrap(domain.ErrHistoryReadFailed, err.Error()), "path", path)
}
