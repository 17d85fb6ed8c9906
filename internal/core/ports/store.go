package ports

import "go.trai.ch/rt/internal/core/domain"

// HistoryStore persists executed commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type HistoryStore interface {
	// Record appends one entry to the log.
	Record(entry domain.HistoryEntry) error
	// List returns up to limit entries, newest first. A limit of zero or less returns all.
	List(limit int) ([]domain.HistoryEntry, error)
}

// ShellHistory appends commands to the operator's interactive shell history.
type ShellHistory interface {
	// Append writes cmd as one history line. Implementations never block the run on failure.
	Append(cmd domain.Command) error
}
