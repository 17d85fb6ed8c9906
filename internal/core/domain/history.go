package domain

import "time"

// HistoryVersion is the schema version written to every history record.
const HistoryVersion = 1

// HistoryEntry is one executed command as stored in the history log.
type HistoryEntry struct {
	ID        string    `json:"id,omitempty"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Command   []string  `json:"command"`
	Cwd       string    `json:"cwd"`
	Runner    string    `json:"runner"`
	Task      string    `json:"task,omitempty"`
	ExitCode  int       `json:"exit_code"`
}
