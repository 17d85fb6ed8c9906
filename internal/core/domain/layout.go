package domain

const (
	// AppName is used for state directory names.
	AppName = "rt"

	// HistoryFileName is the name of the JSON Lines history log.
	HistoryFileName = "history.jsonl"

	// HistoryLockSuffix is appended to the history path to form its lock file.
	HistoryLockSuffix = ".lock"

	// LocalStateDirName is the dotfile directory used under HOME or the working directory.
	LocalStateDirName = ".rt"

	// EnvStateDir overrides the history directory.
	EnvStateDir = "RT_STATE_DIR"

	// EnvHistoryLimit overrides the default number of history entries listed.
	EnvHistoryLimit = "RT_HISTORY_LIMIT"

	// DefaultHistoryLimit is the number of entries listed by --history.
	DefaultHistoryLimit = 50

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)
