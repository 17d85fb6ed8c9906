package commands

var (
	SplitArgs           = splitArgs
	HistoryLimitFromEnv = historyLimitFromEnv
)
