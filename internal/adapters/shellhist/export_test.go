package shellhist

import "time"

// NewAppenderForTest creates an Appender with an injected environment and clock.
func NewAppenderForTest(getenv func(string) string, now func() time.Time) *Appender {
	return &Appender{getenv: getenv, now: now}
}
