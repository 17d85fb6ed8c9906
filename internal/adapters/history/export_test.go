package history

import "time"

// NewLocatorForTest creates a Locator with injected environment lookups.
func NewLocatorForTest(
	getenv func(string) string,
	goos string,
	homeDir func() (string, error),
	workDir func() (string, error),
) *Locator {
	return &Locator{getenv: getenv, goos: goos, homeDir: homeDir, workDir: workDir}
}

// SetClock replaces the store's time source.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
