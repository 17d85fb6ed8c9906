package detector

// NewEnvForTest builds an Env with injected terminal and environment probes.
func NewEnvForTest(isTerminal func(int) bool, getenv func(string) string) *Env {
	return &Env{
		stdin:      0,
		stderr:     2,
		isTerminal: isTerminal,
		getenv:     getenv,
	}
}
