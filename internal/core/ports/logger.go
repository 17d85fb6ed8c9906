// Package ports defines the core interfaces for the application.
package ports

// Logger defines the interface for operator-facing status output.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a diagnostic message, shown only in verbose mode.
	Debug(msg string)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a warning message.
	Warn(msg string)
	// Error logs an error with its cause chain.
	Error(err error)
}
