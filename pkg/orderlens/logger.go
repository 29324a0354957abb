package orderlens

// Logger is the pluggable logging surface used across the pipeline stages.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Verbose emits diagnostic detail, shown only in verbose mode.
	Verbose(format string, args ...interface{})

	// Info emits normal progress output.
	Info(format string, args ...interface{})

	// Error emits error output.
	Error(format string, args ...interface{})
}
