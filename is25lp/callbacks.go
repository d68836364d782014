package is25lp

import "time"

// Progress phases reported to ProgressCallback.
const (
	// PhaseProgramming means pages are being written
	PhaseProgramming = "programming"

	// PhaseErasing means an erase cycle is running
	PhaseErasing = "erasing"

	// PhaseComplete means the operation finished successfully
	PhaseComplete = "complete"
)

// Progress contains information about a running multi-page write or erase.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// CurrentPage is the number of pages written so far
	CurrentPage int

	// TotalPages is the total number of pages the operation will touch
	TotalPages int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the total number of bytes written so far
	BytesWritten int

	// ElapsedTime is the time elapsed since the operation started
	ElapsedTime time.Duration
}

// ProgressCallback is called after each page of a multi-page Write.
// Implementations should return quickly to avoid slowing the operation.
//
// Example:
//
//	dev := is25lp.New(transport,
//	    is25lp.WithProgressCallback(func(p is25lp.Progress) {
//	        fmt.Printf("[%s] %.1f%% - page %d/%d\n",
//	            p.Phase, p.Percentage, p.CurrentPage, p.TotalPages)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface. It allows integration with any
// logging framework without binding the driver to one.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	dev := is25lp.New(transport, is25lp.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
