package eeprom

import "time"

// Operation phases reported through Progress.
const (
	PhaseWriting   = "writing"
	PhaseClearing  = "clearing"
	PhaseVerifying = "verifying"
	PhaseComplete  = "complete"
)

// Progress contains information about a long running operation.
// Passed to ProgressCallback by Write and Clear.
type Progress struct {
	// Phase is the current operation phase
	Phase string

	// Address is the next logical address to be written
	Address uint32

	// BytesWritten is the number of bytes committed so far
	BytesWritten int

	// Total is the number of bytes the operation will write
	Total int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the operation started
	ElapsedTime time.Duration
}

// ProgressCallback is called after every committed page.
// Implementations should return quickly; the bus is idle while it runs.
//
// Example:
//
//	dev, _ := eeprom.New(b, 0, chip.T24C256,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("[%s] %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to a Device.
// This allows integration with any logging framework; see NewSlogLogger for
// log/slog.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
