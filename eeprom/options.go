package eeprom

import "time"

// Defaults used when no option overrides them.
const (
	// DefaultReadyRetries bounds the acknowledge polling after a page write
	DefaultReadyRetries = 1000

	// DefaultReadyInterval is the pause between two acknowledge polls.
	// With the default retries this allows 20ms, four times the 5ms
	// write cycle of common parts.
	DefaultReadyInterval = 20 * time.Microsecond

	// DefaultMaxTransfer is the largest value accepted by WriteValue and ReadValue
	DefaultMaxTransfer = 4096
)

// Config holds the device configuration.
type Config struct {
	// ProgressCallback is called during Write and Clear to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadyRetries is the number of acknowledge polls after a page write
	// before the device is declared not ready
	ReadyRetries int

	// ReadyInterval is the pause between acknowledge polls
	ReadyInterval time.Duration

	// MaxTransfer is the largest scratch buffer WriteValue and ReadValue may allocate
	MaxTransfer int
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ReadyRetries:  DefaultReadyRetries,
		ReadyInterval: DefaultReadyInterval,
		MaxTransfer:   DefaultMaxTransfer,
	}
}

// Option is a functional option for configuring a Device.
type Option func(*Config)

// WithProgressCallback sets a callback function to track write progress.
//
// Example:
//
//	dev, _ := eeprom.New(b, 0, chip.T24C64,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the device operations.
//
// Example:
//
//	dev, _ := eeprom.New(b, 0, chip.T24C64, eeprom.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadyRetries sets how many acknowledge polls follow each page write.
// Zero means a single poll.
//
// Example:
//
//	dev, _ := eeprom.New(b, 0, chip.T24C64, eeprom.WithReadyRetries(5000))
func WithReadyRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.ReadyRetries = retries
		}
	}
}

// WithReadyInterval sets the pause between acknowledge polls. Zero polls
// back to back.
//
// Example:
//
//	dev, _ := eeprom.New(b, 0, chip.T24C64, eeprom.WithReadyInterval(100*time.Microsecond))
func WithReadyInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.ReadyInterval = interval
		}
	}
}

// WithMaxTransfer sets the largest value WriteValue and ReadValue accept.
//
// Example:
//
//	dev, _ := eeprom.New(b, 0, chip.T24C512, eeprom.WithMaxTransfer(65536))
func WithMaxTransfer(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.MaxTransfer = size
		}
	}
}
