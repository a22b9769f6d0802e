// Package config loads eepromctl settings from YAML files.
//
// A minimal file:
//
//	chip: 24C256
//	chip_select: 0
//	bus: /dev/i2c-1
//	ready:
//	  retries: 2000
//	  interval: 50us
//	log_level: debug
//
// Missing keys keep the values of Default. Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/eeprom"
)

// SimulatorBus selects the in-memory simulator instead of a hardware bus.
const SimulatorBus = "sim"

// Config holds the settings of one EEPROM and how to reach it.
type Config struct {
	// Chip is the part variant
	Chip chip.Variant `yaml:"chip"`

	// ChipSelect is the value of the chip-select pins
	ChipSelect uint8 `yaml:"chip_select"`

	// Bus is a periph I2C bus name such as "/dev/i2c-1" or "1", or SimulatorBus
	Bus string `yaml:"bus"`

	// Image is the raw file backing the simulator; loaded at start and saved on exit
	Image string `yaml:"image,omitempty"`

	// Ready controls acknowledge polling after page writes
	Ready Ready `yaml:"ready"`

	// MaxTransfer bounds WriteValue and ReadValue
	MaxTransfer int `yaml:"max_transfer"`

	// Trace is the CBOR file receiving every bus transaction (optional)
	Trace string `yaml:"trace,omitempty"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// Ready controls acknowledge polling.
type Ready struct {
	Retries  int           `yaml:"retries"`
	Interval time.Duration `yaml:"interval"`
}

// LoadError describes a configuration that could not be loaded.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Chip:        chip.T24C256,
		Bus:         SimulatorBus,
		Ready:       Ready{Retries: eeprom.DefaultReadyRetries, Interval: eeprom.DefaultReadyInterval},
		MaxTransfer: eeprom.DefaultMaxTransfer,
		LogLevel:    "info",
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field.
func (c *Config) Validate() error {
	if !c.Chip.Valid() {
		return fmt.Errorf("unknown chip variant %d", uint8(c.Chip))
	}

	p := chip.ProfileFor(c.Chip)
	if c.ChipSelect > p.ChipSelectMax {
		return fmt.Errorf("chip_select %d exceeds %d for %s", c.ChipSelect, p.ChipSelectMax, c.Chip)
	}
	if strings.TrimSpace(c.Bus) == "" {
		return errors.New("bus is required")
	}
	if c.Image != "" && c.Bus != SimulatorBus {
		return fmt.Errorf("image is only used with bus %q", SimulatorBus)
	}
	if c.Ready.Retries < 0 {
		return fmt.Errorf("ready.retries must not be negative, got %d", c.Ready.Retries)
	}
	if c.Ready.Interval < 0 {
		return fmt.Errorf("ready.interval must not be negative, got %s", c.Ready.Interval)
	}
	if c.MaxTransfer <= 0 {
		return fmt.Errorf("max_transfer must be positive, got %d", c.MaxTransfer)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// DeviceOptions returns the eeprom options described by c.
func (c *Config) DeviceOptions() []eeprom.Option {
	return []eeprom.Option{
		eeprom.WithReadyRetries(c.Ready.Retries),
		eeprom.WithReadyInterval(c.Ready.Interval),
		eeprom.WithMaxTransfer(c.MaxTransfer),
	}
}

// UsesSimulator reports whether Bus selects the simulator.
func (c *Config) UsesSimulator() bool {
	return c.Bus == SimulatorBus
}
