package eeprom

import (
	"fmt"
	"sync"

	"github.com/moffa90/go-24cxx/bus"
	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/protocol"
)

// Device is a 24Cxx EEPROM reached through a Bus.
//
// Device is safe for concurrent use: every public call holds the device for
// its whole duration, so a multi-page write is never interleaved with another
// caller's transactions.
type Device struct {
	mu sync.Mutex

	bus     bus.Bus
	profile chip.Profile
	base    uint8
	config  Config

	// first fault recorded; never cleared
	fault *Error

	// read-modify-write page and outgoing frame; sized for the largest part
	page  [protocol.MaxPageSize]byte
	frame [protocol.MaxFrameSize]byte
}

// New creates a Device for a part of variant v wired with the given
// chip-select value. The bus is not owned by the device.
//
// An invalid chip-select value does not prevent construction: the returned
// device is already faulted with BadAddress and the same error is returned.
//
// Example:
//
//	dev, err := eeprom.New(b, 0, chip.T24C256,
//	    eeprom.WithLogger(eeprom.NewSlogLogger(slog.Default())),
//	)
func New(b bus.Bus, chipSelect uint8, v chip.Variant, opts ...Option) (*Device, error) {
	if b == nil {
		panic("bus cannot be nil")
	}
	if !v.Valid() {
		return nil, &Error{Code: ParamError, Op: "new", Err: fmt.Errorf("unknown chip variant %d", uint8(v))}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Device{
		bus:     b,
		profile: chip.ProfileFor(v),
		config:  cfg,
	}

	base, err := protocol.BaseAddress(d.profile, chipSelect)
	d.base = base
	if err != nil {
		return d, d.record(BadAddress, "new", 0, err)
	}

	d.logDebug("device ready",
		"chip", v.String(),
		"bus_addr", fmt.Sprintf("0x%02X", base),
		"page_size", d.profile.PageSize,
		"capacity", d.profile.Capacity,
	)

	return d, nil
}

// Size returns the nominal capacity in bytes.
func (d *Device) Size() uint32 {
	return d.profile.Capacity
}

// Name returns the part label, e.g. "24C256".
func (d *Device) Name() string {
	return d.profile.Variant.String()
}

// Variant returns the configured part.
func (d *Device) Variant() chip.Variant {
	return d.profile.Variant
}

// Profile returns the addressing profile of the configured part.
func (d *Device) Profile() chip.Profile {
	return d.profile
}

// BaseAddress returns the 7-bit base device address.
func (d *Device) BaseAddress() uint8 {
	return d.base
}

// Err returns the first fault recorded by the device, or nil.
func (d *Device) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fault == nil {
		return nil
	}
	return d.fault
}

// ErrorCode returns the code of the first fault, or NoError.
func (d *Device) ErrorCode() ErrorCode {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fault == nil {
		return NoError
	}
	return d.fault.Code
}

// record stores the first fault and returns it. Later faults are not
// recorded; the first one is returned instead.
func (d *Device) record(code ErrorCode, op string, address uint32, err error) error {
	if d.fault != nil {
		return d.fault
	}

	d.fault = &Error{Code: code, Op: op, Address: address, Err: err}
	d.logError("device faulted",
		"op", op,
		"address", fmt.Sprintf("0x%05X", address),
		"code", code.String(),
		"error", err,
	)
	return d.fault
}

// faulted returns the recorded fault, if any.
func (d *Device) faulted() error {
	if d.fault == nil {
		return nil
	}
	return d.fault
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(progress Progress) {
	if d.config.ProgressCallback != nil {
		d.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
