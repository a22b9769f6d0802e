package bus

import (
	"errors"
	"fmt"
)

// Bus is a two-wire bus master able to address 7-bit devices.
//
// A nil error means the addressed device acknowledged every byte. Any error is
// treated as a missing acknowledge by the callers in this module.
type Bus interface {
	// Write sends p to the device at addr. When stop is false the transaction
	// is left open so that the next Read issues a repeated start. A zero-length
	// write only addresses the device.
	Write(addr uint8, p []byte, stop bool) error

	// Read fills p from the device at addr and ends with a stop condition.
	Read(addr uint8, p []byte) error
}

// ErrNack is matched by every NackError.
var ErrNack = errors.New("i2c error (nack)")

// ErrRepeatedStart is returned by a Read whose device address differs from
// the preceding Write without a stop condition.
var ErrRepeatedStart = errors.New("repeated start to a different device address")

// NackError indicates that a device did not acknowledge a transaction.
type NackError struct {
	// Op is "write" or "read"
	Op string

	// Addr is the 7-bit device address
	Addr uint8

	// Err is the transport error, if any
	Err error
}

func (e *NackError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s 0x%02X: device did not acknowledge: %v", e.Op, e.Addr, e.Err)
	}
	return fmt.Sprintf("%s 0x%02X: device did not acknowledge", e.Op, e.Addr)
}

// Unwrap returns the transport error.
func (e *NackError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNack.
func (e *NackError) Is(target error) bool {
	return target == ErrNack
}
