package eeprom

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a device fault. ErrorCode implements error so codes can
// be used directly with errors.Is:
//
//	if errors.Is(err, eeprom.OutOfRange) { ... }
type ErrorCode uint8

// Fault codes. A device starts in NoError and keeps the first other code it
// records for the rest of its life.
const (
	NoError ErrorCode = iota
	BadAddress
	BusError
	ParamError
	OutOfRange
	AllocationError
	Timeout
)

// String returns the human-readable message for the code.
func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "no error"
	case BadAddress:
		return "bad chip address"
	case BusError:
		return "I2C error (nack)"
	case ParamError:
		return "invalid parameter"
	case OutOfRange:
		return "data address out of range"
	case AllocationError:
		return "memory allocation error"
	case Timeout:
		return "device not ready (timeout)"
	default:
		return fmt.Sprintf("unknown error code %d", uint8(c))
	}
}

func (c ErrorCode) Error() string {
	return c.String()
}

// Error is a fault recorded by a Device.
type Error struct {
	// Code classifies the fault
	Code ErrorCode

	// Op is the operation that failed, e.g. "write" or "read uint16"
	Op string

	// Address is the logical address the operation was working on
	Address uint32

	// Err is the underlying error, if any
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s 0x%05X failed: %s: %v", e.Op, e.Address, e.Code, e.Err)
	}
	return fmt.Sprintf("%s 0x%05X failed: %s", e.Op, e.Address, e.Code)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrorCode of e.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// IsFault returns true if err carries an eeprom fault.
func IsFault(err error) bool {
	var fault *Error
	return errors.As(err, &fault)
}
