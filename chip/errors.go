package chip

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is matched by every RangeError.
var ErrOutOfRange = errors.New("data address out of range")

// RangeError indicates that a requested span is outside the addressable capacity.
type RangeError struct {
	Address uint32
	Length  uint32
	Limit   uint32
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("address 0x%05X (+%d bytes) is out of range: valid range is 0x00000-0x%05X",
		e.Address, e.Length, e.Limit-1)
}

// Is reports whether target is ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
