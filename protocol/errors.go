package protocol

import (
	"errors"
	"fmt"
)

// ErrBadAddress is matched by every ChipSelectError.
var ErrBadAddress = errors.New("bad chip address")

// ChipSelectError indicates that a chip-select value is not valid for the part.
type ChipSelectError struct {
	// Part is the chip label, e.g. "24C1025"
	Part string

	// ChipSelect is the rejected value
	ChipSelect uint8

	// Max is the highest value the part accepts
	Max uint8
}

func (e *ChipSelectError) Error() string {
	return fmt.Sprintf("chip select %d is invalid for %s: valid range is 0-%d",
		e.ChipSelect, e.Part, e.Max)
}

// Is reports whether target is ErrBadAddress.
func (e *ChipSelectError) Is(target error) bool {
	return target == ErrBadAddress
}
