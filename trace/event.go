package trace

import (
	"fmt"
	"strings"
	"time"
)

// Event is one recorded bus transaction.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the transaction started (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the traced bus (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Seq numbers the transactions of a session from 1.
	Seq uint64 `cbor:"3,keyasint"`

	// Op is the transaction direction.
	Op Op `cbor:"4,keyasint"`

	// Addr is the 7-bit device address.
	Addr uint8 `cbor:"5,keyasint"`

	// Data holds the bytes written, or the bytes read when Acked.
	Data []byte `cbor:"6,keyasint,omitempty"`

	// Length is the number of bytes requested by a read.
	Length int `cbor:"7,keyasint,omitempty"`

	// Stop is set when a write ended with a stop condition.
	Stop bool `cbor:"8,keyasint,omitempty"`

	// Acked is false when the transaction failed.
	Acked bool `cbor:"9,keyasint"`

	// Error is the failure message, if any.
	Error string `cbor:"10,keyasint,omitempty"`

	// Duration is the time spent in the underlying bus.
	Duration time.Duration `cbor:"11,keyasint,omitempty"`
}

// Op is the direction of a transaction.
type Op uint8

const (
	// OpWrite is a master write, including address-only polls.
	OpWrite Op = 0
	// OpRead is a master read.
	OpRead Op = 1
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpWrite:
		return "WRITE"
	case OpRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}

// String formats the event as a single line, e.g.
//
//	#12 WRITE 0x50 [00 10 ff] ack stop
func (e Event) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s 0x%02X", e.Seq, e.Op, e.Addr)

	switch {
	case len(e.Data) > 0:
		fmt.Fprintf(&b, " [% x]", e.Data)
	case e.Op == OpRead:
		fmt.Fprintf(&b, " (%d bytes)", e.Length)
	default:
		b.WriteString(" []")
	}

	if e.Acked {
		b.WriteString(" ack")
	} else {
		b.WriteString(" nack")
	}
	if e.Op == OpWrite && e.Stop {
		b.WriteString(" stop")
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " (%s)", e.Error)
	}
	return b.String()
}
