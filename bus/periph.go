package bus

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// DefaultFrequency is the bus clock used by OpenPeriph (fast mode).
const DefaultFrequency = 400 * physic.KiloHertz

// Periph adapts a periph.io i2c.Bus to Bus.
//
// periph.io issues a write followed by a repeated-start read as a single Tx
// call, so a Write without stop is held back and sent together with the
// following Read to the same address.
type Periph struct {
	bus    i2c.Bus
	closer io.Closer

	pending     []byte
	pendingAddr uint8
	hasPending  bool
}

// NewPeriph wraps an already opened periph.io bus.
func NewPeriph(b i2c.Bus) *Periph {
	if b == nil {
		panic("bus cannot be nil")
	}
	return &Periph{bus: b}
}

// OpenPeriph initializes the periph.io host drivers and opens the named bus,
// e.g. "/dev/i2c-1" or "1". An empty name opens the first bus found.
func OpenPeriph(name string) (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bc, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}

	if err := bc.SetSpeed(DefaultFrequency); err != nil {
		_ = bc.Close()
		return nil, fmt.Errorf("set i2c speed: %w", err)
	}

	p := NewPeriph(bc)
	p.closer = bc
	return p, nil
}

// Write implements Bus.
func (p *Periph) Write(addr uint8, data []byte, stop bool) error {
	if !stop {
		p.pending = append(p.pending[:0], data...)
		p.pendingAddr = addr
		p.hasPending = true
		return nil
	}
	p.hasPending = false

	if len(data) == 0 {
		// not every adapter accepts an empty transaction; a one byte read
		// is acknowledged under the same conditions
		var ack [1]byte
		return p.tx("write", addr, nil, ack[:])
	}
	return p.tx("write", addr, data, nil)
}

// Read implements Bus.
func (p *Periph) Read(addr uint8, data []byte) error {
	var w []byte
	if p.hasPending {
		p.hasPending = false
		if p.pendingAddr != addr {
			return fmt.Errorf("read 0x%02X after address write to 0x%02X: %w", addr, p.pendingAddr, ErrRepeatedStart)
		}
		w = p.pending
	}

	return p.tx("read", addr, w, data)
}

// Close releases the underlying bus when it was opened by OpenPeriph.
func (p *Periph) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// String returns the underlying bus name.
func (p *Periph) String() string {
	return p.bus.String()
}

func (p *Periph) tx(op string, addr uint8, w, r []byte) error {
	if err := p.bus.Tx(uint16(addr), w, r); err != nil {
		return &NackError{Op: op, Addr: addr, Err: err}
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ Bus = (*Periph)(nil)
