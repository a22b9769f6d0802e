package eeprom

import (
	"context"
	"fmt"
	"math"

	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/protocol"
)

// Read fills buf with the bytes stored from the logical address on, using one
// sequential read per block the span touches.
//
// Example:
//
//	buf := make([]byte, 64)
//	err := dev.Read(ctx, 0x0100, buf)
func (d *Device) Read(ctx context.Context, address uint32, buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.read(ctx, "read", address, buf)
}

// ReadCurrent reads one byte at the device's internal address pointer, which
// sits after the last byte accessed by the previous operation. No word
// address is sent.
func (d *Device) ReadCurrent(ctx context.Context) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.faulted(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("read current cancelled: %w", err)
	}

	var b [1]byte
	if err := d.bus.Read(d.base, b[:]); err != nil {
		return 0, d.record(BusError, "read current", 0, err)
	}
	return b[0], nil
}

// read is the sequential read engine shared by every read operation.
func (d *Device) read(ctx context.Context, op string, address uint32, buf []byte) error {
	if err := d.faulted(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s cancelled: %w", op, err)
	}

	if uint64(len(buf)) > math.MaxUint32 {
		return d.record(OutOfRange, op, address, fmt.Errorf("length %d exceeds the address space", len(buf)))
	}
	if err := d.profile.ValidateRange(address, uint32(len(buf))); err != nil {
		return d.record(OutOfRange, op, address, err)
	}
	if len(buf) == 0 {
		return nil
	}

	// one sequential read per block; the part's address pointer does not
	// carry over into the next block's device address
	for done := uint32(0); done < uint32(len(buf)); {
		chunkAddress := address + done
		r := protocol.Resolve(d.profile, d.base, chunkAddress)

		n := uint32(len(buf)) - done
		if stride := d.profile.BlockStride; stride != chip.StrideNone {
			n = min(n, stride-r.Local)
		}

		if err := d.transfer(r, buf[done:done+n]); err != nil {
			return d.record(BusError, op, chunkAddress, err)
		}

		d.logDebug("sequential read",
			"address", fmt.Sprintf("0x%05X", chunkAddress),
			"bus_addr", fmt.Sprintf("0x%02X", r.BusAddress),
			"bytes", n,
		)
		done += n
	}
	return nil
}

// transfer sets the device address pointer to r without a stop condition and
// reads len(buf) bytes with a repeated start.
func (d *Device) transfer(r protocol.Resolution, buf []byte) error {
	if err := d.bus.Write(r.BusAddress, protocol.BuildAddressFrame(r), false); err != nil {
		return err
	}
	return d.bus.Read(r.BusAddress, buf)
}
