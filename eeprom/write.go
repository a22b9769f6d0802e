package eeprom

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/protocol"
)

// Write stores data starting at the logical address, using page writes.
//
// The span is validated before any bus activity. Pages that are only partly
// covered by data are read first so that bytes outside the span keep their
// value (read-modify-write). Pages follow the part's physical layout: the
// offset within a page comes from the resolved word address and no page write
// crosses a block boundary. Pages are committed in increasing address order;
// when a page write fails, the pages before it stay written.
//
// Example:
//
//	err := dev.Write(ctx, 0x0100, []byte("hello"))
func (d *Device) Write(ctx context.Context, address uint32, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	total := len(data)

	return d.write(ctx, "write", address, data, func(written uint32) {
		d.reportProgress(Progress{
			Phase:        PhaseWriting,
			Address:      address + written,
			BytesWritten: int(written),
			Total:        total,
			Percentage:   float64(written) / float64(total) * 100,
			ElapsedTime:  time.Since(start),
		})
	})
}

// write is the paged write engine shared by every write operation.
// report, when not nil, is called after every committed page.
func (d *Device) write(ctx context.Context, op string, address uint32, data []byte, report func(written uint32)) error {
	if err := d.faulted(); err != nil {
		return err
	}

	if uint64(len(data)) > math.MaxUint32 {
		return d.record(OutOfRange, op, address, fmt.Errorf("length %d exceeds the address space", len(data)))
	}
	length := uint32(len(data))

	if err := d.profile.ValidateRange(address, length); err != nil {
		return d.record(OutOfRange, op, address, err)
	}
	if length == 0 {
		return nil
	}

	pageSize := d.profile.PageSize

	var written uint32
	for written < length {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s cancelled after %d bytes: %w", op, written, err)
		}

		chunkAddress := address + written
		r := protocol.Resolve(d.profile, d.base, chunkAddress)

		// the page is the physical one around the word address; a chunk
		// never leaves its page or its block
		pageOffset := r.Local % pageSize
		remaining := length - written
		n := min(pageSize-pageOffset, remaining)
		if stride := d.profile.BlockStride; stride != chip.StrideNone {
			n = min(n, stride-r.Local)
		}

		pageStart := chunkAddress - pageOffset
		r = protocol.Resolve(d.profile, d.base, pageStart)
		page := d.page[:pageSize]

		rmw := pageOffset != 0 || n < pageSize
		if rmw {
			if err := d.transfer(r, page); err != nil {
				return d.record(BusError, op, pageStart, err)
			}
		}

		copy(page[pageOffset:], data[written:written+n])

		frame, err := protocol.BuildPageWriteFrame(d.frame[:0], r, page)
		if err != nil {
			return d.record(ParamError, op, pageStart, err)
		}

		d.logDebug("page write",
			"page", fmt.Sprintf("0x%05X", pageStart),
			"bus_addr", fmt.Sprintf("0x%02X", r.BusAddress),
			"offset", pageOffset,
			"bytes", n,
			"read_modify_write", rmw,
		)

		if err := d.bus.Write(r.BusAddress, frame, true); err != nil {
			return d.record(BusError, op, pageStart, err)
		}

		if err := d.waitReady(ctx, op, pageStart); err != nil {
			return err
		}

		written += n
		if report != nil {
			report(written)
		}
	}

	return nil
}
