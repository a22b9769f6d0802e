package eeprom

import (
	"context"
	"time"
)

// clearStep is the number of zero bytes written per step.
const clearStep = 4

// Clear writes zero over the whole addressable range, four bytes at a time.
//
// The range ends at Profile.ReachableCapacity: logical addresses whose block
// index lies past the part's own device addresses belong to another part on
// the bus and are never written. Physical words that no logical address
// reaches, such as word 0xFF of each block on the one-byte parts, keep their
// value.
func (d *Device) Clear(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "clear"
	if err := d.faulted(); err != nil {
		return err
	}

	limit := d.profile.ReachableCapacity()
	start := time.Now()
	var zero [clearStep]byte

	for address := uint32(0); address < limit; address += clearStep {
		n := min(uint32(clearStep), limit-address)
		if err := d.write(ctx, op, address, zero[:n], nil); err != nil {
			return err
		}

		done := address + n
		if done%d.profile.PageSize == 0 || done == limit {
			d.reportProgress(Progress{
				Phase:        PhaseClearing,
				Address:      done,
				BytesWritten: int(done),
				Total:        int(limit),
				Percentage:   float64(done) / float64(limit) * 100,
				ElapsedTime:  time.Since(start),
			})
		}
	}

	d.reportProgress(Progress{
		Phase:        PhaseComplete,
		Address:      limit,
		BytesWritten: int(limit),
		Total:        int(limit),
		Percentage:   100,
		ElapsedTime:  time.Since(start),
	})
	d.logInfo("clear complete",
		"chip", d.Name(),
		"bytes", limit,
		"elapsed", time.Since(start).String(),
	)

	return nil
}
