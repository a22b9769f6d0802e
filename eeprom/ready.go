package eeprom

import (
	"context"
	"fmt"
	"time"
)

// waitReady polls the device with address-only writes until it acknowledges.
// A 24Cxx part does not acknowledge its address while an internal write cycle
// is running. Polling stops after ReadyRetries+1 attempts with a Timeout fault.
func (d *Device) waitReady(ctx context.Context, op string, address uint32) error {
	attempts := d.config.ReadyRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = d.bus.Write(d.base, nil, true)
		if lastErr == nil {
			if attempt > 1 {
				d.logDebug("write cycle complete", "polls", attempt)
			}
			return nil
		}

		if attempt == attempts {
			break
		}

		if err := d.pause(ctx); err != nil {
			return fmt.Errorf("%s cancelled while waiting for write cycle: %w", op, err)
		}
	}

	return d.record(Timeout, op, address,
		fmt.Errorf("no acknowledge after %d polls: %w", attempts, lastErr))
}

// pause waits ReadyInterval or until ctx is done.
func (d *Device) pause(ctx context.Context) error {
	if d.config.ReadyInterval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d.config.ReadyInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
