// Command eepromctl reads, writes and inspects 24Cxx EEPROMs over a Linux I2C
// bus or an in-memory simulator.
//
// Usage:
//
//	eepromctl --bus /dev/i2c-1 --chip 24C256 info
//	eepromctl --bus sim --image mem.bin --chip 24C02 write 0x10 deadbeef
//	eepromctl --config eeprom.yaml dump --out backup.hex
//	eepromctl --config eeprom.yaml shell
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
