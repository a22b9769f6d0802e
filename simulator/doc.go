// Package simulator provides an in-memory 24Cxx part that implements bus.Bus.
//
// A Chip stores its memory the way a real part wired with the given
// chip-select value does: block b answers at the base device address plus b,
// and a word address w reaches physical offset b<<8|w on one-byte word address
// parts or b<<16|w on two-byte ones. Page writes wrap within the physical
// page. Memory images saved with Save are therefore byte-compatible with a raw
// dump of a real part. It is used by the tests of this module and by eepromctl
// when no hardware bus is configured.
//
//	sim, _ := simulator.New(chip.T24C256, 0, simulator.WithBusyPolls(3))
//	dev, _ := eeprom.New(sim, 0, chip.T24C256)
//
// Every transaction is recorded and can be inspected with Transactions and
// PageWrites. WithFailure injects NACKs for selected transactions.
package simulator
