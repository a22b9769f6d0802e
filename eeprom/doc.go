// Package eeprom provides a high-level API for 24Cxx serial EEPROMs.
//
// # Overview
//
// A Device presents the part as a flat range of logical byte addresses and
// turns every call into the bus transactions the part expects:
//   - Device address with chip-select and block-select bits folded in
//   - One- or two-byte word address depending on the part
//   - Page writes split on the physical page and block boundaries, with
//     read-modify-write for partial pages
//   - Sequential reads split at block boundaries
//   - Acknowledge polling until each internal write cycle completes
//
// # Basic Usage
//
//	// User provides the two-wire bus (bus.Bus)
//	b, err := bus.OpenPeriph("/dev/i2c-1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	dev, err := eeprom.New(b, 0, chip.T24C256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := dev.Write(ctx, 0x0100, []byte("hello")); err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := make([]byte, 5)
//	err = dev.Read(ctx, 0x0100, buf)
//
// # Scalar Values
//
// Fixed-width helpers store numbers in the host byte order:
//
//	err := dev.WriteInt32(ctx, 0x10, -42)
//	v, err := dev.ReadFloat32(ctx, 0x20)
//
// WriteValue and ReadValue accept any fixed-size value understood by
// encoding/binary.
//
// # Configuration Options
//
//	dev, err := eeprom.New(b, 0, chip.T24C512,
//	    eeprom.WithLogger(eeprom.NewSlogLogger(slog.Default())),
//	    eeprom.WithProgressCallback(progressFunc),
//	    eeprom.WithReadyRetries(2000),
//	    eeprom.WithReadyInterval(50*time.Microsecond),
//	    eeprom.WithMaxTransfer(8192),
//	)
//
// # Error Handling
//
// Every operation returns an error. A Device keeps the first fault it hits
// and refuses any further bus activity: all later calls return that same
// fault. Create a new Device to resume after a fault.
//
// Faults are *Error values classified by an ErrorCode:
//   - BadAddress: chip-select value invalid for the part (reported by New)
//   - OutOfRange: address span outside the part
//   - BusError: the part did not acknowledge a transaction
//   - Timeout: the part stayed busy after a page write
//   - ParamError: a value without fixed size was passed to WriteValue/ReadValue
//   - AllocationError: a WriteValue/ReadValue scratch buffer would exceed MaxTransfer
//
// ErrorCode implements error, so errors.Is(err, eeprom.OutOfRange) works.
// Context cancellation stops a call between pages and is returned without
// faulting the device.
package eeprom
