// Package ihex reads and writes Intel HEX images and transfers them to and
// from an EEPROM.
//
// # Intel HEX Format
//
// Every line is one record, hex-encoded after a leading colon:
//
//	:[ByteCount(2)][Address(4)][Type(2)][Data(2*ByteCount)][Checksum(2)]
//
// Example record:
//
//	:0400000001020304F2
//	  04 = byte count
//	  0000 = address (big-endian)
//	  00 = data record
//	  01020304 = data
//	  F2 = two's complement of the sum of all preceding bytes
//
// Supported record types are data (00), end of file (01), extended segment
// address (02), start segment address (03), extended linear address (04) and
// start linear address (05). Start addresses are validated and ignored.
//
// # Usage
//
// Parse an image and write it to a device:
//
//	img, err := ihex.Parse("calibration.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = ihex.Program(ctx, dev, img, ihex.WithVerify())
//
// Dump a device to a file:
//
//	img, err := ihex.Dump(ctx, dev)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = ihex.WriteFile("backup.hex", img)
package ihex
