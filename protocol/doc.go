// Package protocol implements 24Cxx bus addressing.
//
// A 24Cxx transaction starts with a 7-bit device address of the form
// 0b1010xxx. The low three bits carry chip-select pins and, on parts larger
// than one word address can span, block-select bits. The device address is
// followed by a one- or two-byte word address (MSB first) and, for writes, up
// to one page of data:
//
//	Page write:      [DEV|W][WORD_ADDR(1-2)][DATA(page)]
//	Sequential read: [DEV|W][WORD_ADDR(1-2)] (no stop) [DEV|R][DATA(n)]
//
// # Address Translation
//
// Use BaseAddress once per device and Resolve for every chunk:
//
//	base, err := protocol.BaseAddress(profile, chipSelect)
//	r := protocol.Resolve(profile, base, 0x1234)
//	frame, err := protocol.BuildPageWriteFrame(buf, r, page)
//
// Resolve uses a block stride of 255 bytes on one-byte word address parts and
// 65535 bytes on the multi-block two-byte parts.
package protocol
