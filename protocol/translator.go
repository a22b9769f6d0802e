package protocol

import "github.com/moffa90/go-24cxx/chip"

// BaseAddress computes the 7-bit base device address for a part wired with
// the given chip-select value. Chip-select bits that the part reuses for block
// selection are cleared.
//
// Returns a *ChipSelectError when chipSelect exceeds the part's range.
func BaseAddress(p chip.Profile, chipSelect uint8) (uint8, error) {
	if chipSelect > p.ChipSelectMax {
		return DeviceTypeIdentifier, &ChipSelectError{
			Part:       p.Variant.String(),
			ChipSelect: chipSelect,
			Max:        p.ChipSelectMax,
		}
	}

	cs := (chipSelect & p.ChipSelectMask) << p.ChipSelectShift
	return (DeviceTypeIdentifier | cs) & DeviceAddressMask, nil
}

// Resolve maps a logical address to the device address, block and word
// address that reach it.
//
// Parts with a block stride fold the block index into the low bits of the
// device address; the remainder becomes the in-block word address:
//
//	block = address / stride
//	local = address % stride
//	bus   = base | block
//
// Single-block parts use the logical address unchanged.
func Resolve(p chip.Profile, base uint8, address uint32) Resolution {
	var block, local uint32
	if p.BlockStride != chip.StrideNone {
		block = address / p.BlockStride
		local = address % p.BlockStride
	} else {
		local = address
	}

	r := Resolution{
		BusAddress:       (base | uint8(block)) & DeviceAddressMask,
		Block:            block,
		Local:            local,
		WordAddressWidth: p.WordAddressWidth,
	}
	putWordAddress(r.WordAddress[:r.WordAddressWidth], local)

	return r
}

// putWordAddress writes address MSB first into dst.
func putWordAddress(dst []byte, address uint32) {
	for i := range dst {
		dst[i] = byte(address >> (8 * (len(dst) - i - 1)))
	}
}
