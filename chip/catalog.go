package chip

import (
	"fmt"
	"strings"
)

// Variant identifies a supported EEPROM part.
type Variant uint8

// Supported variants, ordered by capacity.
const (
	T24C01 Variant = iota
	T24C02
	T24C04
	T24C08
	T24C16
	T24C32
	T24C64
	T24C128
	T24C256
	T24C512
	T24C1024
	T24C1025
	M24M02

	variantCount
)

// Block strides used to fold a block-select value into the device address.
const (
	// StrideNone means the part is addressed as a single block.
	StrideNone = 0

	// StrideSmall is the block stride of the one-byte word address family.
	StrideSmall = 0xFF

	// StrideLarge is the block stride of the multi-block two-byte word address family.
	StrideLarge = 0xFFFF
)

// Profile holds the addressing parameters of a variant.
// Profiles are values; the table below is never modified.
type Profile struct {
	// Variant is the part this profile describes
	Variant Variant

	// PageSize is the number of bytes committed in one write cycle
	PageSize uint32

	// Blocks is the number of memory blocks selected through device address bits
	Blocks uint32

	// Capacity is the nominal size in bytes
	Capacity uint32

	// WordAddressWidth is the number of word address bytes sent per transaction (1 or 2)
	WordAddressWidth int

	// BlockStride is the logical address span of one block (StrideNone, StrideSmall or StrideLarge)
	BlockStride uint32

	// ChipSelectMax is the highest chip-select value accepted by the part
	ChipSelectMax uint8

	// ChipSelectMask clears chip-select bits that are taken over by block-select bits
	ChipSelectMask uint8

	// ChipSelectShift positions the chip-select value within the 7-bit device address
	ChipSelectShift uint8

	// CapacityQuirk marks parts whose last nominal byte is rejected by the bounds check
	CapacityQuirk bool
}

var names = [variantCount]string{
	"24C01", "24C02", "24C04", "24C08", "24C16", "24C32",
	"24C64", "24C128", "24C256", "24C512", "24C1024", "24C1025", "M24M02",
}

var profiles = [variantCount]Profile{
	T24C01:   {PageSize: 8, Blocks: 1, Capacity: 128, WordAddressWidth: 1, BlockStride: StrideSmall, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C02:   {PageSize: 8, Blocks: 1, Capacity: 256, WordAddressWidth: 1, BlockStride: StrideSmall, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C04:   {PageSize: 16, Blocks: 2, Capacity: 512, WordAddressWidth: 1, BlockStride: StrideSmall, ChipSelectMax: 7, ChipSelectMask: 0x06},
	T24C08:   {PageSize: 16, Blocks: 4, Capacity: 1024, WordAddressWidth: 1, BlockStride: StrideSmall, ChipSelectMax: 7, ChipSelectMask: 0x04},
	T24C16:   {PageSize: 16, Blocks: 8, Capacity: 2048, WordAddressWidth: 1, BlockStride: StrideSmall, ChipSelectMax: 0xFF, ChipSelectMask: 0x00},
	T24C32:   {PageSize: 32, Blocks: 1, Capacity: 4096, WordAddressWidth: 2, BlockStride: StrideNone, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C64:   {PageSize: 32, Blocks: 1, Capacity: 8192, WordAddressWidth: 2, BlockStride: StrideNone, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C128:  {PageSize: 64, Blocks: 1, Capacity: 16384, WordAddressWidth: 2, BlockStride: StrideNone, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C256:  {PageSize: 64, Blocks: 1, Capacity: 32768, WordAddressWidth: 2, BlockStride: StrideNone, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C512:  {PageSize: 128, Blocks: 1, Capacity: 65536, WordAddressWidth: 2, BlockStride: StrideNone, ChipSelectMax: 7, ChipSelectMask: 0x07},
	T24C1024: {PageSize: 128, Blocks: 2, Capacity: 131072, WordAddressWidth: 2, BlockStride: StrideLarge, ChipSelectMax: 3, ChipSelectMask: 0x02},
	T24C1025: {PageSize: 128, Blocks: 2, Capacity: 131072, WordAddressWidth: 2, BlockStride: StrideLarge, ChipSelectMax: 3, ChipSelectMask: 0x03, CapacityQuirk: true},
	M24M02:   {PageSize: 256, Blocks: 4, Capacity: 262144, WordAddressWidth: 2, BlockStride: StrideLarge, ChipSelectMax: 1, ChipSelectMask: 0x01, ChipSelectShift: 2, CapacityQuirk: true},
}

// ProfileFor returns the addressing profile of v.
// It panics if v is not one of the declared variants.
func ProfileFor(v Variant) Profile {
	if !v.Valid() {
		panic(fmt.Sprintf("chip: unknown variant %d", v))
	}
	p := profiles[v]
	p.Variant = v
	return p
}

// Variants returns every supported variant in capacity order.
func Variants() []Variant {
	vs := make([]Variant, 0, variantCount)
	for v := Variant(0); v < variantCount; v++ {
		vs = append(vs, v)
	}
	return vs
}

// Valid reports whether v is a declared variant.
func (v Variant) Valid() bool {
	return v < variantCount
}

// String returns the part label, e.g. "24C64".
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return names[v]
}

// ParseVariant looks up a variant by label. Matching is case-insensitive and
// accepts an optional "T" prefix, so "24c64", "T24C64" and "24C64" are equivalent.
func ParseVariant(name string) (Variant, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "T")
	for v := Variant(0); v < variantCount; v++ {
		if names[v] == n {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown chip variant %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("unknown chip variant %d", uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
