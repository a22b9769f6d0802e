// Package chip describes the 24Cxx serial EEPROM family.
//
// # Catalog
//
// Each supported part is identified by a Variant and described by an immutable
// Profile holding its page size, block count, capacity, word address width and
// chip-select rules:
//
//	p := chip.ProfileFor(chip.T24C64)
//	fmt.Println(p.PageSize, p.Capacity) // 32 8192
//
// Variants can be parsed from their labels, which is what configuration files use:
//
//	v, err := chip.ParseVariant("24c256")
//
// # Bounds
//
// Profile.ValidateRange checks a byte span against the part's effective capacity.
// The 24C1025 and M24M02 profiles carry a capacity quirk: their last nominal byte
// is rejected.
package chip
