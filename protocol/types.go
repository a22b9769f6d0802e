package protocol

// Resolution is the physical addressing computed for one logical address.
// It is recomputed for every chunk and never stored.
type Resolution struct {
	// BusAddress is the 7-bit device address with block-select bits folded in
	BusAddress uint8

	// Block is the memory block selected for the logical address
	Block uint32

	// Local is the address within the selected block
	Local uint32

	// WordAddress holds the word address bytes, MSB first; only the first
	// WordAddressWidth bytes are meaningful
	WordAddress [MaxWordAddressWidth]byte

	// WordAddressWidth is the number of valid bytes in WordAddress (1 or 2)
	WordAddressWidth int
}

// WordAddressBytes returns the word address bytes to transmit.
func (r Resolution) WordAddressBytes() []byte {
	return r.WordAddress[:r.WordAddressWidth]
}
