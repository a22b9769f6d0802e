package chip

// EffectiveCapacity returns the number of addressable bytes accepted by the
// bounds check. Parts flagged with CapacityQuirk report one byte less than
// their nominal capacity.
func (p Profile) EffectiveCapacity() uint32 {
	if p.CapacityQuirk {
		return p.Capacity - 1
	}
	return p.Capacity
}

// ReachableCapacity returns how many logical addresses, counted from zero,
// resolve to a device address inside the part's own block window.
//
// With the 255 and 65535 byte block strides the last bytes of the nominal
// range resolve to block index Blocks, which is the device address of the
// next part on the bus: logical 255 of a 24C02 goes to base+1 and logical
// 2040-2047 of a 24C16 go to 0x58.
func (p Profile) ReachableCapacity() uint32 {
	limit := p.EffectiveCapacity()
	if p.BlockStride == StrideNone {
		return limit
	}
	return min(limit, p.Blocks*p.BlockStride)
}

// InRange reports whether address lies within the effective capacity.
func (p Profile) InRange(address uint32) bool {
	return address < p.EffectiveCapacity()
}

// ValidateRange checks that the span [address, address+length) lies within the
// effective capacity. Both the first and the last byte are checked. A zero
// length span only checks address.
func (p Profile) ValidateRange(address, length uint32) error {
	if !p.InRange(address) {
		return &RangeError{Address: address, Length: length, Limit: p.EffectiveCapacity()}
	}
	if length == 0 {
		return nil
	}

	// computed in 64 bits so a huge length cannot wrap back into range
	last := uint64(address) + uint64(length) - 1
	if last >= uint64(p.EffectiveCapacity()) {
		return &RangeError{Address: address, Length: length, Limit: p.EffectiveCapacity()}
	}
	return nil
}
