package protocol

// Bus addressing constants for the 24Cxx family.
const (
	// DeviceTypeIdentifier is the fixed 7-bit device type code (0b1010xxx) shared by all 24Cxx parts
	DeviceTypeIdentifier = 0x50

	// DeviceAddressMask keeps a device address within 7 bits
	DeviceAddressMask = 0x7F

	// MaxPageSize is the largest page size across all supported parts (M24M02)
	MaxPageSize = 256

	// MaxWordAddressWidth is the largest number of word address bytes sent per transaction
	MaxWordAddressWidth = 2

	// MaxFrameSize is the largest page write frame: word address followed by a full page
	MaxFrameSize = MaxWordAddressWidth + MaxPageSize
)
