package ihex

// Image is a parsed Intel HEX file.
type Image struct {
	// Segments holds runs of contiguous data in file order
	Segments []*Segment
}

// Segment is a run of contiguous bytes starting at Address.
type Segment struct {
	// Address is the absolute address of the first byte
	Address uint32

	// Data is the segment content
	Data []byte
}

// End returns the address following the last byte of the segment.
func (s *Segment) End() uint32 {
	return s.Address + uint32(len(s.Data))
}

// Size returns the number of data bytes in the image.
func (img *Image) Size() int {
	n := 0
	for _, s := range img.Segments {
		n += len(s.Data)
	}
	return n
}

// append adds data at address, extending the last segment when contiguous.
func (img *Image) append(address uint32, data []byte) {
	if len(data) == 0 {
		return
	}
	if n := len(img.Segments); n > 0 {
		last := img.Segments[n-1]
		if last.End() == address {
			last.Data = append(last.Data, data...)
			return
		}
	}
	img.Segments = append(img.Segments, &Segment{
		Address: address,
		Data:    append([]byte(nil), data...),
	})
}
