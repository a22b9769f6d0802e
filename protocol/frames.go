package protocol

import "fmt"

// AppendWordAddress appends the word address of r to dst.
func AppendWordAddress(dst []byte, r Resolution) []byte {
	return append(dst, r.WordAddressBytes()...)
}

// BuildAddressFrame constructs the frame that sets the device's internal
// address pointer ahead of a sequential read.
//
// Frame structure:
//
//	[WORD_ADDR_MSB][WORD_ADDR_LSB]   (two-byte parts)
//	[WORD_ADDR]                      (one-byte parts)
func BuildAddressFrame(r Resolution) []byte {
	return AppendWordAddress(make([]byte, 0, r.WordAddressWidth), r)
}

// BuildPageWriteFrame constructs a page write frame into dst, reusing its
// storage when large enough.
//
// Frame structure:
//
//	[WORD_ADDR(1-2)][DATA(page)]
//
// Returns an error if page is empty or larger than MaxPageSize.
func BuildPageWriteFrame(dst []byte, r Resolution, page []byte) ([]byte, error) {
	if len(page) == 0 || len(page) > MaxPageSize {
		return nil, fmt.Errorf("page must be 1-%d bytes, got %d", MaxPageSize, len(page))
	}

	frame := AppendWordAddress(dst[:0], r)
	frame = append(frame, page...)
	return frame, nil
}
