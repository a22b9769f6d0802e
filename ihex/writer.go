package ihex

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Encode writes img as Intel HEX records of DefaultRecordSize data bytes.
// Extended linear address records are emitted whenever the upper 16 address
// bits change, and no record crosses a 64 KiB boundary.
func Encode(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	var upper uint32
	for _, seg := range img.Segments {
		for off := 0; off < len(seg.Data); {
			address := seg.Address + uint32(off)

			if address>>16 != upper {
				upper = address >> 16
				ext := []byte{byte(upper >> 8), byte(upper)}
				if _, err := fmt.Fprintln(bw, formatRecord(RecordExtendedLinearAddress, 0, ext)); err != nil {
					return err
				}
			}

			n := min(DefaultRecordSize, len(seg.Data)-off, int(0x10000-address&0xFFFF))
			if _, err := fmt.Fprintln(bw, formatRecord(RecordData, uint16(address), seg.Data[off:off+n])); err != nil {
				return err
			}
			off += n
		}
	}

	if _, err := fmt.Fprintln(bw, formatRecord(RecordEndOfFile, 0, nil)); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile encodes img to the file at path.
func WriteFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write image: %w", err)
	}
	return f.Close()
}
