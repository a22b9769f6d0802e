package ihex

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Constants for Intel HEX record parsing.
const (
	// MinimumRecordLength is the length of an empty record in hex characters, without the colon
	MinimumRecordLength = 10

	// RecordOverhead is the number of bytes around the data (count, address, type, checksum)
	RecordOverhead = 5

	// DefaultRecordSize is the number of data bytes per record written by Encode
	DefaultRecordSize = 16
)

// RecordType identifies an Intel HEX record.
type RecordType byte

// Record types.
const (
	RecordData                   RecordType = 0x00
	RecordEndOfFile              RecordType = 0x01
	RecordExtendedSegmentAddress RecordType = 0x02
	RecordStartSegmentAddress    RecordType = 0x03
	RecordExtendedLinearAddress  RecordType = 0x04
	RecordStartLinearAddress     RecordType = 0x05
)

// String returns the record type name.
func (t RecordType) String() string {
	switch t {
	case RecordData:
		return "data"
	case RecordEndOfFile:
		return "end of file"
	case RecordExtendedSegmentAddress:
		return "extended segment address"
	case RecordStartSegmentAddress:
		return "start segment address"
	case RecordExtendedLinearAddress:
		return "extended linear address"
	case RecordStartLinearAddress:
		return "start linear address"
	default:
		return fmt.Sprintf("type 0x%02X", byte(t))
	}
}

// Record is one decoded line.
type Record struct {
	Type     RecordType
	Address  uint16
	Data     []byte
	Checksum byte
}

// Checksum computes the record checksum: the two's complement of the sum of
// every byte from the byte count through the data.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return ^sum + 1
}

// parseRecord decodes one line.
func parseRecord(line string) (*Record, error) {
	if line[0] != ':' {
		return nil, fmt.Errorf("record must start with ':'")
	}
	body := line[1:]

	if len(body) < MinimumRecordLength {
		return nil, fmt.Errorf("record too short: got %d characters, minimum is %d", len(body), MinimumRecordLength)
	}

	data, err := hex.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	count := int(data[0])
	expectedLen := count + RecordOverhead
	if len(data) != expectedLen {
		return nil, fmt.Errorf("data length mismatch: got %d bytes, expected %d (count=%d + overhead=%d)",
			len(data), expectedLen, count, RecordOverhead)
	}

	checksum := data[len(data)-1]
	if calculated := Checksum(data[:len(data)-1]); checksum != calculated {
		return nil, fmt.Errorf("checksum mismatch: got 0x%02X, expected 0x%02X", checksum, calculated)
	}

	rec := &Record{
		Type:     RecordType(data[3]),
		Address:  uint16(data[1])<<8 | uint16(data[2]),
		Data:     make([]byte, count),
		Checksum: checksum,
	}
	copy(rec.Data, data[4:4+count])

	return rec, nil
}

// formatRecord encodes a record as one line without the line terminator.
func formatRecord(t RecordType, address uint16, data []byte) string {
	raw := make([]byte, 0, len(data)+RecordOverhead)
	raw = append(raw, byte(len(data)), byte(address>>8), byte(address), byte(t))
	raw = append(raw, data...)
	raw = append(raw, Checksum(raw))
	return ":" + strings.ToUpper(hex.EncodeToString(raw))
}
