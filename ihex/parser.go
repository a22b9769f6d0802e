package ihex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse parses an Intel HEX file from the given path.
//
// Example:
//
//	img, err := ihex.Parse("calibration.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes in %d segments\n", img.Size(), len(img.Segments))
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an Intel HEX image from any io.Reader.
// Blank lines are skipped. The image must end with an end of file record.
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)

	img := &Image{}
	var base uint32
	var eof bool
	records := 0

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}
		if eof {
			return nil, &RecordError{Line: lineNum, Err: fmt.Errorf("data after end of file record")}
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, &RecordError{Line: lineNum, Err: err}
		}
		records++

		switch rec.Type {
		case RecordData:
			img.append(base+uint32(rec.Address), rec.Data)

		case RecordEndOfFile:
			eof = true

		case RecordExtendedSegmentAddress:
			if len(rec.Data) != 2 {
				return nil, &RecordError{Line: lineNum, Err: fmt.Errorf("%s record needs 2 data bytes, got %d", rec.Type, len(rec.Data))}
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 4

		case RecordExtendedLinearAddress:
			if len(rec.Data) != 2 {
				return nil, &RecordError{Line: lineNum, Err: fmt.Errorf("%s record needs 2 data bytes, got %d", rec.Type, len(rec.Data))}
			}
			base = (uint32(rec.Data[0])<<8 | uint32(rec.Data[1])) << 16

		case RecordStartSegmentAddress, RecordStartLinearAddress:
			if len(rec.Data) != 4 {
				return nil, &RecordError{Line: lineNum, Err: fmt.Errorf("%s record needs 4 data bytes, got %d", rec.Type, len(rec.Data))}
			}

		default:
			return nil, &RecordError{Line: lineNum, Err: fmt.Errorf("unsupported record %s", rec.Type)}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if records == 0 {
		return nil, fmt.Errorf("no records found in file")
	}
	if !eof {
		return nil, fmt.Errorf("missing end of file record")
	}

	return img, nil
}
