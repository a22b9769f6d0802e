package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moffa90/go-24cxx/eeprom"
)

const dumpWidth = 16

// hexDump writes data as rows of 16 bytes labelled with their logical address.
func hexDump(w io.Writer, address uint32, data []byte) {
	for off := 0; off < len(data); off += dumpWidth {
		row := data[off:min(off+dumpWidth, len(data))]

		var ascii strings.Builder
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}

		fmt.Fprintf(w, "%05X  %-*s |%s|\n", address+uint32(off), dumpWidth*3-1, fmt.Sprintf("% x", row), ascii.String())
	}
}

// parseHexBytes decodes "deadbeef", "de ad be ef" or "de:ad:be:ef".
func parseHexBytes(s string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "", "0x", "", "0X", "").Replace(s)
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex bytes %q: %w", s, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no bytes in %q", s)
	}
	return data, nil
}

// progressPrinter returns a callback drawing a single updating status line.
func progressPrinter(w io.Writer) eeprom.ProgressCallback {
	return func(p eeprom.Progress) {
		if p.Phase == eeprom.PhaseComplete {
			fmt.Fprintf(w, "\r[%s] %d bytes in %s\n", p.Phase, p.BytesWritten, p.ElapsedTime.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(w, "\r[%s] %5.1f%% (%d/%d bytes)", p.Phase, p.Percentage, p.BytesWritten, p.Total)
	}
}
