package ihex

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/eeprom"
)

// DumpChunk is the number of bytes read per sequential read by Dump.
const DumpChunk = 4096

// Target is the part of *eeprom.Device used to transfer images.
type Target interface {
	Profile() chip.Profile
	Write(ctx context.Context, address uint32, data []byte) error
	Read(ctx context.Context, address uint32, buf []byte) error
}

type programConfig struct {
	verify   bool
	progress eeprom.ProgressCallback
}

// Option configures Program.
type Option func(*programConfig)

// WithVerify reads every segment back after writing it.
func WithVerify() Option {
	return func(c *programConfig) {
		c.verify = true
	}
}

// WithProgress sets a callback reporting progress after every segment.
func WithProgress(callback eeprom.ProgressCallback) Option {
	return func(c *programConfig) {
		c.progress = callback
	}
}

// Program writes every segment of img to dev.
//
// All segments are checked against the addressable range of the part before
// the first write.
//
// Example:
//
//	img, _ := ihex.Parse("calibration.hex")
//	err := ihex.Program(ctx, dev, img, ihex.WithVerify())
func Program(ctx context.Context, dev Target, img *Image, opts ...Option) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}

	cfg := programConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	profile := dev.Profile()
	for i, seg := range img.Segments {
		if err := profile.ValidateRange(seg.Address, uint32(len(seg.Data))); err != nil {
			return fmt.Errorf("segment %d at 0x%05X: %w", i, seg.Address, err)
		}
	}

	start := time.Now()
	total := img.Size()
	report := func(phase string, address uint32, written int) {
		if cfg.progress == nil {
			return
		}
		pct := 100.0
		if total > 0 {
			pct = float64(written) / float64(total) * 100
		}
		cfg.progress(eeprom.Progress{
			Phase:        phase,
			Address:      address,
			BytesWritten: written,
			Total:        total,
			Percentage:   pct,
			ElapsedTime:  time.Since(start),
		})
	}

	written := 0
	for i, seg := range img.Segments {
		if err := dev.Write(ctx, seg.Address, seg.Data); err != nil {
			return fmt.Errorf("program segment %d at 0x%05X: %w", i, seg.Address, err)
		}
		written += len(seg.Data)
		report(eeprom.PhaseWriting, seg.End(), written)
	}

	if cfg.verify {
		for i, seg := range img.Segments {
			if err := verifySegment(ctx, dev, seg); err != nil {
				return fmt.Errorf("verify segment %d: %w", i, err)
			}
			report(eeprom.PhaseVerifying, seg.End(), written)
		}
	}

	report(eeprom.PhaseComplete, 0, written)
	return nil
}

func verifySegment(ctx context.Context, dev Target, seg *Segment) error {
	got := make([]byte, len(seg.Data))
	if err := dev.Read(ctx, seg.Address, got); err != nil {
		return err
	}
	if bytes.Equal(got, seg.Data) {
		return nil
	}
	for i := range got {
		if got[i] != seg.Data[i] {
			return &VerifyError{Address: seg.Address + uint32(i), Expected: seg.Data[i], Actual: got[i]}
		}
	}
	return nil
}

// Dump reads every logical address that resolves inside dev's own block
// window into a single-segment image.
func Dump(ctx context.Context, dev Target) (*Image, error) {
	return DumpRange(ctx, dev, 0, dev.Profile().ReachableCapacity())
}

// DumpRange reads length bytes from address on into a single-segment image.
func DumpRange(ctx context.Context, dev Target, address, length uint32) (*Image, error) {
	if err := dev.Profile().ValidateRange(address, length); err != nil {
		return nil, err
	}

	data := make([]byte, length)
	for off := uint32(0); off < length; off += DumpChunk {
		n := min(DumpChunk, length-off)
		if err := dev.Read(ctx, address+off, data[off:off+n]); err != nil {
			return nil, fmt.Errorf("dump at 0x%05X: %w", address+off, err)
		}
	}

	img := &Image{}
	img.append(address, data)
	return img, nil
}
