package ihex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/eeprom"
	"github.com/moffa90/go-24cxx/simulator"
)

func newDevice(t *testing.T, v chip.Variant) (*eeprom.Device, *simulator.Chip) {
	t.Helper()

	sim, err := simulator.New(v, 0)
	require.NoError(t, err)
	dev, err := eeprom.New(sim, 0, v, eeprom.WithReadyInterval(0))
	require.NoError(t, err)
	return dev, sim
}

// forgetfulTarget accepts writes and reads back zeros.
type forgetfulTarget struct {
	profile chip.Profile
}

func (f *forgetfulTarget) Profile() chip.Profile { return f.profile }

func (f *forgetfulTarget) Write(context.Context, uint32, []byte) error { return nil }

func (f *forgetfulTarget) Read(_ context.Context, _ uint32, buf []byte) error {
	clear(buf)
	return nil
}

func TestProgram(t *testing.T) {
	ctx := context.Background()
	dev, sim := newDevice(t, chip.T24C64)

	img := &Image{Segments: []*Segment{
		{Address: 0x0010, Data: []byte("calibration")},
		{Address: 0x1F00, Data: make([]byte, 100)},
	}}
	for i := range img.Segments[1].Data {
		img.Segments[1].Data[i] = byte(i)
	}

	var updates []eeprom.Progress
	err := Program(ctx, dev, img, WithVerify(), WithProgress(func(p eeprom.Progress) {
		updates = append(updates, p)
	}))
	require.NoError(t, err)

	mem := sim.Bytes()
	assert.Equal(t, []byte("calibration"), mem[0x10:0x10+11])
	assert.Equal(t, img.Segments[1].Data, mem[0x1F00:0x1F00+100])
	assert.Equal(t, byte(simulator.Erased), mem[0x0F])

	// two writes, two verifies, completion
	require.Len(t, updates, 5)
	assert.Equal(t, eeprom.PhaseWriting, updates[0].Phase)
	assert.Equal(t, 11, updates[0].BytesWritten)
	assert.Equal(t, 111, updates[1].BytesWritten)
	assert.Equal(t, eeprom.PhaseVerifying, updates[2].Phase)
	assert.Equal(t, eeprom.PhaseComplete, updates[4].Phase)
	assert.Equal(t, 100.0, updates[4].Percentage)
}

func TestProgramRejectsOutOfRangeBeforeWriting(t *testing.T) {
	dev, sim := newDevice(t, chip.T24C02)

	img := &Image{Segments: []*Segment{
		{Address: 0, Data: []byte{1, 2, 3}},
		{Address: 0xFE, Data: []byte{1, 2, 3}},
	}}

	err := Program(context.Background(), dev, img)
	require.Error(t, err)
	assert.True(t, errors.Is(err, chip.ErrOutOfRange))
	assert.Contains(t, err.Error(), "segment 1 at 0x000FE")
	assert.Empty(t, sim.Transactions())
	assert.NoError(t, dev.Err())
}

func TestProgramWriteFailure(t *testing.T) {
	failAll := func(simulator.Transaction) bool { return true }
	sim, err := simulator.New(chip.T24C02, 0, simulator.WithFailure(failAll))
	require.NoError(t, err)
	dev, err := eeprom.New(sim, 0, chip.T24C02)
	require.NoError(t, err)

	err = Program(context.Background(), dev, &Image{Segments: []*Segment{{Address: 0, Data: []byte{1}}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, eeprom.BusError))
	assert.Contains(t, err.Error(), "program segment 0")
}

func TestProgramVerifyMismatch(t *testing.T) {
	target := &forgetfulTarget{profile: chip.ProfileFor(chip.T24C32)}
	img := &Image{Segments: []*Segment{{Address: 0x100, Data: []byte{0, 0, 7}}}}

	err := Program(context.Background(), target, img, WithVerify())
	require.Error(t, err)

	var verr *VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, uint32(0x102), verr.Address)
	assert.Equal(t, byte(7), verr.Expected)
	assert.Equal(t, byte(0), verr.Actual)
	assert.Contains(t, err.Error(), "verify failed at 0x00102")

	// without verification the mismatch goes unnoticed
	assert.NoError(t, Program(context.Background(), target, img))
}

func TestProgramNilImage(t *testing.T) {
	dev, _ := newDevice(t, chip.T24C02)
	assert.Error(t, Program(context.Background(), dev, nil))
}

func TestDump(t *testing.T) {
	ctx := context.Background()
	dev, sim := newDevice(t, chip.T24C1025)
	for a := uint32(0); a < 131072; a += 97 {
		sim.Poke(a, byte(a>>3))
	}

	img, err := Dump(ctx, dev)
	require.NoError(t, err)
	require.Len(t, img.Segments, 1)
	assert.Equal(t, uint32(0), img.Segments[0].Address)

	data := img.Segments[0].Data
	require.Len(t, data, 131070)
	mem := sim.Bytes()
	for a := uint32(0); a < uint32(len(data)); a++ {
		phys, ok := sim.Locate(a)
		require.True(t, ok)
		if data[a] != mem[phys] {
			t.Fatalf("logical 0x%05X: got 0x%02X, want 0x%02X", a, data[a], mem[phys])
		}
	}
}

func TestDumpRange(t *testing.T) {
	ctx := context.Background()
	dev, sim := newDevice(t, chip.T24C16)
	phys, ok := sim.Locate(300)
	require.True(t, ok)
	sim.Poke(phys, 0x42)

	img, err := DumpRange(ctx, dev, 290, 20)
	require.NoError(t, err)
	assert.Equal(t, uint32(290), img.Segments[0].Address)
	assert.Equal(t, byte(0x42), img.Segments[0].Data[10])

	_, err = DumpRange(ctx, dev, 2040, 20)
	assert.True(t, errors.Is(err, chip.ErrOutOfRange))
}

func TestDumpProgramRoundTripAcrossBlocks(t *testing.T) {
	ctx := context.Background()

	src, srcSim := newDevice(t, chip.T24C08)
	for a := uint32(0); a < 1024; a++ {
		srcSim.Poke(a, byte(a*13))
	}
	img, err := Dump(ctx, src)
	require.NoError(t, err)
	require.Len(t, img.Segments[0].Data, 1020)

	dst, dstSim := newDevice(t, chip.T24C08)
	require.NoError(t, Program(ctx, dst, img, WithVerify()))

	// every physical word a logical address reaches matches the source
	for a := uint32(0); a < 1020; a++ {
		phys, ok := dstSim.Locate(a)
		require.True(t, ok)
		assert.Equal(t, srcSim.Peek(phys), dstSim.Peek(phys), "logical %d", a)
	}
	for _, phys := range []uint32{0xFF, 0x1FF, 0x2FF, 0x3FF} {
		assert.Equal(t, byte(simulator.Erased), dstSim.Peek(phys))
	}
}

func TestDumpProgramRoundTrip(t *testing.T) {
	ctx := context.Background()

	src, srcSim := newDevice(t, chip.T24C128)
	for a := uint32(0); a < 16384; a++ {
		srcSim.Poke(a, byte(a*13))
	}
	img, err := Dump(ctx, src)
	require.NoError(t, err)

	dst, dstSim := newDevice(t, chip.T24C128)
	require.NoError(t, Program(ctx, dst, img, WithVerify()))
	assert.Equal(t, srcSim.Bytes(), dstSim.Bytes())
}
