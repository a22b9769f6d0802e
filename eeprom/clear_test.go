package eeprom

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/simulator"
)

func TestClear(t *testing.T) {
	ctx := context.Background()

	var updates []Progress
	logger := &MockLogger{}
	dev, sim := newSimDevice(t, chip.T24C02, []simulator.Option{simulator.WithBusyPolls(1)},
		WithLogger(logger),
		WithProgressCallback(func(p Progress) { updates = append(updates, p) }),
	)
	sim.Fill(0xAB)

	require.NoError(t, dev.Clear(ctx))

	// logical 255 lies outside the part's block window, so physical 255 keeps
	// its value
	assert.Equal(t, make([]byte, 255), sim.Bytes()[:255])
	assert.Equal(t, byte(0xAB), sim.Peek(255))

	// one update per page plus completion
	require.Len(t, updates, 256/8+1)
	assert.Equal(t, PhaseClearing, updates[0].Phase)
	assert.Equal(t, 8, updates[0].BytesWritten)
	last := updates[len(updates)-1]
	assert.Equal(t, PhaseComplete, last.Phase)
	assert.Equal(t, 255, last.Total)
	assert.Equal(t, 100.0, last.Percentage)

	assert.Contains(t, logger.infoMsgs, "clear complete")

	buf := make([]byte, 255)
	require.NoError(t, dev.Read(ctx, 0, buf))
	assert.Equal(t, make([]byte, 255), buf)
}

func TestClearLeavesUnreachableWords(t *testing.T) {
	dev, sim := newSimDevice(t, chip.T24C1025, nil)
	sim.Fill(0xAB)

	require.NoError(t, dev.Clear(context.Background()))

	// the last word of each block is never reached by a logical address
	mem := sim.Bytes()
	for a := uint32(0); a < uint32(len(mem)); a++ {
		if a == 0xFFFF || a == 0x1FFFF {
			assert.Equal(t, byte(0xAB), mem[a], "word 0x%05X", a)
			continue
		}
		if mem[a] != 0 {
			t.Fatalf("byte 0x%05X not cleared: 0x%02X", a, mem[a])
		}
	}
}

func TestClearPhysicalLayout(t *testing.T) {
	dev, sim := newSimDevice(t, chip.T24C04, nil)
	sim.Fill(0xAB)

	require.NoError(t, dev.Clear(context.Background()))

	mem := sim.Bytes()
	assert.Equal(t, make([]byte, 255), mem[:0xFF])
	assert.Equal(t, make([]byte, 255), mem[0x100:0x1FF])
	assert.Equal(t, byte(0xAB), mem[0xFF])
	assert.Equal(t, byte(0xAB), mem[0x1FF])
}

func TestClearStopsOnFault(t *testing.T) {
	// refuse the page write at 0x20
	failPage := func(tx simulator.Transaction) bool {
		return tx.Op == "write" && len(tx.Data) > 2 && tx.Data[1] == 0x20
	}
	dev, sim := newSimDevice(t, chip.T24C32, []simulator.Option{simulator.WithFailure(failPage)})
	sim.Fill(0xAB)

	err := dev.Clear(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, BusError))

	mem := sim.Bytes()
	assert.Equal(t, make([]byte, 32), mem[:32])
	assert.Equal(t, byte(0xAB), mem[32])
}

func TestClearCancelled(t *testing.T) {
	dev, _ := newSimDevice(t, chip.T24C02, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := dev.Clear(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NoError(t, dev.Err())
}
