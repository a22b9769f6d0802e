package eeprom

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-24cxx/chip"
)

func TestScalarRoundTrip(t *testing.T) {
	ctx := context.Background()
	dev, _ := newSimDevice(t, chip.T24C32, nil)

	require.NoError(t, dev.WriteUint8(ctx, 0, 0xFE))
	require.NoError(t, dev.WriteInt8(ctx, 1, -100))
	require.NoError(t, dev.WriteUint16(ctx, 30, 0xBEEF)) // straddles a page
	require.NoError(t, dev.WriteInt16(ctx, 40, -12345))
	require.NoError(t, dev.WriteUint32(ctx, 62, 0xDEADBEEF))
	require.NoError(t, dev.WriteInt32(ctx, 70, math.MinInt32))
	require.NoError(t, dev.WriteFloat32(ctx, 4092, -1.5))

	u8, err := dev.ReadUint8(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFE), u8)

	i8, err := dev.ReadInt8(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int8(-100), i8)

	u16, err := dev.ReadUint16(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	i16, err := dev.ReadInt16(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, int16(-12345), i16)

	u32, err := dev.ReadUint32(ctx, 62)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := dev.ReadInt32(ctx, 70)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), i32)

	f32, err := dev.ReadFloat32(ctx, 4092)
	require.NoError(t, err)
	assert.Equal(t, float32(-1.5), f32)
}

func TestScalarHostByteOrder(t *testing.T) {
	ctx := context.Background()
	dev, sim := newSimDevice(t, chip.T24C02, nil)

	require.NoError(t, dev.WriteUint32(ctx, 8, 0x01020304))

	want := make([]byte, 4)
	byteOrder.PutUint32(want, 0x01020304)
	assert.Equal(t, want, sim.Bytes()[8:12])
}

func TestScalarOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		op   func(*Device) error
	}{
		{name: "uint16 past end", op: func(d *Device) error { return d.WriteUint16(context.Background(), 255, 1) }},
		{name: "uint32 past end", op: func(d *Device) error { return d.WriteUint32(context.Background(), 253, 1) }},
		{name: "float32 past end", op: func(d *Device) error { return d.WriteFloat32(context.Background(), 254, 1) }},
		{name: "read int32 past end", op: func(d *Device) error {
			_, err := d.ReadInt32(context.Background(), 253)
			return err
		}},
		{name: "read uint8 at capacity", op: func(d *Device) error {
			_, err := d.ReadUint8(context.Background(), 256)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, sim := newSimDevice(t, chip.T24C02, nil)
			err := tt.op(dev)
			assert.True(t, errors.Is(err, OutOfRange))
			assert.Empty(t, sim.Transactions())
		})
	}
}

type calibration struct {
	Offset int16
	Gain   float32
	Serial uint32
	Flags  [3]uint8
}

func TestValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	dev, _ := newSimDevice(t, chip.T24C64, nil)

	in := calibration{Offset: -3, Gain: 1.02, Serial: 123456, Flags: [3]uint8{1, 0, 1}}
	require.NoError(t, dev.WriteValue(ctx, 0x1F, in))

	var out calibration
	require.NoError(t, dev.ReadValue(ctx, 0x1F, &out))
	assert.Equal(t, in, out)
}

func TestValueParamError(t *testing.T) {
	ctx := context.Background()

	dev, sim := newSimDevice(t, chip.T24C64, nil)
	err := dev.WriteValue(ctx, 0, map[string]int{"a": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ParamError))
	assert.Contains(t, err.Error(), "no fixed size")
	assert.Empty(t, sim.Transactions())

	dev, _ = newSimDevice(t, chip.T24C64, nil)
	var s []int
	err = dev.ReadValue(ctx, 0, &s)
	assert.True(t, errors.Is(err, ParamError))
}

func TestValueAllocationError(t *testing.T) {
	ctx := context.Background()
	dev, sim := newSimDevice(t, chip.T24C512, nil, WithMaxTransfer(8))

	err := dev.WriteValue(ctx, 0, [16]byte{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, AllocationError))
	assert.Equal(t, AllocationError, dev.ErrorCode())
	assert.Empty(t, sim.Transactions())

	// within the limit works on a fresh device
	dev, _ = newSimDevice(t, chip.T24C512, nil, WithMaxTransfer(8))
	require.NoError(t, dev.WriteValue(ctx, 0, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}))

	var big [9]byte
	err = dev.ReadValue(ctx, 0, &big)
	assert.True(t, errors.Is(err, AllocationError))
}

func TestValueOutOfRange(t *testing.T) {
	dev, _ := newSimDevice(t, chip.T24C02, nil)

	err := dev.WriteValue(context.Background(), 250, calibration{})
	assert.True(t, errors.Is(err, OutOfRange))
}
