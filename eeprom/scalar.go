package eeprom

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
)

// Scalar values are stored in the host byte order, so data written by a
// little-endian host reads back unchanged only on little-endian hosts.
var byteOrder = binary.NativeEndian

// WriteUint8 stores one byte.
func (d *Device) WriteUint8(ctx context.Context, address uint32, v uint8) error {
	return d.writeScalar(ctx, "write uint8", address, []byte{v})
}

// WriteInt8 stores one signed byte.
func (d *Device) WriteInt8(ctx context.Context, address uint32, v int8) error {
	return d.writeScalar(ctx, "write int8", address, []byte{byte(v)})
}

// WriteUint16 stores a 16-bit value.
func (d *Device) WriteUint16(ctx context.Context, address uint32, v uint16) error {
	var b [2]byte
	byteOrder.PutUint16(b[:], v)
	return d.writeScalar(ctx, "write uint16", address, b[:])
}

// WriteInt16 stores a signed 16-bit value.
func (d *Device) WriteInt16(ctx context.Context, address uint32, v int16) error {
	var b [2]byte
	byteOrder.PutUint16(b[:], uint16(v))
	return d.writeScalar(ctx, "write int16", address, b[:])
}

// WriteUint32 stores a 32-bit value.
func (d *Device) WriteUint32(ctx context.Context, address uint32, v uint32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], v)
	return d.writeScalar(ctx, "write uint32", address, b[:])
}

// WriteInt32 stores a signed 32-bit value.
func (d *Device) WriteInt32(ctx context.Context, address uint32, v int32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], uint32(v))
	return d.writeScalar(ctx, "write int32", address, b[:])
}

// WriteFloat32 stores an IEEE 754 single precision value.
func (d *Device) WriteFloat32(ctx context.Context, address uint32, v float32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], math.Float32bits(v))
	return d.writeScalar(ctx, "write float32", address, b[:])
}

// WriteValue stores any fixed-size value (see encoding/binary), such as a
// struct of numeric fields.
//
// Returns a ParamError fault when v has no fixed size and an AllocationError
// fault when it is larger than Config.MaxTransfer.
//
// Example:
//
//	type Calibration struct {
//	    Offset int16
//	    Gain   float32
//	}
//	err := dev.WriteValue(ctx, 0x0040, Calibration{Offset: -3, Gain: 1.02})
func (d *Device) WriteValue(ctx context.Context, address uint32, v any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "write value"
	if err := d.faulted(); err != nil {
		return err
	}

	size, err := d.scratchSize(op, address, v)
	if err != nil {
		return err
	}
	if err := d.checkSpan(op, address, uint32(size)); err != nil {
		return err
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if err := binary.Write(buf, byteOrder, v); err != nil {
		return d.record(ParamError, op, address, err)
	}

	return d.write(ctx, op, address, buf.Bytes(), nil)
}

// ReadUint8 reads one byte.
func (d *Device) ReadUint8(ctx context.Context, address uint32) (uint8, error) {
	var b [1]byte
	err := d.readScalar(ctx, "read uint8", address, b[:])
	return b[0], err
}

// ReadInt8 reads one signed byte.
func (d *Device) ReadInt8(ctx context.Context, address uint32) (int8, error) {
	var b [1]byte
	err := d.readScalar(ctx, "read int8", address, b[:])
	return int8(b[0]), err
}

// ReadUint16 reads a 16-bit value.
func (d *Device) ReadUint16(ctx context.Context, address uint32) (uint16, error) {
	var b [2]byte
	if err := d.readScalar(ctx, "read uint16", address, b[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint16(b[:]), nil
}

// ReadInt16 reads a signed 16-bit value.
func (d *Device) ReadInt16(ctx context.Context, address uint32) (int16, error) {
	var b [2]byte
	if err := d.readScalar(ctx, "read int16", address, b[:]); err != nil {
		return 0, err
	}
	return int16(byteOrder.Uint16(b[:])), nil
}

// ReadUint32 reads a 32-bit value.
func (d *Device) ReadUint32(ctx context.Context, address uint32) (uint32, error) {
	var b [4]byte
	if err := d.readScalar(ctx, "read uint32", address, b[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint32(b[:]), nil
}

// ReadInt32 reads a signed 32-bit value.
func (d *Device) ReadInt32(ctx context.Context, address uint32) (int32, error) {
	var b [4]byte
	if err := d.readScalar(ctx, "read int32", address, b[:]); err != nil {
		return 0, err
	}
	return int32(byteOrder.Uint32(b[:])), nil
}

// ReadFloat32 reads an IEEE 754 single precision value.
func (d *Device) ReadFloat32(ctx context.Context, address uint32) (float32, error) {
	var b [4]byte
	if err := d.readScalar(ctx, "read float32", address, b[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(byteOrder.Uint32(b[:])), nil
}

// ReadValue decodes a fixed-size value from the bytes stored at address.
// v must be a pointer, as for binary.Read.
//
// Example:
//
//	var cal Calibration
//	err := dev.ReadValue(ctx, 0x0040, &cal)
func (d *Device) ReadValue(ctx context.Context, address uint32, v any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	const op = "read value"
	if err := d.faulted(); err != nil {
		return err
	}

	size, err := d.scratchSize(op, address, v)
	if err != nil {
		return err
	}
	if err := d.checkSpan(op, address, uint32(size)); err != nil {
		return err
	}

	buf := make([]byte, size)
	if err := d.read(ctx, op, address, buf); err != nil {
		return err
	}

	if err := binary.Read(bytes.NewReader(buf), byteOrder, v); err != nil {
		return d.record(ParamError, op, address, err)
	}
	return nil
}

func (d *Device) writeScalar(ctx context.Context, op string, address uint32, b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.faulted(); err != nil {
		return err
	}
	if err := d.checkSpan(op, address, uint32(len(b))); err != nil {
		return err
	}
	return d.write(ctx, op, address, b, nil)
}

func (d *Device) readScalar(ctx context.Context, op string, address uint32, b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.faulted(); err != nil {
		return err
	}
	if err := d.checkSpan(op, address, uint32(len(b))); err != nil {
		return err
	}
	return d.read(ctx, op, address, b)
}

// checkSpan validates that the last byte of a fixed-width value is addressable.
func (d *Device) checkSpan(op string, address, width uint32) error {
	if err := d.profile.ValidateRange(address, width); err != nil {
		return d.record(OutOfRange, op, address, err)
	}
	return nil
}

// scratchSize returns the encoded size of v, recording ParamError when v has
// no fixed size and AllocationError when it exceeds MaxTransfer.
func (d *Device) scratchSize(op string, address uint32, v any) (int, error) {
	size := binary.Size(v)
	if size < 0 {
		return 0, d.record(ParamError, op, address, fmt.Errorf("%T has no fixed size", v))
	}
	if size > d.config.MaxTransfer {
		return 0, d.record(AllocationError, op, address,
			fmt.Errorf("%d bytes exceeds the %d byte transfer limit", size, d.config.MaxTransfer))
	}
	return size, nil
}
