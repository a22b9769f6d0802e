package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
)

// stubI2C records Tx calls made through the periph.io bus interface.
type stubI2C struct{ mock.Mock }

func (s *stubI2C) String() string { return "stub" }

func (s *stubI2C) SetSpeed(f physic.Frequency) error { return s.Called(f).Error(0) }

func (s *stubI2C) Tx(addr uint16, w, r []byte) error {
	ret := s.Called(addr, w, r)
	for i := range r {
		r[i] = byte(i + 1)
	}
	return ret.Error(0)
}

func TestPeriphWriteWithStop(t *testing.T) {
	stub := &stubI2C{}
	stub.On("Tx", uint16(0x50), []byte{0x00, 0x10, 0xAA}, []byte(nil)).Return(nil).Once()

	p := NewPeriph(stub)
	require.NoError(t, p.Write(0x50, []byte{0x00, 0x10, 0xAA}, true))
	stub.AssertExpectations(t)
}

func TestPeriphCombinesAddressWriteAndRead(t *testing.T) {
	stub := &stubI2C{}
	stub.On("Tx", uint16(0x51), []byte{0x12, 0x34}, mock.Anything).Return(nil).Once()

	p := NewPeriph(stub)
	require.NoError(t, p.Write(0x51, []byte{0x12, 0x34}, false))
	stub.AssertNotCalled(t, "Tx", mock.Anything, mock.Anything, mock.Anything)

	buf := make([]byte, 3)
	require.NoError(t, p.Read(0x51, buf))
	assert.Equal(t, []byte{1, 2, 3}, buf)
	stub.AssertExpectations(t)
}

func TestPeriphReadWithoutPendingAddress(t *testing.T) {
	stub := &stubI2C{}
	stub.On("Tx", uint16(0x50), []byte(nil), mock.Anything).Return(nil).Once()

	p := NewPeriph(stub)
	buf := make([]byte, 1)
	require.NoError(t, p.Read(0x50, buf))
	stub.AssertExpectations(t)
}

func TestPeriphReadRejectsOtherDeviceAddress(t *testing.T) {
	stub := &stubI2C{}
	stub.On("Tx", uint16(0x50), []byte(nil), mock.Anything).Return(nil).Once()

	p := NewPeriph(stub)
	require.NoError(t, p.Write(0x51, []byte{0x00}, false))

	err := p.Read(0x50, make([]byte, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRepeatedStart))
	assert.Contains(t, err.Error(), "read 0x50 after address write to 0x51")
	stub.AssertNotCalled(t, "Tx", mock.Anything, mock.Anything, mock.Anything)

	// the stale address phase is dropped, the next read is a plain read
	require.NoError(t, p.Read(0x50, make([]byte, 1)))
	stub.AssertExpectations(t)
}

func TestPeriphZeroLengthWriteReadsOneByte(t *testing.T) {
	stub := &stubI2C{}
	stub.On("Tx", uint16(0x50), []byte(nil), mock.MatchedBy(func(r []byte) bool { return len(r) == 1 })).
		Return(errors.New("remote I/O error")).Once()

	p := NewPeriph(stub)
	err := p.Write(0x50, nil, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNack))

	var nack *NackError
	require.ErrorAs(t, err, &nack)
	assert.Equal(t, uint8(0x50), nack.Addr)
	assert.Contains(t, err.Error(), "remote I/O error")
}

func TestPeriphCloseWithoutOwnership(t *testing.T) {
	p := NewPeriph(&stubI2C{})
	assert.NoError(t, p.Close())
	assert.Equal(t, "stub", p.String())
}

func TestNewPeriphPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewPeriph(nil) })
}
