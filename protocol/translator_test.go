package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-24cxx/chip"
)

func TestBaseAddress(t *testing.T) {
	tests := []struct {
		name       string
		variant    chip.Variant
		chipSelect uint8
		want       uint8
		wantErr    bool
	}{
		{name: "24C02 cs 0", variant: chip.T24C02, chipSelect: 0, want: 0x50},
		{name: "24C02 cs 7", variant: chip.T24C02, chipSelect: 7, want: 0x57},
		{name: "24C02 cs 8", variant: chip.T24C02, chipSelect: 8, wantErr: true},
		{name: "24C04 drops bit 0", variant: chip.T24C04, chipSelect: 3, want: 0x52},
		{name: "24C08 drops bits 0-1", variant: chip.T24C08, chipSelect: 7, want: 0x54},
		{name: "24C16 ignores chip select", variant: chip.T24C16, chipSelect: 6, want: 0x50},
		{name: "24C64 cs 5", variant: chip.T24C64, chipSelect: 5, want: 0x55},
		{name: "24C512 cs 8", variant: chip.T24C512, chipSelect: 8, wantErr: true},
		{name: "24C1024 drops bit 0", variant: chip.T24C1024, chipSelect: 3, want: 0x52},
		{name: "24C1024 cs 4", variant: chip.T24C1024, chipSelect: 4, wantErr: true},
		{name: "24C1025 cs 3", variant: chip.T24C1025, chipSelect: 3, want: 0x53},
		{name: "M24M02 cs 1", variant: chip.M24M02, chipSelect: 1, want: 0x54},
		{name: "M24M02 cs 2", variant: chip.M24M02, chipSelect: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BaseAddress(chip.ProfileFor(tt.variant), tt.chipSelect)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrBadAddress))

				var csErr *ChipSelectError
				require.ErrorAs(t, err, &csErr)
				assert.Equal(t, tt.chipSelect, csErr.ChipSelect)
				assert.Contains(t, err.Error(), tt.variant.String())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveBlockRecovery(t *testing.T) {
	for _, v := range chip.Variants() {
		p := chip.ProfileFor(v)
		base, err := BaseAddress(p, 0)
		require.NoError(t, err)

		stride := p.BlockStride
		if stride == chip.StrideNone {
			stride = p.Capacity
		}

		// one address per block plus the last addressable byte
		addrs := []uint32{0, p.EffectiveCapacity() - 1}
		for b := uint32(1); b*stride < p.EffectiveCapacity(); b++ {
			addrs = append(addrs, b*stride, b*stride+1)
		}

		for _, addr := range addrs {
			if !p.InRange(addr) {
				continue
			}
			r := Resolve(p, base, addr)

			wantBlock := addr / stride
			assert.Equal(t, wantBlock, uint32(r.BusAddress-base), "%s addr %d", v, addr)
			assert.Equal(t, wantBlock, r.Block, "%s addr %d", v, addr)
			assert.Equal(t, addr, r.Block*stride+r.Local, "%s addr %d", v, addr)
			assert.Equal(t, p.WordAddressWidth, len(r.WordAddressBytes()))
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		variant chip.Variant
		base    uint8
		address uint32
		bus     uint8
		word    []byte
	}{
		{name: "24C02 start", variant: chip.T24C02, base: 0x50, address: 0, bus: 0x50, word: []byte{0x00}},
		{name: "24C02 stride boundary", variant: chip.T24C02, base: 0x50, address: 255, bus: 0x51, word: []byte{0x00}},
		{name: "24C16 block 3", variant: chip.T24C16, base: 0x50, address: 800, bus: 0x53, word: []byte{800 - 3*255}},
		{name: "24C64 two byte word", variant: chip.T24C64, base: 0x52, address: 0x1234, bus: 0x52, word: []byte{0x12, 0x34}},
		{name: "24C512 top", variant: chip.T24C512, base: 0x50, address: 0xFFFF, bus: 0x50, word: []byte{0xFF, 0xFF}},
		{name: "24C1025 block 1", variant: chip.T24C1025, base: 0x50, address: 0x10000, bus: 0x51, word: []byte{0x00, 0x01}},
		{name: "M24M02 block 3", variant: chip.M24M02, base: 0x54, address: 3*0xFFFF + 0x0102, bus: 0x57, word: []byte{0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(chip.ProfileFor(tt.variant), tt.base, tt.address)
			assert.Equal(t, tt.bus, r.BusAddress)
			assert.Equal(t, tt.word, r.WordAddressBytes())
		})
	}
}

func TestBuildAddressFrame(t *testing.T) {
	r := Resolve(chip.ProfileFor(chip.T24C256), 0x50, 0x7F40)
	assert.Equal(t, []byte{0x7F, 0x40}, BuildAddressFrame(r))

	r = Resolve(chip.ProfileFor(chip.T24C01), 0x50, 0x42)
	assert.Equal(t, []byte{0x42}, BuildAddressFrame(r))
}

func TestBuildPageWriteFrame(t *testing.T) {
	r := Resolve(chip.ProfileFor(chip.T24C64), 0x50, 0x0120)
	page := []byte{1, 2, 3, 4}

	buf := make([]byte, 0, MaxFrameSize)
	frame, err := BuildPageWriteFrame(buf, r, page)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x20, 1, 2, 3, 4}, frame)

	_, err = BuildPageWriteFrame(buf, r, nil)
	assert.Error(t, err)

	_, err = BuildPageWriteFrame(buf, r, make([]byte, MaxPageSize+1))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "page must be")
}
