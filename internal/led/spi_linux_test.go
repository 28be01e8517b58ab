//go:build linux

package led

import (
	"testing"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/stretchr/testify/assert"
)

func TestBitExpansionLUTEncodesEachBitAsThreeCells(t *testing.T) {
	var lut [256][3]byte
	buildBitExpansionLUT(&lut)

	// 0xFF: every bit set -> every tristate cell is 0b110.
	assert.Equal(t, [3]byte{0b11011011, 0b01101101, 0b10110110}, lut[0xFF])
	// 0x00: every bit clear -> every tristate cell is 0b100.
	assert.Equal(t, [3]byte{0b10010010, 0b01001001, 0b00100100}, lut[0x00])
}

func TestEncodePixelHonorsColorOrder(t *testing.T) {
	s := &SPI{colorOrder: [3]byte{'G', 'R', 'B'}}
	buildBitExpansionLUT(&s.lut)

	dst := make([]byte, 9)
	s.encodePixel(color.Rgb{R: 0xFF, G: 0x00, B: 0x00}, dst)

	// GRB order: green (0x00) encodes first, so the first 3 bytes should
	// match the all-clear LUT entry, not the all-set one.
	assert.Equal(t, s.lut[0x00], [3]byte{dst[0], dst[1], dst[2]})
	assert.Equal(t, s.lut[0xFF], [3]byte{dst[3], dst[4], dst[5]})
	assert.Equal(t, s.lut[0x00], [3]byte{dst[6], dst[7], dst[8]})
}
