package math8_test

import (
	"testing"
	"time"

	"github.com/coreman2200/ledcube-engine/internal/math8"
	"github.com/stretchr/testify/assert"
)

func TestScale8Identities(t *testing.T) {
	for v := 0; v < 256; v++ {
		assert.Equal(t, uint8(v), math8.Scale8(uint8(v), 255), "scale8(v,255) must equal v")
		assert.Equal(t, uint8(0), math8.Scale8(uint8(v), 0), "scale8(v,0) must equal 0")
	}
}

func TestBlend8Bounds(t *testing.T) {
	assert.Equal(t, uint8(10), math8.Blend8(10, 200, 0))
	assert.Equal(t, uint8(200), math8.Blend8(10, 200, 255))
	mid := math8.Blend8(0, 255, 128)
	assert.InDelta(t, 128, int(mid), 2)
}

func TestProgress8(t *testing.T) {
	assert.Equal(t, uint8(0), math8.Progress8(0, 0))
	assert.Equal(t, uint8(0), math8.Progress8(0, 100*time.Millisecond))
	assert.Equal(t, uint8(255), math8.Progress8(200*time.Millisecond, 100*time.Millisecond))
	assert.InDelta(t, 127, int(math8.Progress8(50*time.Millisecond, 100*time.Millisecond)), 1)
}

func TestEaseInOutQuadMirror(t *testing.T) {
	assert.Equal(t, uint8(0), math8.EaseInOutQuad(0))
	assert.Equal(t, uint8(255), math8.EaseInOutQuad(255))
}

func TestGammaLUTMonotonic(t *testing.T) {
	assert.Equal(t, uint8(0), math8.GammaLUT[0])
	assert.Equal(t, uint8(255), math8.GammaLUT[255])
	for i := 1; i < 256; i++ {
		assert.GreaterOrEqual(t, math8.GammaLUT[i], math8.GammaLUT[i-1])
	}
}

func TestCombine(t *testing.T) {
	double := func(v uint8) uint8 {
		if v > 127 {
			return 255
		}
		return v * 2
	}
	halve := func(v uint8) uint8 { return v / 2 }
	assert.Equal(t, uint8(50), math8.Combine([]math8.U8Adjuster{double, halve}, 50))
}
