package color_test

import (
	"testing"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/stretchr/testify/assert"
)

func TestHsvToRgbPrimaries(t *testing.T) {
	red := color.HsvToRgb(color.Hsv{Hue: 0, Sat: 255, Val: 255})
	assert.Equal(t, uint8(255), red.R)
	assert.Less(t, red.G, uint8(5))
	assert.Less(t, red.B, uint8(5))
}

func TestHsvToRgbGrayscaleWhenUnsaturated(t *testing.T) {
	gray := color.HsvToRgb(color.Hsv{Hue: 200, Sat: 0, Val: 128})
	assert.Equal(t, color.Rgb{R: 128, G: 128, B: 128}, gray)
}

func TestBlendBoundaries(t *testing.T) {
	a := color.Rgb{R: 10, G: 20, B: 30}
	b := color.Rgb{R: 200, G: 100, B: 50}
	assert.Equal(t, a, a.Blend(b, 0))
	assert.Equal(t, b, a.Blend(b, 255))
}

func TestMirrorHalf(t *testing.T) {
	leds := make([]color.Rgb, 6)
	for i := range leds {
		leds[i] = color.Rgb{R: uint8(i)}
	}
	color.MirrorHalf(leds)
	for i := 0; i < 3; i++ {
		assert.Equal(t, leds[i], leds[len(leds)-1-i])
	}
}

func TestMirrorHalfOddLength(t *testing.T) {
	leds := make([]color.Rgb, 5)
	for i := range leds {
		leds[i] = color.Rgb{R: uint8(i)}
	}
	color.MirrorHalf(leds)
	assert.Equal(t, leds[0], leds[4])
	assert.Equal(t, leds[1], leds[3])
}

func TestFromU32(t *testing.T) {
	assert.Equal(t, color.Rgb{R: 0x11, G: 0x22, B: 0x33}, color.FromU32(0x112233))
}

func TestKelvinToRGBExtremes(t *testing.T) {
	warm := color.KelvinToRGB(1000)
	assert.Equal(t, uint8(255), warm.R)
	assert.Equal(t, uint8(0), warm.B)

	cool := color.KelvinToRGB(40000)
	assert.Equal(t, uint8(255), cool.B)
}

func TestFillGradientEndpoints(t *testing.T) {
	leds := make([]color.Rgb, 10)
	start := color.Hsv{Hue: 0, Sat: 255, Val: 255}
	end := color.Hsv{Hue: 120, Sat: 255, Val: 255}
	color.FillGradient(leds, 0, start, 9, end, color.Forward)
	assert.Equal(t, color.HsvToRgb(start), leds[0])
}

func TestFillGradientEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		color.FillGradient(nil, 0, color.Hsv{}, 0, color.Hsv{}, color.Forward)
	})
}

func TestRgbToHsvRoundTripHue(t *testing.T) {
	for _, hue := range []uint8{0, 40, 85, 130, 171, 220} {
		rgb := color.HsvToRgb(color.Hsv{Hue: hue, Sat: 255, Val: 255})
		back := color.RgbToHsv(rgb)
		assert.InDelta(t, int(hue), int(back.Hue), 6)
	}
}
