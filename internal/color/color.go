// Package color implements the engine's RGB/HSV color model: the plain
// three-channel records, HSV<->RGB conversion, Kelvin-to-RGB, blending and
// the fixed-point gradient fill used by several effects. Everything except
// KelvinToRGB is integer-only and safe on the render hot path.
package color

import (
	"math"

	"github.com/coreman2200/ledcube-engine/internal/math8"
)

// Rgb is a plain three-channel 8-bit-per-channel color.
type Rgb struct {
	R, G, B uint8
}

// Black is the zero value of Rgb, named for readability at call sites.
var Black = Rgb{}

// Blend blends r towards other by amountOfOther (0=r, 255=other), per channel.
func (r Rgb) Blend(other Rgb, amountOfOther uint8) Rgb {
	return Rgb{
		R: math8.Blend8(r.R, other.R, amountOfOther),
		G: math8.Blend8(r.G, other.G, amountOfOther),
		B: math8.Blend8(r.B, other.B, amountOfOther),
	}
}

// BlendRgb is Rgb.Blend in function form, for use as a transition.Blender.
func BlendRgb(a, b Rgb, amountOfB uint8) Rgb {
	return a.Blend(b, amountOfB)
}

// BlendU8 is math8.Blend8 in the shape a transition.Blender expects.
func BlendU8(a, b, amountOfB uint8) uint8 {
	return math8.Blend8(a, b, amountOfB)
}

// FromU32 decodes a 0xRRGGBB packed color.
func FromU32(packed uint32) Rgb {
	return Rgb{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
	}
}

// Hsv is a plain three-channel color on a 0-255 hue/sat/val circle.
type Hsv struct {
	Hue, Sat, Val uint8
}

// HsvToRgb converts using a six-sector ramp algorithm (43 hue steps per
// sector, hue 0 = red, 85 = green, 171 = blue): fully integer, no branching
// on float ranges, safe on the render hot path.
func HsvToRgb(hsv Hsv) Rgb {
	v := uint32(hsv.Val)
	if hsv.Sat == 0 {
		return Rgb{R: uint8(v), G: uint8(v), B: uint8(v)}
	}

	sat := uint32(hsv.Sat)
	invSat := 255 - sat
	brightnessFloor := (v * invSat) / 255
	colorAmplitude := v - brightnessFloor

	section := hsv.Hue / 43 // 0..5
	offset := hsv.Hue % 43  // 0..42
	rampUp := uint32(offset)
	rampDown := uint32(42 - offset)

	rampUpAdj := (rampUp * colorAmplitude) / 42
	rampDownAdj := (rampDown * colorAmplitude) / 42

	rampUpWithFloor := uint8(rampUpAdj + brightnessFloor)
	rampDownWithFloor := uint8(rampDownAdj + brightnessFloor)
	floor := uint8(brightnessFloor)
	full := uint8(v)

	switch section {
	case 0:
		return Rgb{R: full, G: rampUpWithFloor, B: floor}
	case 1:
		return Rgb{R: rampDownWithFloor, G: full, B: floor}
	case 2:
		return Rgb{R: floor, G: full, B: rampUpWithFloor}
	case 3:
		return Rgb{R: floor, G: rampDownWithFloor, B: full}
	case 4:
		return Rgb{R: rampUpWithFloor, G: floor, B: full}
	default:
		return Rgb{R: full, G: floor, B: rampDownWithFloor}
	}
}

// RgbToHsv converts using the classic max/min-sector integer approximation.
func RgbToHsv(rgb Rgb) Hsv {
	max := maxU8(rgb.R, rgb.G, rgb.B)
	min := minU8(rgb.R, rgb.G, rgb.B)
	delta := max - min

	val := max
	var sat uint8
	if max != 0 {
		sat = uint8((uint16(delta) * 255) / uint16(max))
	}

	var hue uint8
	switch {
	case delta == 0:
		hue = 0
	case max == rgb.R:
		hue = wrapHue(43 * (int16(rgb.G) - int16(rgb.B)) / int16(delta))
	case max == rgb.G:
		hue = wrapHue(85 + 43*(int16(rgb.B)-int16(rgb.R))/int16(delta))
	default:
		hue = wrapHue(171 + 43*(int16(rgb.R)-int16(rgb.G))/int16(delta))
	}

	return Hsv{Hue: hue, Sat: sat, Val: val}
}

func wrapHue(h int16) uint8 {
	if h < 0 {
		h += 256
	}
	return uint8(h)
}

func maxU8(a, b, c uint8) uint8 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func minU8(a, b, c uint8) uint8 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// MirrorHalf mirrors the first half of leds around the center, so that
// leds[len-1-i] == leds[i] for the mirrored range. Used by effects that
// compute only half a pattern and reflect it.
func MirrorHalf(leds []Rgb) {
	n := len(leds)
	if n == 0 {
		return
	}
	center := n / 2
	if n%2 != 0 {
		center++
	}
	if center > n {
		center = n
	}
	for i := 0; i < center; i++ {
		leds[n-1-i] = leds[i]
	}
}

// lnLUT holds precomputed natural logarithms for integer arguments 10..66,
// mirroring the table the original Kelvin approximation carries to avoid a
// runtime log() call across its most common input range.
var lnLUT = [57]float64{
	2.302585, 2.397895, 2.484907, 2.564949, 2.639057, 2.707606, 2.772589, 2.833213,
	2.890372, 2.944438, 2.995732, 3.044522, 3.091042, 3.135494, 3.178054, 3.218876,
	3.258097, 3.295837, 3.332205, 3.367296, 3.401197, 3.433987, 3.465736, 3.496508,
	3.526361, 3.555348, 3.583519, 3.610918, 3.637586, 3.663562, 3.688879, 3.713572,
	3.73767, 3.7612, 3.78419, 3.806662, 3.828641, 3.850148, 3.871201, 3.89182, 3.912023,
	3.931825, 3.951244, 3.970292, 3.988984, 4.007333, 4.025352, 4.043051, 4.060443,
	4.077537, 4.094345, 4.110874, 4.127134, 4.143134, 4.158883, 4.174387, 4.189654,
}

// KelvinToRGB approximates a black-body color temperature's RGB appearance.
// Supports 1000K-40000K. This runs only at intent-fold time, never inside a
// render tick, so the floating-point math here is not a hot-path concern.
func KelvinToRGB(kelvin uint16) Rgb {
	temp := clampF(float64(kelvin)/100.0, 10.0, 400.0)
	originalTemp := temp

	var red float64
	if temp <= 66.0 {
		red = 255.0
	} else {
		t := temp - 60.0
		red = clampF(329.69873*math.Pow(t, -0.13320476), 0.0, 255.0)
	}

	var green float64
	if originalTemp <= 66.0 {
		green = clampF(99.4708*lnOf(originalTemp)-161.11957, 0.0, 255.0)
	} else {
		t := originalTemp - 60.0
		green = clampF(288.12217*math.Pow(t, -0.07551485), 0.0, 255.0)
	}

	var blue float64
	switch {
	case originalTemp >= 66.0:
		blue = 255.0
	case originalTemp <= 19.0:
		blue = 0.0
	default:
		t := originalTemp - 10.0
		blue = clampF(138.51773*lnOf(t)-305.0448, 0.0, 255.0)
	}

	return Rgb{R: uint8(red), G: uint8(green), B: uint8(blue)}
}

func lnOf(x float64) float64 {
	idx := int(x) - 10
	if idx >= 0 && idx < len(lnLUT) {
		return lnLUT[idx]
	}
	return math.Log(x)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
