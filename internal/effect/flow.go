package effect

import (
	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/math8"
)

// FlowVariant selects which fixed palette a Flow effect samples.
type FlowVariant int

const (
	VariantAurora FlowVariant = iota
	VariantLavaLamp
)

const (
	flowLayer1PeriodMS = 8000
	flowLayer2PeriodMS = 5000
	flowLayer3PeriodMS = 13000

	flowMinCell1LEDs = 12
	flowMinCell2LEDs = 6
	flowMinCell3LEDs = 18
	flowMaxCell1LEDs = 40
	flowMaxCell2LEDs = 18
	flowMaxCell3LEDs = 60
)

var auroraPalette = []color.Rgb{
	color.FromU32(0x002EB8),
	color.FromU32(0x00FFD4),
	color.FromU32(0x14FF78),
	color.FromU32(0x00C8FF),
	color.FromU32(0x8800FF),
	color.FromU32(0xFF0090),
}

var lavaLampPalette = []color.Rgb{
	color.FromU32(0x3C0014),
	color.FromU32(0xD10038),
	color.FromU32(0xFF5000),
	color.FromU32(0xFF972E),
	color.FromU32(0xF2039F),
}

// Flow renders a multi-layer integer value-noise gradient: three
// independently-periodic noise layers blended together and sampled
// against one of two fixed palettes. It ignores the target color (the
// palette is fixed), so it is not a precise-color effect.
//
// Grounded on original_source/src/effect/flow.rs.
type Flow struct {
	layer1Period, layer2Period, layer3Period int64
	variant                                  FlowVariant
}

// NewFlow constructs a Flow effect using variant's palette.
func NewFlow(variant FlowVariant) *Flow {
	return &Flow{
		layer1Period: flowLayer1PeriodMS,
		layer2Period: flowLayer2PeriodMS,
		layer3Period: flowLayer3PeriodMS,
		variant:      variant,
	}
}

func (f *Flow) Tick(now Instant) {}

func (f *Flow) SetColor(c color.Rgb) {}

func (f *Flow) RequiresPreciseColors() bool {
	return false
}

func (f *Flow) palette() []color.Rgb {
	if f.variant == VariantLavaLamp {
		return lavaLampPalette
	}
	return auroraPalette
}

func (f *Flow) Render(buf []color.Rgb, targetColor color.Rgb, now Instant) {
	if len(buf) == 0 {
		return
	}

	length := uint32(len(buf))
	palette := f.palette()

	for i := range buf {
		noise := f.combinedNoise(uint32(i), length, now)
		base := samplePalette(palette, noise)

		brightnessMod := saturatingAddU8(math8.Scale8(noise, 64), 191)
		buf[i] = color.Rgb{
			R: math8.Scale8(base.R, brightnessMod),
			G: math8.Scale8(base.G, brightnessMod),
			B: math8.Scale8(base.B, brightnessMod),
		}
	}
}

func (f *Flow) combinedNoise(i, length uint32, now Instant) uint8 {
	timeMS := uint64(now.Milliseconds())

	cell1 := clampU32(length/6, flowMinCell1LEDs, flowMaxCell1LEDs)
	if cell1 < 1 {
		cell1 = 1
	}
	cell2 := clampU32(length/12, flowMinCell2LEDs, flowMaxCell2LEDs)
	if cell2 < 1 {
		cell2 = 1
	}
	cell3 := clampU32(length/4, flowMinCell3LEDs, flowMaxCell3LEDs)
	if cell3 < 1 {
		cell3 = 1
	}

	i64 := uint64(i)
	x1 := (i64 << 16) / uint64(cell1)
	x2 := (i64 << 16) / uint64(cell2)
	x3 := (i64 << 16) / uint64(cell3)

	p1 := (timeMS << 16) / uint64(f.layer1Period)
	p2 := (timeMS << 16) / uint64(f.layer2Period)
	p3 := (timeMS << 16) / uint64(f.layer3Period)

	n1 := valueNoise(x1 + p1)
	n2 := valueNoise(x2 - p2)
	n3 := valueNoise(x3 + p3*2)

	combined := (uint16(n1)*128 + uint16(n2)*77 + uint16(n3)*51) >> 8
	return uint8(combined)
}

// valueNoise samples smooth 1D value noise at a 16.16 fixed-point position.
func valueNoise(posFP uint64) uint8 {
	cell := posFP >> 16
	frac := uint8((posFP >> 8) & 0xFF)

	v0 := uint8(hash(cell) & 0xFF)
	v1 := uint8(hash(cell+1) & 0xFF)

	t := math8.EaseInOutQuad(frac)
	return math8.Blend8(v0, v1, t)
}

// hash is a SplitMix64-style mixing function used as a deterministic noise
// source — no lookup table, no state, just bit mixing.
func hash(x uint64) uint32 {
	z := x + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return uint32(z ^ (z >> 31))
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func samplePalette(palette []color.Rgb, t uint8) color.Rgb {
	segments := len(palette) - 1
	if segments <= 0 {
		if len(palette) == 0 {
			return color.Black
		}
		return palette[0]
	}

	scaled := uint16(t) * uint16(segments)
	segment := int(scaled >> 8)
	if segment > segments-1 {
		segment = segments - 1
	}
	localT := uint8(scaled & 0xFF)

	return palette[segment].Blend(palette[segment+1], localT)
}

func saturatingAddU8(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
