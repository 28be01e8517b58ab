package filter

import (
	"time"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/math8"
	"github.com/coreman2200/ledcube-engine/internal/transition"
)

// Instant is the engine's monotonic time type.
type Instant = time.Duration

// BrightnessConfig configures the brightness filter's floor, post-gain
// scale, and an optional response curve applied before scaling.
type BrightnessConfig struct {
	MinBrightness uint8
	Scale         uint8
	Adjust        math8.U8Adjuster
}

// Brightness drives an effective brightness transition and applies it
// channel-wise to a frame. Grounded on
// original_source/lib/src/effect/brightness.rs.
type Brightness struct {
	minBrightness uint8
	scale         uint8
	adjust        math8.U8Adjuster
	level         transition.ValueTransition[uint8]
}

// NewBrightness constructs a Brightness filter starting at initial.
func NewBrightness(initial uint8, cfg BrightnessConfig) *Brightness {
	return &Brightness{
		minBrightness: cfg.MinBrightness,
		scale:         cfg.Scale,
		adjust:        cfg.Adjust,
		level:         transition.NewU8(initial),
	}
}

// Reconfigure updates the floor, scale and adjust curve without disturbing
// any transition already in flight.
func (b *Brightness) Reconfigure(cfg BrightnessConfig) {
	b.minBrightness = cfg.MinBrightness
	b.scale = cfg.Scale
	b.adjust = cfg.Adjust
}

// SetMinBrightness updates the floor alone (used when a State intent
// carries a filter configuration).
func (b *Brightness) SetMinBrightness(v uint8) {
	b.minBrightness = v
}

// SetScale updates the post-gain scale alone (used when a State intent
// carries a filter configuration).
func (b *Brightness) SetScale(v uint8) {
	b.scale = v
}

// Set begins a transition towards brightness, first applying the floor and
// scale correction to the target — the transition animates towards the
// corrected value, not the raw requested one.
func (b *Brightness) Set(target uint8, duration time.Duration, now Instant) {
	corrected := target
	if corrected > b.minBrightness {
		corrected -= b.minBrightness
	} else {
		corrected = 0
	}
	corrected = math8.Scale8(corrected, b.scale)
	corrected = saturatingAdd(corrected, b.minBrightness)
	b.level.Set(corrected, duration, now)
}

// SetUncorrected begins a transition towards target, bypassing the floor
// and scale correction entirely — used for PowerOff, which must be able to
// reach true zero regardless of MinBrightness.
func (b *Brightness) SetUncorrected(target uint8, duration time.Duration, now Instant) {
	b.level.Set(target, duration, now)
}

// IsTransitioning reports whether a brightness transition is in flight.
func (b *Brightness) IsTransitioning() bool {
	return b.level.IsTransitioning()
}

// Tick advances the brightness transition.
func (b *Brightness) Tick(now Instant) {
	b.level.Tick(now)
}

// Current returns the brightness level's current interpolated value.
func (b *Brightness) Current() uint8 {
	return b.level.Current()
}

// Apply scales every pixel in buf by the current brightness level in
// place, short-circuiting at the extremes: full brightness leaves buf
// untouched, zero brightness blanks it without touching the adjust curve
// or per-channel scaling at all. While powered is false the strip is
// forced black outright, regardless of the brightness level in flight.
func (b *Brightness) Apply(buf []color.Rgb, powered bool) {
	level := b.level.Current()
	if !powered || level == 0 {
		for i := range buf {
			buf[i] = color.Black
		}
		return
	}
	if level == 255 {
		return
	}
	if b.adjust != nil {
		level = b.adjust(level)
	}
	for i, px := range buf {
		buf[i] = color.Rgb{
			R: math8.Scale8(px.R, level),
			G: math8.Scale8(px.G, level),
			B: math8.Scale8(px.B, level),
		}
	}
}

func saturatingAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
