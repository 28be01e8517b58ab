package filter

import (
	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/math8"
)

// ColorCorrection applies a fixed per-channel scale factor to every pixel,
// used to compensate for LED-type color bias (e.g. warmer or cooler
// whites). Grounded on
// original_source/lib/src/effect/color_correction.rs.
type ColorCorrection struct {
	factors color.Rgb
}

// NewColorCorrection constructs a ColorCorrection with the given factors.
// color.Rgb{255,255,255} is the identity (no correction).
func NewColorCorrection(factors color.Rgb) ColorCorrection {
	return ColorCorrection{factors: factors}
}

// IsActive reports whether any channel factor deviates from 255 (identity).
func (c ColorCorrection) IsActive() bool {
	return c.factors.R != 255 || c.factors.G != 255 || c.factors.B != 255
}

// Set updates the correction factors.
func (c *ColorCorrection) Set(factors color.Rgb) {
	c.factors = factors
}

// Apply corrects every pixel in buf in place. A no-op when inactive.
func (c ColorCorrection) Apply(buf []color.Rgb) {
	if !c.IsActive() {
		return
	}
	for i, px := range buf {
		buf[i] = color.Rgb{
			R: math8.Scale8(px.R, c.factors.R),
			G: math8.Scale8(px.G, c.factors.G),
			B: math8.Scale8(px.B, c.factors.B),
		}
	}
}
