// Package filter implements the output filter chain applied to a rendered
// frame before it reaches the LED driver: color correction, brightness,
// then gamma. Grounded on original_source/src/filter/mod.rs.
package filter

import (
	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/math8"
)

// Config bundles the static configuration needed to build a Processor.
type Config struct {
	InitialBrightness uint8
	Brightness        BrightnessConfig
	ColorCorrection   color.Rgb
}

// Processor owns the brightness and color-correction filter state and
// applies the fixed three-stage chain — color correction, then
// brightness, then gamma — to a rendered frame.
type Processor struct {
	Brightness      *Brightness
	ColorCorrection ColorCorrection
}

// NewProcessor constructs a Processor from cfg.
func NewProcessor(cfg Config) *Processor {
	return &Processor{
		Brightness:      NewBrightness(cfg.InitialBrightness, cfg.Brightness),
		ColorCorrection: NewColorCorrection(cfg.ColorCorrection),
	}
}

// Tick advances the brightness transition. Color correction has no time
// component of its own.
func (p *Processor) Tick(now Instant) {
	p.Brightness.Tick(now)
}

// Apply runs the full chain over buf in place: color correction only
// applies to effects that render the caller's requested color precisely
// (RequiresPreciseColors) — a fixed-palette effect like Rainbow or Flow
// is exempt, since its output was never meant to track white_point.
// Brightness and gamma always run. While powered is false every channel
// is forced to 0 with no transitions running, per the renderer's power
// invariant — color correction and gamma are skipped entirely since they
// have nothing left to act on.
func (p *Processor) Apply(buf []color.Rgb, requiresPreciseColors, powered bool) {
	if !powered {
		for i := range buf {
			buf[i] = color.Black
		}
		return
	}
	if requiresPreciseColors {
		p.ColorCorrection.Apply(buf)
	}
	p.Brightness.Apply(buf, powered)
	applyGamma(buf)
}

func applyGamma(buf []color.Rgb) {
	for i, px := range buf {
		buf[i] = color.Rgb{
			R: math8.GammaLUT[px.R],
			G: math8.GammaLUT[px.G],
			B: math8.GammaLUT[px.B],
		}
	}
}
