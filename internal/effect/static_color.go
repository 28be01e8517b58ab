package effect

import (
	"github.com/coreman2200/ledcube-engine/internal/color"
)

// StaticColor fills every live pixel with the current target color. It is
// a precise-color effect: the output is meant to be the exact requested
// color, so the color-correction filter is permitted to adjust it.
//
// Grounded on original_source/lib/src/mode/static_color.rs.
type StaticColor struct{}

// NewStaticColor constructs a StaticColor effect. The seed color is not
// stored — StaticColor always renders whatever targetColor Render
// receives, which the engine keeps current via its own color transition.
func NewStaticColor(seed color.Rgb) *StaticColor {
	return &StaticColor{}
}

func (s *StaticColor) Tick(now Instant) {}

func (s *StaticColor) Render(buf []color.Rgb, targetColor color.Rgb, now Instant) {
	for i := range buf {
		buf[i] = targetColor
	}
}

func (s *StaticColor) SetColor(c color.Rgb) {}

func (s *StaticColor) RequiresPreciseColors() bool {
	return true
}
