package effect

import (
	"github.com/coreman2200/ledcube-engine/internal/bounds"
	"github.com/coreman2200/ledcube-engine/internal/color"
)

const (
	rainbowDefaultCycle = 12000 // ms
	rainbowHueStep      = 60
)

// Rainbow sweeps a three-stop hue gradient across the first half of the
// live range and mirrors it into the second half, cycling hue over time.
// It ignores the target color entirely, so it is not a precise-color
// effect — the color-correction filter never touches its output.
//
// Grounded on original_source/lib/src/mode/rainbow.rs.
type Rainbow struct {
	cycleMS    int64
	value      uint8
	saturation uint8
}

// NewRainbow constructs a Rainbow effect with the reference design's
// default cycle duration, full saturation and value.
func NewRainbow() *Rainbow {
	return &Rainbow{cycleMS: rainbowDefaultCycle, value: 255, saturation: 255}
}

func (r *Rainbow) Tick(now Instant) {}

func (r *Rainbow) Render(buf []color.Rgb, targetColor color.Rgb, now Instant) {
	if len(buf) == 0 {
		return
	}

	cycleMS := r.cycleMS
	if cycleMS <= 0 {
		cycleMS = 1
	}
	nowMS := now.Milliseconds()
	progressMS := nowMS % cycleMS
	baseHue := uint8((progressMS * 255) / cycleMS)

	c1 := color.Hsv{Hue: baseHue, Sat: r.saturation, Val: r.value}
	c2 := color.Hsv{Hue: baseHue + rainbowHueStep, Sat: r.saturation, Val: r.value}
	c3 := color.Hsv{Hue: baseHue + 2*rainbowHueStep, Sat: r.saturation, Val: r.value}

	centerLen := bounds.CenterOf(buf)
	color.FillGradientThree(buf[:centerLen], c1, c2, c3)
	color.MirrorHalf(buf)
}

func (r *Rainbow) SetColor(c color.Rgb) {}

func (r *Rainbow) RequiresPreciseColors() bool {
	return false
}
