package effect

import (
	"time"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/math8"
)

const (
	velvetDefaultBreathePeriod = 14000 * time.Millisecond
	velvetDefaultDriftPeriod   = 27000 * time.Millisecond
	velvetHueShift             = 10
	velvetBreatheMinScale      = 235
	velvetBreatheMaxScale      = 255
)

// VelvetAnalog is a calm, "premium" gradient derived from a single anchor
// color: a gentle breathing brightness envelope and a slow drift of the
// gradient midpoint across the strip. It is color-sensitive (the whole
// palette derives from the anchor), so it is a precise-color effect. The
// anchor color is the renderer-owned targetColor passed to Render each
// frame, the same as StaticColor — VelvetAnalog keeps no color state of
// its own, so a SetColor operation's animated ramp (driven by the
// renderer's own color transition) is reflected here automatically.
//
// Grounded on original_source/lib/src/mode/velvet_analog.rs.
type VelvetAnalog struct {
	breathePeriod time.Duration
	driftPeriod   time.Duration
}

// NewVelvetAnalog constructs a VelvetAnalog effect. The seed color is not
// stored — VelvetAnalog always renders whatever targetColor Render
// receives.
func NewVelvetAnalog(seed color.Rgb) *VelvetAnalog {
	return &VelvetAnalog{
		breathePeriod: velvetDefaultBreathePeriod,
		driftPeriod:   velvetDefaultDriftPeriod,
	}
}

func (v *VelvetAnalog) Tick(now Instant) {}

func (v *VelvetAnalog) SetColor(c color.Rgb) {}

func (v *VelvetAnalog) RequiresPreciseColors() bool {
	return true
}

func (v *VelvetAnalog) Render(buf []color.Rgb, targetColor color.Rgb, now Instant) {
	if len(buf) == 0 {
		return
	}

	breathe := v.breatheScale(now)
	anchor := color.RgbToHsv(targetColor)
	c1, c2, c3 := velvetPalette(anchor, breathe)

	last := len(buf) - 1
	mid := v.midpoint(now, buf)

	color.FillGradient(buf, 0, c1, mid, c2, color.Shortest)
	color.FillGradient(buf, mid, c2, last, c3, color.Shortest)
}

func (v *VelvetAnalog) breatheScale(now Instant) uint8 {
	periodMS := v.breathePeriod.Milliseconds()
	if periodMS <= 0 {
		periodMS = 1
	}
	progressMS := now.Milliseconds() % periodMS
	p := uint8((progressMS * 255) / periodMS)
	if p&0x80 != 0 {
		p = 255 - p
	}
	e := math8.EaseInOutQuad(p << 1)
	return math8.Blend8(velvetBreatheMinScale, velvetBreatheMaxScale, e)
}

func (v *VelvetAnalog) midpoint(now Instant, leds []color.Rgb) int {
	if len(leds) <= 1 {
		return 0
	}
	last := len(leds) - 1

	rng := len(leds) / 10
	if rng < 1 {
		rng = 1
	}
	if rng > 12 {
		rng = 12
	}

	periodMS := v.driftPeriod.Milliseconds()
	if periodMS <= 0 {
		periodMS = 1
	}
	progressMS := now.Milliseconds() % periodMS
	p := uint8((progressMS * 255) / periodMS)

	var tri uint8
	if p&0x80 != 0 {
		tri = 255 - p
	} else {
		tri = p
	}
	tri2 := tri << 1
	e := math8.EaseInOutQuad(tri2)

	offset := (int(e) - 128) * rng / 128
	baseMid := len(leds) / 2

	mid := baseMid + offset
	if mid < 0 {
		mid = 0
	}
	if mid > last {
		mid = last
	}
	return mid
}

func velvetPalette(anchor color.Hsv, breatheScale uint8) (color.Hsv, color.Hsv, color.Hsv) {
	baseSat := anchor.Sat
	if baseSat > 220 {
		baseSat = 220
	}

	shadow := color.Hsv{
		Hue: anchor.Hue - velvetHueShift,
		Sat: math8.Scale8(baseSat, 170),
		Val: math8.Scale8(anchor.Val, math8.Scale8(120, breatheScale)),
	}
	body := color.Hsv{
		Hue: anchor.Hue,
		Sat: math8.Scale8(baseSat, 200),
		Val: math8.Scale8(anchor.Val, math8.Scale8(200, breatheScale)),
	}
	highlight := color.Hsv{
		Hue: anchor.Hue + velvetHueShift,
		Sat: math8.Scale8(baseSat, 150),
		Val: math8.Scale8(anchor.Val, breatheScale),
	}
	return shadow, body, highlight
}
