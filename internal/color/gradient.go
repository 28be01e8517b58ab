package color

// GradientDirection selects which way a hue interpolation travels around
// the 0-255 hue circle.
type GradientDirection int

const (
	Forward GradientDirection = iota
	Backward
	Shortest
)

// FillGradient writes an HSV gradient between startColor at startPos and
// endColor at endPos into leds, converting to RGB as it goes. Ported from
// FastLED's 8.7/8.23/8.24 fixed-point gradient fill: no floating point, a
// single fixed-point accumulator per channel, one hsv2rgb call per pixel.
func FillGradient(leds []Rgb, startPos int, startColor Hsv, endPos int, endColor Hsv, direction GradientDirection) {
	if len(leds) == 0 {
		return
	}
	if endPos < startPos {
		startPos, endPos = endPos, startPos
		startColor, endColor = endColor, startColor
	}

	if endColor.Val == 0 || endColor.Sat == 0 {
		endColor.Hue = startColor.Hue
	}
	if startColor.Val == 0 || startColor.Sat == 0 {
		startColor.Hue = endColor.Hue
	}

	satDistance87 := (int32(endColor.Sat) - int32(startColor.Sat)) << 7
	valDistance87 := (int32(endColor.Val) - int32(startColor.Val)) << 7

	hueDelta := endColor.Hue - startColor.Hue

	actualDirection := direction
	if direction == Shortest {
		if hueDelta > 127 {
			actualDirection = Backward
		} else {
			actualDirection = Forward
		}
	}

	var hueDistance87 int32
	if actualDirection == Forward {
		hueDistance87 = int32(hueDelta) << 7
	} else {
		backwardDelta := uint8(256 - uint16(hueDelta))
		hueDistance87 = -(int32(backwardDelta) << 7)
	}

	pixelDistance := endPos - startPos
	if pixelDistance < 0 {
		pixelDistance = 0
	}
	divisor := int64(pixelDistance)
	if divisor == 0 {
		divisor = 1
	}

	hueDelta823 := (int64(hueDistance87) * 65536 / divisor) * 2
	satDelta823 := (int64(satDistance87) * 65536 / divisor) * 2
	valDelta823 := (int64(valDistance87) * 65536 / divisor) * 2

	hue824 := uint32(startColor.Hue) << 24
	sat824 := uint32(startColor.Sat) << 24
	val824 := uint32(startColor.Val) << 24

	last := len(leds) - 1
	if endPos > last {
		endPos = last
	}
	if startPos > endPos {
		return
	}

	for i := startPos; i <= endPos; i++ {
		leds[i] = HsvToRgb(Hsv{
			Hue: uint8(hue824 >> 24),
			Sat: uint8(sat824 >> 24),
			Val: uint8(val824 >> 24),
		})
		hue824 += uint32(hueDelta823)
		sat824 += uint32(satDelta823)
		val824 += uint32(valDelta823)
	}
}

// FillGradientThree splits leds into two halves and fills each with a
// two-stop forward gradient, producing a three-color sweep.
func FillGradientThree(leds []Rgb, c1, c2, c3 Hsv) {
	n := len(leds)
	if n == 0 {
		return
	}
	half := n / 2
	last := n - 1

	FillGradient(leds, 0, c1, half, c2, Forward)
	if last > half {
		FillGradient(leds, half, c2, last, c3, Forward)
	}
}
