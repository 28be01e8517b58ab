// Package bounds implements the virtual-to-physical LED index mapping: the
// live subrange of the frame buffer that effects actually render into.
package bounds

import "github.com/coreman2200/ledcube-engine/internal/color"

// RenderingBounds names the live region [Start, End) of a frame buffer.
// Pixels outside this range are always zero.
type RenderingBounds struct {
	Start, End uint16
}

// Count returns the number of live pixels.
func (b RenderingBounds) Count() uint16 {
	if b.End < b.Start {
		return 0
	}
	return b.End - b.Start
}

// Center returns the index, relative to Start, of the live region's
// midpoint, rounding up on an odd count.
func (b RenderingBounds) Center() uint16 {
	count := b.Count()
	centerLen := count / 2
	if count%2 != 0 {
		centerLen++
	}
	if centerLen <= count {
		return centerLen
	}
	return count
}

// Bounded returns the live slice of leds described by b.
func Bounded(leds []color.Rgb, b RenderingBounds) []color.Rgb {
	if int(b.End) > len(leds) {
		return leds[b.Start:]
	}
	return leds[b.Start:b.End]
}

// CenterOf returns the midpoint index of an arbitrary slice, rounding up on
// an odd length — the same rule RenderingBounds.Center applies to a live
// region, used by effects that mirror around the slice they were given
// rather than around the whole frame.
func CenterOf[T any](leds []T) int {
	count := len(leds)
	centerLen := count / 2
	if count%2 != 0 {
		centerLen++
	}
	if centerLen <= count {
		return centerLen
	}
	return count
}
