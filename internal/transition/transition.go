// Package transition implements a generic time-based interpolator used by
// the brightness filter and the renderer's color state. It never
// allocates after construction and never consults a clock itself — the
// caller supplies "now" on every sample, exactly as the render pipeline
// supplies it on every tick.
package transition

import (
	"time"

	"github.com/coreman2200/ledcube-engine/internal/math8"
)

// Instant is the engine's notion of time: a monotonic duration since an
// arbitrary caller-chosen epoch.
type Instant = time.Duration

// Blender blends a towards b by an 8-bit progress amount.
type Blender[T any] func(a, b T, amountOfB uint8) T

// ValueTransition interpolates a value of type T over a caller-specified
// duration, sampled by repeated calls to Tick.
type ValueTransition[T any] struct {
	blend     Blender[T]
	current   T
	source    T
	target    *T
	duration  time.Duration
	startTime Instant
}

// New constructs a transition holding initial as its current value, using
// blend to interpolate between source and target on each Tick.
func New[T any](initial T, blend Blender[T]) ValueTransition[T] {
	return ValueTransition[T]{
		blend:   blend,
		current: initial,
		source:  initial,
	}
}

// NewU8 builds a transition over a plain uint8 channel.
func NewU8(initial uint8) ValueTransition[uint8] {
	return New(initial, math8.Blend8)
}

// Current returns the most recently computed interpolated value.
func (v *ValueTransition[T]) Current() T {
	return v.current
}

// IsTransitioning reports whether a target is still pending completion.
func (v *ValueTransition[T]) IsTransitioning() bool {
	return v.target != nil
}

// Set begins transitioning towards value over duration, starting at
// startTime. A zero duration snaps immediately to value and clears any
// pending target, matching the spec's zero-duration-completes-immediately
// rule.
func (v *ValueTransition[T]) Set(value T, duration time.Duration, startTime Instant) {
	v.startTime = startTime
	if duration <= 0 {
		v.current = value
		v.source = value
		v.target = nil
		v.duration = 0
		return
	}
	v.source = v.current
	target := value
	v.target = &target
	v.duration = duration
}

// Tick advances the transition to now, updating Current(). Calling Tick
// before startTime (clock skew) leaves current at source — the fail-safe
// behavior the spec requires.
func (v *ValueTransition[T]) Tick(now Instant) {
	if v.target == nil {
		return
	}
	target := *v.target

	if now < v.startTime {
		v.current = v.source
		return
	}

	elapsed := now - v.startTime
	if elapsed >= v.duration {
		v.current = target
		v.source = target
		v.target = nil
		return
	}

	progress := math8.Progress8(elapsed, v.duration)
	v.current = v.blend(v.source, target, progress)
}
