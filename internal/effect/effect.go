// Package effect implements the closed family of pixel generators the
// renderer dispatches to. Every effect honors the same small contract;
// EffectSlot selects among them by tag rather than holding an open-ended
// interface value constructed anywhere else in the program, keeping the
// effect set closed and auditable the way the reference design intends.
package effect

import (
	"time"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/intent"
)

// Instant is the engine's monotonic time type.
type Instant = time.Duration

// Effect is the capability contract every pixel generator honors.
type Effect interface {
	// Tick advances the effect's internal phase to now.
	Tick(now Instant)
	// Render writes exactly len(buf) pixels, given the current target color.
	Render(buf []color.Rgb, targetColor color.Rgb, now Instant)
	// SetColor hints a new anchor color to color-sensitive effects; effects
	// that derive everything from the targetColor argument to Render
	// instead may ignore it.
	SetColor(c color.Rgb)
	// RequiresPreciseColors reports whether the color-correction filter is
	// permitted to alter this effect's output. Go has no associated
	// consts on interfaces, so this is the idiomatic substitute for the
	// reference design's compile-time PRECISE_COLORS flag — see
	// DESIGN.md.
	RequiresPreciseColors() bool
}

// Slot is a tagged variant carrying exactly one concrete Effect, selected
// by EffectID. Dispatch is a single interface call through the one
// concrete value the slot holds — this is the nearest faithful Go analog
// to the reference design's static tagged-variant dispatch: the set of
// possible underlying types is closed to the five constructors below, and
// Slot itself never accepts an externally built Effect.
type Slot struct {
	id     intent.EffectID
	effect Effect
}

// NewSlot constructs a fresh Slot for id, seeded with color.
func NewSlot(id intent.EffectID, seed color.Rgb) Slot {
	return Slot{id: id, effect: newEffect(id, seed)}
}

func newEffect(id intent.EffectID, seed color.Rgb) Effect {
	switch id {
	case intent.EffectRainbow:
		return NewRainbow()
	case intent.EffectVelvetAnalog:
		return NewVelvetAnalog(seed)
	case intent.EffectFlowAurora:
		return NewFlow(VariantAurora)
	case intent.EffectFlowLavaLamp:
		return NewFlow(VariantLavaLamp)
	default:
		return NewStaticColor(seed)
	}
}

// ID returns the EffectID this slot was constructed for.
func (s Slot) ID() intent.EffectID {
	return s.id
}

// Reset discards any running state by reconstructing a fresh effect value
// for the same ID, seeded with color.
func (s *Slot) Reset(seed color.Rgb) {
	s.effect = newEffect(s.id, seed)
}

func (s *Slot) Tick(now Instant) {
	s.effect.Tick(now)
}

func (s *Slot) Render(buf []color.Rgb, targetColor color.Rgb, now Instant) {
	s.effect.Render(buf, targetColor, now)
}

func (s *Slot) SetColor(c color.Rgb) {
	s.effect.SetColor(c)
}

func (s Slot) RequiresPreciseColors() bool {
	return s.effect.RequiresPreciseColors()
}

// IsTransitioning reports whether the held effect has its own pending
// internal transition. Effects without an IsTransitioning method report
// false; none of the effects in this package has one.
func (s Slot) IsTransitioning() bool {
	if t, ok := s.effect.(interface{ IsTransitioning() bool }); ok {
		return t.IsTransitioning()
	}
	return false
}
