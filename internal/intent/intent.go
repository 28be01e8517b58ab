package intent

import (
	"time"

	"github.com/coreman2200/ledcube-engine/internal/bounds"
	"github.com/coreman2200/ledcube-engine/internal/color"
)

// EffectID names one of the engine's closed set of supported effects. It is
// declared here, rather than in the effect package, so that intents can
// name an effect without the intent package importing effect's render
// machinery.
type EffectID uint8

const (
	EffectStaticColor EffectID = iota
	EffectRainbow
	EffectVelvetAnalog
	EffectFlowAurora
	EffectFlowLavaLamp
)

// String names an EffectID the way intents arriving over the wire (the
// control surface's JSON messages) reference effects by name.
func (e EffectID) String() string {
	switch e {
	case EffectStaticColor:
		return "static"
	case EffectRainbow:
		return "rainbow"
	case EffectVelvetAnalog:
		return "velvet-analog"
	case EffectFlowAurora:
		return "flow-aurora"
	case EffectFlowLavaLamp:
		return "flow-lava-lamp"
	default:
		return "unknown"
	}
}

// ParseEffectID is the inverse of EffectID.String, used by the control
// surface to decode incoming JSON.
func ParseEffectID(s string) (EffectID, bool) {
	switch s {
	case "static":
		return EffectStaticColor, true
	case "rainbow":
		return EffectRainbow, true
	case "velvet-analog":
		return EffectVelvetAnalog, true
	case "flow-aurora":
		return EffectFlowAurora, true
	case "flow-lava-lamp":
		return EffectFlowLavaLamp, true
	default:
		return 0, false
	}
}

// FilterConfig mirrors the renderer's filter configuration, carried as a
// side-effect payload on a State intent rather than an animated transition.
type FilterConfig struct {
	MinBrightness   uint8
	Scale           uint8
	ColorCorrection color.Rgb
}

// StateIntent names a subset of LightState fields to change. Any field left
// nil/zero-optional is left untouched by the fold.
type StateIntent struct {
	Brightness        *uint8
	Color             *color.Rgb
	ColorTemperature  *uint16
	Effect            *EffectID
	Powered           *bool
	Bounds            *bounds.RenderingBounds
	FilterConfig      *FilterConfig
}

// LightChangeIntent is the sum type producers send: either a State change
// or the PowerOff priority override.
type LightChangeIntent struct {
	PowerOff bool
	State    *StateIntent
}

// NewPowerOff builds the PowerOff priority intent.
func NewPowerOff() LightChangeIntent {
	return LightChangeIntent{PowerOff: true}
}

// NewState builds a State intent carrying s.
func NewState(s StateIntent) LightChangeIntent {
	return LightChangeIntent{State: &s}
}

// Instant is the engine's monotonic time type, a duration since an
// arbitrary caller-chosen epoch, matching transition.Instant.
type Instant = time.Duration
