// Package engine implements the light engine: the renderer that folds
// intents into operations, drives the operation stack and state
// transitions, and dispatches to the current effect through the filter
// chain. Grounded on original_source/lib/src/engine.rs.
package engine

import (
	"time"

	"github.com/coreman2200/ledcube-engine/internal/bounds"
	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/effect"
	"github.com/coreman2200/ledcube-engine/internal/filter"
	"github.com/coreman2200/ledcube-engine/internal/intent"
	"github.com/coreman2200/ledcube-engine/internal/operation"
	"github.com/coreman2200/ledcube-engine/internal/transition"
)

// Instant is the engine's monotonic time type.
type Instant = time.Duration

// operationStackCapacity matches the reference design's OperationStack<10>.
const operationStackCapacity = 10

// TransitionTimings configures how long each kind of animated change takes.
type TransitionTimings struct {
	FadeOut      time.Duration
	FadeIn       time.Duration
	ColorChange  time.Duration
	Brightness   time.Duration
}

// LightEngineConfig is the static configuration a Renderer is built from.
type LightEngineConfig struct {
	Effect     intent.EffectID
	Bounds     bounds.RenderingBounds
	Filters    filter.Config
	Timings    TransitionTimings
	Brightness uint8
	Color      color.Rgb
}

// lightState is the renderer's authoritative view of where the light is
// headed: the stored set-points plus the effect slot and power phase.
// The actually-sampled, animated values live in the color transition and
// the filter's brightness transition.
type lightState struct {
	color            transition.ValueTransition[color.Rgb]
	brightnessTarget uint8
	effectSlot       effect.Slot
	powered          bool
}

// Renderer is the light engine's main orchestrator: it owns the frame
// buffer, the pending-operation stack, the filter chain and the current
// effect, and produces one rendered frame per call to Render.
type Renderer struct {
	intents intent.Receiver
	timings TransitionTimings
	bounds  bounds.RenderingBounds

	state lightState
	stack *operation.Stack

	filters *filter.Processor
	frame   []color.Rgb

	// opStarted tracks whether the operation currently at the front of
	// the stack has already had its transition started. Without this,
	// checking "is the front op complete" on the very same tick it was
	// pushed would read a not-yet-transitioning filter/color and treat a
	// brand new operation as vacuously already done — see DESIGN.md.
	opStarted bool
}

// NewRenderer constructs a Renderer with a frame buffer of maxLEDs pixels,
// reading intents from recv and starting from cfg's configuration.
func NewRenderer(maxLEDs int, recv intent.Receiver, cfg LightEngineConfig) *Renderer {
	return &Renderer{
		intents: recv,
		timings: cfg.Timings,
		bounds:  cfg.Bounds,
		state: lightState{
			color:            transition.New(cfg.Color, color.BlendRgb),
			brightnessTarget: cfg.Brightness,
			effectSlot:       effect.NewSlot(cfg.Effect, cfg.Color),
			powered:          cfg.Brightness > 0,
		},
		stack:   operation.NewStack(operationStackCapacity),
		filters: filter.NewProcessor(cfg.Filters),
		frame:   make([]color.Rgb, maxLEDs),
	}
}

// Render runs one full frame cycle and returns the frame buffer. The
// returned slice aliases the Renderer's internal buffer and is only valid
// until the next call to Render.
func (r *Renderer) Render(now Instant) []color.Rgb {
	r.processIntents()
	r.advanceOperations(now)

	r.state.color.Tick(now)
	r.filters.Tick(now)

	for i := range r.frame {
		r.frame[i] = color.Black
	}

	live := bounds.Bounded(r.frame, r.bounds)
	r.state.effectSlot.Tick(now)
	r.state.effectSlot.Render(live, r.state.color.Current(), now)
	r.filters.Apply(live, r.state.effectSlot.RequiresPreciseColors(), r.state.powered)

	return r.frame
}

// processIntents drains the intent channel and folds every pending intent
// into the operation stack and any immediate side effects, in arrival
// order. A PowerOff intent, wherever it appears in the batch, wins: it
// clears anything pushed earlier in the same fold and every State intent
// that follows it is reduced to its non-animated side effects only.
func (r *Renderer) processIntents() {
	batch := r.intents.Drain()
	powerOffSeen := false

	for _, in := range batch {
		if in.PowerOff {
			r.schedulePowerOff()
			powerOffSeen = true
			continue
		}
		if in.State == nil {
			continue
		}
		r.foldState(*in.State, powerOffSeen)
		if in.State.Powered != nil && !*in.State.Powered {
			powerOffSeen = true
		}
	}
}

func (r *Renderer) schedulePowerOff() {
	r.stack.Clear()
	r.stack.Push(operation.FadeOut(r.timings.FadeOut))
}

// foldState applies one State intent. When afterPowerOff is true only the
// non-animated side effects (bounds, filter config) are applied — any
// field that would otherwise animate is discarded for this batch.
func (r *Renderer) foldState(s intent.StateIntent, afterPowerOff bool) {
	if s.Powered != nil {
		if *s.Powered {
			if !r.state.powered {
				if !afterPowerOff {
					r.stack.Push(operation.FadeIn(r.timings.FadeIn))
				}
				r.state.powered = true
			}
		} else {
			r.schedulePowerOff()
		}
	}

	if s.Bounds != nil {
		r.bounds = *s.Bounds
	}

	if s.FilterConfig != nil {
		r.filters.ColorCorrection.Set(s.FilterConfig.ColorCorrection)
		r.filters.Brightness.SetMinBrightness(s.FilterConfig.MinBrightness)
		r.filters.Brightness.SetScale(s.FilterConfig.Scale)
	}

	// Every field below animates the light. None of them may start
	// anything while the light is off (or in the same fold as a PowerOff
	// that just turned it off) — the only operation allowed to run while
	// !powered is the FadeIn pushed above, which already flips powered to
	// true before this point when it applies.
	if afterPowerOff || !r.state.powered {
		return
	}

	if s.Effect != nil && *s.Effect != r.state.effectSlot.ID() {
		r.stack.Push(operation.SwitchEffect(*s.Effect))
	}

	target, hasColor := resolveColor(s)
	if hasColor && target != r.state.color.Current() {
		r.stack.Push(operation.SetColor(target, r.timings.ColorChange))
	}

	if s.Brightness != nil && *s.Brightness != r.state.brightnessTarget {
		r.stack.Push(operation.SetBrightness(*s.Brightness, r.timings.Brightness))
	}
}

func resolveColor(s intent.StateIntent) (color.Rgb, bool) {
	if s.Color != nil {
		return *s.Color, true
	}
	if s.ColorTemperature != nil {
		return color.KelvinToRGB(*s.ColorTemperature), true
	}
	return color.Rgb{}, false
}

// advanceOperations starts the operation at the front of the stack the
// first tick it becomes current, then waits for it to complete. Once
// complete, its terminal effect is applied and it is popped, and the next
// operation (if any) is started within the same call — an operation with
// zero duration completes the instant it starts, so a run of
// zero-duration/SwitchEffect operations all advance in one Render call.
func (r *Renderer) advanceOperations(now Instant) {
	for {
		current, ok := r.stack.Peek()
		if !ok {
			r.opStarted = false
			return
		}
		if !r.opStarted {
			r.startOperation(current, now)
			r.opStarted = true
		}
		if !r.operationComplete(current) {
			return
		}
		r.applyTerminalEffect(current)
		r.stack.Pop()
		r.opStarted = false
	}
}

func (r *Renderer) operationComplete(op operation.Operation) bool {
	switch op.Kind {
	case operation.KindSetBrightness, operation.KindFadeOut, operation.KindFadeIn, operation.KindPowerOff:
		return !r.filters.Brightness.IsTransitioning()
	case operation.KindSetColor:
		return !r.state.color.IsTransitioning()
	case operation.KindSwitchEffect:
		return true
	default:
		return true
	}
}

func (r *Renderer) applyTerminalEffect(op operation.Operation) {
	switch op.Kind {
	case operation.KindSetBrightness:
		r.state.brightnessTarget = op.Brightness
	case operation.KindSwitchEffect:
		r.setEffect(op.EffectID)
	case operation.KindFadeOut, operation.KindPowerOff:
		r.state.powered = false
	}
}

func (r *Renderer) setEffect(id intent.EffectID) {
	r.state.effectSlot = effect.NewSlot(id, r.state.color.Current())
}

func (r *Renderer) startOperation(op operation.Operation, now Instant) {
	switch op.Kind {
	case operation.KindSetBrightness:
		r.filters.Brightness.Set(op.Brightness, op.Duration, now)
	case operation.KindSetColor:
		r.state.color.Set(op.Color, op.Duration, now)
		r.state.effectSlot.SetColor(op.Color)
	case operation.KindFadeOut, operation.KindPowerOff:
		r.filters.Brightness.SetUncorrected(0, op.Duration, now)
	case operation.KindFadeIn:
		r.filters.Brightness.Set(r.state.brightnessTarget, op.Duration, now)
	case operation.KindSwitchEffect:
		// instant, nothing to start
	}
}

// Powered reports whether the light is currently on, fading out, or fully
// off — used by diagnostics and the control surface.
func (r *Renderer) Powered() bool {
	return r.state.powered
}

// CurrentEffect reports the effect currently selected.
func (r *Renderer) CurrentEffect() intent.EffectID {
	return r.state.effectSlot.ID()
}

// Bounds reports the currently configured rendering bounds.
func (r *Renderer) Bounds() bounds.RenderingBounds {
	return r.bounds
}
