package engine_test

import (
	"testing"
	"time"

	"github.com/coreman2200/ledcube-engine/internal/bounds"
	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/engine"
	"github.com/coreman2200/ledcube-engine/internal/filter"
	"github.com/coreman2200/ledcube-engine/internal/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, leds int) (*engine.Renderer, *intent.Channel) {
	t.Helper()
	ch := intent.NewChannel(8)
	cfg := engine.LightEngineConfig{
		Effect: intent.EffectStaticColor,
		Bounds: bounds.RenderingBounds{Start: 0, End: uint16(leds)},
		Filters: filter.Config{
			InitialBrightness: 255,
			Brightness:        filter.BrightnessConfig{Scale: 255},
			ColorCorrection:   color.Rgb{R: 255, G: 255, B: 255},
		},
		Timings: engine.TransitionTimings{
			FadeOut:     50 * time.Millisecond,
			FadeIn:      50 * time.Millisecond,
			ColorChange: 50 * time.Millisecond,
			Brightness:  50 * time.Millisecond,
		},
		Brightness: 255,
		Color:      color.Rgb{R: 10, G: 20, B: 30},
	}
	return engine.NewRenderer(leds, ch.Receiver(), cfg), ch
}

func TestInitialRenderIsStaticColor(t *testing.T) {
	r, _ := newTestRenderer(t, 10)
	frame := r.Render(0)
	require.Len(t, frame, 10)
	for _, px := range frame {
		assert.NotEqual(t, color.Black, px)
	}
	assert.True(t, r.Powered())
}

func TestPowerOffFadesBrightnessToZero(t *testing.T) {
	r, ch := newTestRenderer(t, 5)
	r.Render(0)

	sender := ch.Sender()
	require.True(t, sender.TrySend(intent.NewPowerOff()))

	r.Render(0)
	// mid-fade: not yet fully off, not yet marked unpowered.
	mid := r.Render(25 * time.Millisecond)
	anyNonBlack := false
	for _, px := range mid {
		if px != color.Black {
			anyNonBlack = true
		}
	}
	assert.True(t, anyNonBlack)

	final := r.Render(60 * time.Millisecond)
	for _, px := range final {
		assert.Equal(t, color.Black, px)
	}
	// the FadeOut's completion is detected and applied to state.powered
	// at the start of the *next* render call, one frame after the
	// brightness transition itself first samples to zero — see
	// SPEC_FULL.md 4.J's fixed step order.
	r.Render(61 * time.Millisecond)
	assert.False(t, r.Powered())
}

func TestBoundsAreAppliedAsSideEffectImmediately(t *testing.T) {
	r, ch := newTestRenderer(t, 10)
	r.Render(0)

	newBounds := bounds.RenderingBounds{Start: 2, End: 6}
	sender := ch.Sender()
	require.True(t, sender.TrySend(intent.NewState(intent.StateIntent{Bounds: &newBounds})))

	frame := r.Render(0)
	assert.Equal(t, newBounds, r.Bounds())
	assert.Equal(t, color.Black, frame[0])
	assert.Equal(t, color.Black, frame[9])
}

func TestSwitchEffectAppliesInstantly(t *testing.T) {
	r, ch := newTestRenderer(t, 10)
	r.Render(0)

	rainbow := intent.EffectRainbow
	sender := ch.Sender()
	require.True(t, sender.TrySend(intent.NewState(intent.StateIntent{Effect: &rainbow})))

	r.Render(0)
	assert.Equal(t, intent.EffectRainbow, r.CurrentEffect())
}

func TestPowerOffWinsOverLaterStateInSameBatch(t *testing.T) {
	r, ch := newTestRenderer(t, 5)
	r.Render(0)

	sender := ch.Sender()
	brightnessTarget := uint8(200)
	require.True(t, sender.TrySend(intent.NewPowerOff()))
	require.True(t, sender.TrySend(intent.NewState(intent.StateIntent{Brightness: &brightnessTarget})))

	r.Render(0)
	final := r.Render(60 * time.Millisecond)
	for _, px := range final {
		assert.Equal(t, color.Black, px)
	}
}

func TestStateAfterPowerOffCompletesInALaterBatchStaysBlack(t *testing.T) {
	r, ch := newTestRenderer(t, 5)
	r.Render(0)

	sender := ch.Sender()
	require.True(t, sender.TrySend(intent.NewPowerOff()))

	r.Render(0)
	r.Render(60 * time.Millisecond)
	// one more frame for the FadeOut's completion to be detected and
	// state.powered flipped false, per the one-frame lag documented in
	// TestPowerOffFadesBrightnessToZero.
	r.Render(61 * time.Millisecond)
	require.False(t, r.Powered())

	// A separate, later batch with no Powered field at all must not be
	// able to raise the output back up.
	brightnessTarget := uint8(200)
	require.True(t, sender.TrySend(intent.NewState(intent.StateIntent{Brightness: &brightnessTarget})))

	frame := r.Render(200 * time.Millisecond)
	for _, px := range frame {
		assert.Equal(t, color.Black, px)
	}
	assert.False(t, r.Powered())
}

func TestColorChangeIsIdempotentAtCurrentValue(t *testing.T) {
	r, ch := newTestRenderer(t, 3)
	r.Render(0)

	same := color.Rgb{R: 10, G: 20, B: 30}
	sender := ch.Sender()
	require.True(t, sender.TrySend(intent.NewState(intent.StateIntent{Color: &same})))

	before := r.Render(0)
	after := r.Render(1 * time.Millisecond)
	assert.Equal(t, before[0], after[0])
}
