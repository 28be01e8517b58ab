package effect_test

import (
	"testing"
	"time"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/effect"
	"github.com/coreman2200/ledcube-engine/internal/intent"
	"github.com/stretchr/testify/assert"
)

func TestStaticColorFillsBuffer(t *testing.T) {
	slot := effect.NewSlot(intent.EffectStaticColor, color.Black)
	buf := make([]color.Rgb, 5)
	red := color.Rgb{R: 255}
	slot.Tick(0)
	slot.Render(buf, red, 0)
	for _, px := range buf {
		assert.Equal(t, red, px)
	}
	assert.True(t, slot.RequiresPreciseColors())
}

func TestRainbowIsNotPreciseColors(t *testing.T) {
	slot := effect.NewSlot(intent.EffectRainbow, color.Black)
	assert.False(t, slot.RequiresPreciseColors())

	buf := make([]color.Rgb, 12)
	slot.Tick(0)
	slot.Render(buf, color.Rgb{R: 1, G: 2, B: 3}, 0)
	// mirrored: first pixel and last pixel must match.
	assert.Equal(t, buf[0], buf[len(buf)-1])
}

func TestVelvetAnalogIsPreciseColors(t *testing.T) {
	slot := effect.NewSlot(intent.EffectVelvetAnalog, color.Rgb{R: 200, G: 50, B: 10})
	assert.True(t, slot.RequiresPreciseColors())
	buf := make([]color.Rgb, 20)
	slot.Tick(0)
	slot.Render(buf, color.Rgb{R: 200, G: 50, B: 10}, 0)
	nonBlack := false
	for _, px := range buf {
		if px != color.Black {
			nonBlack = true
			break
		}
	}
	assert.True(t, nonBlack)
}

func TestVelvetAnalogTracksTargetColorEachRender(t *testing.T) {
	slot := effect.NewSlot(intent.EffectVelvetAnalog, color.Rgb{R: 200, G: 50, B: 10})
	buf := make([]color.Rgb, 20)

	slot.Tick(0)
	slot.Render(buf, color.Rgb{R: 200, G: 50, B: 10}, 0)
	warm := append([]color.Rgb(nil), buf...)

	// SetColor is a no-op hint, same as StaticColor: VelvetAnalog has no
	// internal anchor of its own, so passing a different targetColor to
	// Render (as the renderer's own color transition ramps) must change
	// the rendered palette on the very next call, with no lag.
	slot.SetColor(color.Rgb{R: 10, G: 50, B: 200})
	slot.Tick(0)
	slot.Render(buf, color.Rgb{R: 10, G: 50, B: 200}, 0)

	assert.NotEqual(t, warm, buf)
}

func TestFlowVariantsAreNotPreciseColors(t *testing.T) {
	for _, id := range []intent.EffectID{intent.EffectFlowAurora, intent.EffectFlowLavaLamp} {
		slot := effect.NewSlot(id, color.Black)
		assert.False(t, slot.RequiresPreciseColors())
		buf := make([]color.Rgb, 30)
		slot.Tick(10 * time.Millisecond)
		slot.Render(buf, color.Black, 10*time.Millisecond)
		anyNonBlack := false
		for _, px := range buf {
			if px != color.Black {
				anyNonBlack = true
			}
		}
		assert.True(t, anyNonBlack)
	}
}

func TestSlotResetRebuildsEffect(t *testing.T) {
	slot := effect.NewSlot(intent.EffectStaticColor, color.Rgb{R: 1})
	slot.Reset(color.Rgb{R: 9})
	buf := make([]color.Rgb, 3)
	slot.Render(buf, color.Rgb{R: 9}, 0)
	assert.Equal(t, color.Rgb{R: 9}, buf[0])
}

func TestEmptyBufferEffectsDoNotPanic(t *testing.T) {
	for _, id := range []intent.EffectID{
		intent.EffectStaticColor,
		intent.EffectRainbow,
		intent.EffectVelvetAnalog,
		intent.EffectFlowAurora,
		intent.EffectFlowLavaLamp,
	} {
		slot := effect.NewSlot(id, color.Black)
		assert.NotPanics(t, func() {
			slot.Tick(0)
			slot.Render(nil, color.Black, 0)
		})
	}
}
