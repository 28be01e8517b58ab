package transition_test

import (
	"testing"
	"time"

	"github.com/coreman2200/ledcube-engine/internal/color"
	"github.com/coreman2200/ledcube-engine/internal/transition"
	"github.com/stretchr/testify/assert"
)

func TestZeroDurationCompletesImmediately(t *testing.T) {
	tr := transition.NewU8(0)
	tr.Set(200, 0, 0)
	assert.False(t, tr.IsTransitioning())
	assert.Equal(t, uint8(200), tr.Current())
}

func TestSmoothTransitionMidpoint(t *testing.T) {
	tr := transition.NewU8(0)
	tr.Set(255, 100*time.Millisecond, 0)
	tr.Tick(50 * time.Millisecond)
	assert.InDelta(t, 127, int(tr.Current()), 2)
	assert.True(t, tr.IsTransitioning())

	tr.Tick(100 * time.Millisecond)
	assert.Equal(t, uint8(255), tr.Current())
	assert.False(t, tr.IsTransitioning())
}

func TestTransitionMonotonic(t *testing.T) {
	tr := transition.NewU8(10)
	tr.Set(200, 100*time.Millisecond, 0)
	prev := tr.Current()
	for ms := 0; ms <= 100; ms += 5 {
		tr.Tick(time.Duration(ms) * time.Millisecond)
		assert.GreaterOrEqual(t, tr.Current(), prev)
		prev = tr.Current()
	}
}

func TestClockSkewFailsSafe(t *testing.T) {
	tr := transition.NewU8(5)
	tr.Set(250, 100*time.Millisecond, 100*time.Millisecond)
	tr.Tick(0)
	assert.Equal(t, uint8(5), tr.Current())
}

func TestRgbTransition(t *testing.T) {
	tr := transition.New(color.Black, color.BlendRgb)
	tr.Set(color.Rgb{R: 255}, 100*time.Millisecond, 0)
	tr.Tick(100 * time.Millisecond)
	assert.Equal(t, color.Rgb{R: 255}, tr.Current())
}
