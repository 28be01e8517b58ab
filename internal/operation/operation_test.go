package operation_test

import (
	"testing"
	"time"

	"github.com/coreman2200/ledcube-engine/internal/operation"
	"github.com/stretchr/testify/assert"
)

func TestDropBottomOnOverflow(t *testing.T) {
	s := operation.NewStack(2)
	s.Push(operation.SetBrightness(1, time.Millisecond))
	s.Push(operation.SetBrightness(2, time.Millisecond))
	s.Push(operation.SetBrightness(3, time.Millisecond)) // evicts brightness=1

	first, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint8(2), first.Brightness, "drop-bottom must evict the oldest entry, not the newest")

	second, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint8(3), second.Brightness)

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := operation.NewStack(4)
	s.Push(operation.PowerOff())
	op, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, operation.KindPowerOff, op.Kind)
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := operation.NewStack(4)
	s.Push(operation.PowerOff())
	s.Push(operation.FadeIn(time.Millisecond))
	s.Clear()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Pop()
	assert.False(t, ok)
}

func TestFIFOOrderAmongQueuedOperations(t *testing.T) {
	s := operation.NewStack(4)
	s.Push(operation.FadeOut(time.Millisecond))
	s.Push(operation.SwitchEffect(0))
	s.Push(operation.FadeIn(time.Millisecond))

	first, _ := s.Pop()
	second, _ := s.Pop()
	third, _ := s.Pop()
	assert.Equal(t, operation.KindFadeOut, first.Kind)
	assert.Equal(t, operation.KindSwitchEffect, second.Kind)
	assert.Equal(t, operation.KindFadeIn, third.Kind)
}
