package intent_test

import (
	"testing"

	"github.com/coreman2200/ledcube-engine/internal/intent"
	"github.com/stretchr/testify/assert"
)

func TestChannelOverflowRejectsNewest(t *testing.T) {
	ch := intent.NewChannel(2)
	sender := ch.Sender()

	assert.True(t, sender.TrySend(intent.NewPowerOff()))
	assert.True(t, sender.TrySend(intent.NewPowerOff()))
	assert.False(t, sender.TrySend(intent.NewPowerOff()), "third send on a full capacity-2 channel must be rejected")

	receiver := ch.Receiver()
	drained := receiver.Drain()
	assert.Len(t, drained, 2)
	assert.Equal(t, 0, ch.Len())

	assert.True(t, sender.TrySend(intent.NewPowerOff()), "a send after drain must succeed")
}

func TestChannelFIFOOrder(t *testing.T) {
	ch := intent.NewChannel(4)
	sender := ch.Sender()
	receiver := ch.Receiver()

	b0 := uint8(10)
	b1 := uint8(20)
	b2 := uint8(30)
	sender.TrySend(intent.NewState(intent.StateIntent{Brightness: &b0}))
	sender.TrySend(intent.NewState(intent.StateIntent{Brightness: &b1}))
	sender.TrySend(intent.NewState(intent.StateIntent{Brightness: &b2}))

	first, ok := receiver.TryRecv()
	assert.True(t, ok)
	assert.Equal(t, b0, *first.State.Brightness)

	second, ok := receiver.TryRecv()
	assert.True(t, ok)
	assert.Equal(t, b1, *second.State.Brightness)
}

func TestTryRecvOnEmptyChannel(t *testing.T) {
	ch := intent.NewChannel(1)
	_, ok := ch.Receiver().TryRecv()
	assert.False(t, ok)
}

func TestEffectIDStringRoundTrip(t *testing.T) {
	for _, id := range []intent.EffectID{
		intent.EffectStaticColor,
		intent.EffectRainbow,
		intent.EffectVelvetAnalog,
		intent.EffectFlowAurora,
		intent.EffectFlowLavaLamp,
	} {
		parsed, ok := intent.ParseEffectID(id.String())
		assert.True(t, ok)
		assert.Equal(t, id, parsed)
	}
}
