package led

import (
	"sync"

	"github.com/coreman2200/ledcube-engine/internal/color"
)

// Simulator is an in-memory Driver that records the most recently written
// frame, for tests and for the control surface's frame preview. Grounded
// on ledcube/internal/driver/fake/driver.go.
type Simulator struct {
	mu      sync.RWMutex
	frame   []color.Rgb
	writes  int
}

// NewSimulator constructs a Simulator sized for count pixels.
func NewSimulator(count int) *Simulator {
	return &Simulator{frame: make([]color.Rgb, count)}
}

func (s *Simulator) Write(pixels []color.Rgb) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.frame, pixels)
	s.writes++
	return nil
}

func (s *Simulator) Close() error { return nil }

// Frame returns a copy of the most recently written frame.
func (s *Simulator) Frame() []color.Rgb {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]color.Rgb, len(s.frame))
	copy(out, s.frame)
	return out
}

// Writes reports how many frames have been written so far.
func (s *Simulator) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
