// Package led defines the engine's output driver contract and its
// concrete implementations: a raw Linux SPI bit-banger, a periph.io/nrzled
// hardware path, and an in-memory simulator for tests and previews.
//
// Grounded on ledcube/internal/led/driver.go.
package led

import "github.com/coreman2200/ledcube-engine/internal/color"

// Driver abstracts an LED strip output sink.
type Driver interface {
	// Write pushes one rendered frame to the strip.
	Write(pixels []color.Rgb) error
	// Close releases any underlying resources.
	Close() error
}
