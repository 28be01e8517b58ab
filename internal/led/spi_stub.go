//go:build !linux

package led

import (
	"fmt"

	"github.com/coreman2200/ledcube-engine/internal/color"
)

// SPI is a non-functional stand-in on platforms without spidev. Grounded
// on ledcube/internal/led/spi_stub.go.
type SPI struct{}

// NewSPI always fails on non-Linux platforms.
func NewSPI(dev string, count int, colorOrder string, speedHz, resetUs int) (*SPI, error) {
	return nil, fmt.Errorf("led: SPI driver not supported on this platform")
}

func (s *SPI) Write(pixels []color.Rgb) error {
	return fmt.Errorf("led: SPI driver not supported on this platform")
}

func (s *SPI) Close() error { return nil }
