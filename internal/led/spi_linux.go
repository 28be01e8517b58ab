//go:build linux

package led

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"unsafe"

	"github.com/coreman2200/ledcube-engine/internal/color"
)

const (
	spiIOCWriteMode        = 0x40016b01
	spiIOCWriteBitsPerWord = 0x40016b03
	spiIOCWriteMaxSpeedHz  = 0x40046b04
)

// SPI drives a WS2812-class strip over a Linux spidev device, encoding each
// data bit as a three-bit SPI pattern (1 -> 0b110, 0 -> 0b100) via a
// precomputed byte-to-3-byte lookup table, followed by a reset-latch pad of
// zero bytes.
//
// Grounded on ledcube/internal/led/spi_linux.go.
type SPI struct {
	mu         sync.Mutex
	f          *os.File
	count      int
	colorOrder [3]byte
	resetUs    int
	lut        [256][3]byte
}

// NewSPI opens dev (e.g. "/dev/spidev0.0") and prepares an encoder for
// count pixels. speedHz in the 2.4-3.2 MHz range works with this 3x
// expansion scheme; colorOrder is a 3-letter permutation like "GRB".
func NewSPI(dev string, count int, colorOrder string, speedHz, resetUs int) (*SPI, error) {
	if count <= 0 {
		return nil, fmt.Errorf("led: invalid strip length %d", count)
	}
	if speedHz <= 0 {
		speedHz = 2400000
	}
	if resetUs <= 0 {
		resetUs = 300
	}

	f, err := os.OpenFile(dev, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("led: open spidev: %w", err)
	}

	mode := byte(0)
	if _, _, e := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), spiIOCWriteMode, uintptr(unsafe.Pointer(&mode))); e != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("led: set SPI mode: %v", e)
	}
	bpw := byte(8)
	if _, _, e := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), spiIOCWriteBitsPerWord, uintptr(unsafe.Pointer(&bpw))); e != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("led: set bits-per-word: %v", e)
	}
	if _, _, e := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), spiIOCWriteMaxSpeedHz, uintptr(unsafe.Pointer(&speedHz))); e != 0 {
		_ = f.Close()
		return nil, fmt.Errorf("led: set SPI speed: %v", e)
	}

	s := &SPI{
		f:          f,
		count:      count,
		resetUs:    resetUs,
		colorOrder: [3]byte{'G', 'R', 'B'},
	}
	if len(colorOrder) == 3 {
		s.colorOrder = [3]byte{colorOrder[0], colorOrder[1], colorOrder[2]}
	}
	buildBitExpansionLUT(&s.lut)

	return s, nil
}

// buildBitExpansionLUT fills lut[v] with the 3 SPI-encoded bytes for input
// byte v, expanding each bit MSB-first into a 3-bit tristate cell.
func buildBitExpansionLUT(lut *[256][3]byte) {
	for v := 0; v < 256; v++ {
		var out uint32
		for i := 7; i >= 0; i-- {
			bit := (v >> i) & 1
			tri := uint32(0b100)
			if bit == 1 {
				tri = 0b110
			}
			out = (out << 3) | tri
		}
		lut[v][0] = byte((out >> 16) & 0xFF)
		lut[v][1] = byte((out >> 8) & 0xFF)
		lut[v][2] = byte(out & 0xFF)
	}
}

func (s *SPI) encodePixel(px color.Rgb, dst []byte) {
	channels := [3]byte{px.R, px.G, px.B}
	var ordered [3]byte
	for i, ch := range s.colorOrder {
		switch ch {
		case 'R':
			ordered[i] = channels[0]
		case 'G':
			ordered[i] = channels[1]
		case 'B':
			ordered[i] = channels[2]
		default:
			ordered[i] = channels[1]
		}
	}
	off := 0
	for _, v := range ordered {
		dst[off+0] = s.lut[v][0]
		dst[off+1] = s.lut[v][1]
		dst[off+2] = s.lut[v][2]
		off += 3
	}
}

// Write encodes pixels (len(pixels) must equal the configured count) and
// writes the encoded stream followed by a reset-latch pad.
func (s *SPI) Write(pixels []color.Rgb) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return fmt.Errorf("led: SPI already closed")
	}
	if len(pixels) != s.count {
		return fmt.Errorf("led: frame length %d does not match strip length %d", len(pixels), s.count)
	}

	enc := make([]byte, s.count*9)
	for i, px := range pixels {
		s.encodePixel(px, enc[i*9:i*9+9])
	}
	if _, err := s.f.Write(enc); err != nil {
		return fmt.Errorf("led: spi write: %w", err)
	}

	resetBytes := (s.resetUs + 2) / 3
	if resetBytes < 128 {
		resetBytes = 128
	}
	if _, err := s.f.Write(make([]byte, resetBytes)); err != nil {
		return fmt.Errorf("led: spi latch: %w", err)
	}
	return nil
}

// Close releases the underlying spidev file.
func (s *SPI) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
