package led

import (
	"fmt"
	"image"
	stdcolor "image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/ledcube-engine/internal/color"
)

// refreshRate matches the teacher's RefreshRate constant (800 is a WS2812
// nrzled clock multiplier, not a literal Hz figure).
const refreshRate physic.Frequency = 800

// PeriphSPI drives a strip through periph.io's nrzled driver, falling back
// to a console "screen" drawer when no SPI port can be found (e.g. running
// off-target). Adapted from the teacher's 2D panel drawer
// (model.LedStructure.initLedDrawer, spi.InitLedRenderer) down to a 1D
// strip.
type PeriphSPI struct {
	drawer display.Drawer
	count  int
	usedSPI bool
}

// NewPeriphSPI opens the named SPI port (empty string autodetects) and
// configures an nrzled driver for count pixels.
func NewPeriphSPI(portName string, count int) (*PeriphSPI, error) {
	if count <= 0 {
		return nil, fmt.Errorf("led: invalid strip length %d", count)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("led: periph host init: %w", err)
	}

	p := &PeriphSPI{count: count}

	port, err := spireg.Open(portName)
	if err != nil {
		p.drawer = screen.New(100)
		return p, nil
	}

	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      (refreshRate*3 + 100) * physic.KiloHertz,
	}
	d, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		return nil, fmt.Errorf("led: nrzled init: %w", err)
	}
	if err := d.Halt(); err != nil {
		return nil, fmt.Errorf("led: nrzled halt: %w", err)
	}

	p.drawer = d
	p.usedSPI = true
	return p, nil
}

// UsedHardwareSPI reports whether a real SPI port was found, as opposed to
// the console fallback.
func (p *PeriphSPI) UsedHardwareSPI() bool {
	return p.usedSPI
}

func (p *PeriphSPI) Write(pixels []color.Rgb) error {
	if len(pixels) != p.count {
		return fmt.Errorf("led: frame length %d does not match strip length %d", len(pixels), p.count)
	}
	return p.drawer.Draw(p.drawer.Bounds(), stripImage(pixels), image.Point{})
}

func (p *PeriphSPI) Close() error {
	return p.drawer.Halt()
}

// stripImage renders a 1D strip as a single-row NRGBA image, the shape
// every periph.io display.Drawer expects. Grounded on the teacher's
// LedStructure.Image/Pane.Image, narrowed from a 2D panel to one row.
func stripImage(pixels []color.Rgb) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(pixels), 1))
	for x, px := range pixels {
		img.SetNRGBA(x, 0, stdcolor.NRGBA{R: px.R, G: px.G, B: px.B, A: 255})
	}
	return img
}
