// Command ledengine runs the light engine's render loop against a real or
// simulated LED strip, serving a development control surface alongside it.
// Grounded on ledcube/cmd/ledcube/main.go.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/ledcube-engine/internal/bounds"
	cfgpkg "github.com/coreman2200/ledcube-engine/internal/config"
	"github.com/coreman2200/ledcube-engine/internal/control"
	"github.com/coreman2200/ledcube-engine/internal/diagnostics"
	"github.com/coreman2200/ledcube-engine/internal/engine"
	"github.com/coreman2200/ledcube-engine/internal/filter"
	"github.com/coreman2200/ledcube-engine/internal/intent"
	"github.com/coreman2200/ledcube-engine/internal/led"
	"github.com/coreman2200/ledcube-engine/internal/scheduler"
)

const intentChannelCapacity = 32

func main() {
	var (
		pixelCount = flag.Int("n", 0, "strip length in pixels (0 = use config)")
		fps        = flag.Int("fps", 0, "target frames per second (0 = use config)")
		brightness = flag.Int("brightness", -1, "initial brightness 0..255 (-1 = use config)")
		driverName = flag.String("driver", "", "driver: spi | sim (empty = use config)")
		spiDev     = flag.String("spi-dev", "", "SPI device path (empty = use config)")
		colorOrder = flag.String("color", "", "LED color order, e.g. GRB (empty = use config)")
		bind       = flag.String("bind", "", "control surface bind address (empty = use config)")
		configPath = flag.String("config", "ledengine.yaml", "path to config YAML")
		simOnly    = flag.Bool("sim-only", false, "force the simulator driver regardless of -driver/config")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := cfgpkg.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; using defaults")
		cfg = cfgpkg.Default()
	}

	applyFlagOverrides(cfg, *pixelCount, *fps, *brightness, *driverName, *spiDev, *colorOrder, *bind)

	effectID, ok := intent.ParseEffectID(cfg.InitialEffect)
	if !ok {
		log.Warn().Str("effect", cfg.InitialEffect).Msg("unknown initial effect; defaulting to static")
		effectID = intent.EffectStaticColor
	}

	engineCfg := engine.LightEngineConfig{
		Effect: effectID,
		Bounds: bounds.RenderingBounds{Start: 0, End: uint16(cfg.PixelCount)},
		Filters: filter.Config{
			InitialBrightness: cfg.InitialBrightness,
			Brightness: filter.BrightnessConfig{
				MinBrightness: cfg.Filters.MinBrightness,
				Scale:         cfg.Filters.Scale,
			},
			ColorCorrection: cfg.Filters.ColorCorrection,
		},
		Timings: engine.TransitionTimings{
			FadeOut:     cfg.Timings.FadeOutDuration(),
			FadeIn:      cfg.Timings.FadeInDuration(),
			ColorChange: cfg.Timings.ColorChangeDuration(),
			Brightness:  cfg.Timings.BrightnessDuration(),
		},
		Brightness: cfg.InitialBrightness,
		Color:      cfg.InitialColor,
	}

	ch := intent.NewChannel(intentChannelCapacity)
	renderer := engine.NewRenderer(cfg.PixelCount, ch.Receiver(), engineCfg)

	driver, selected := selectDriver(cfg, *simOnly)

	ctrl := control.NewServer(ch.Sender(), intentChannelCapacity, cfg.PixelCount)
	httpSrv := startControlSurface(ctrl, cfg.ControlBind)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("driver", selected).
		Int("pixels", cfg.PixelCount).
		Int("fps", cfg.FPS).
		Str("bind", cfg.ControlBind).
		Msg("ledengine starting")

	runRenderLoop(ctx, renderer, driver, ctrl, cfg.FPS)

	log.Info().Msg("shutting down")
	_ = httpSrv.Close()
	_ = driver.Close()
}

func applyFlagOverrides(cfg *cfgpkg.Config, pixelCount, fps, brightness int, driverName, spiDev, colorOrder, bind string) {
	if pixelCount > 0 {
		cfg.PixelCount = pixelCount
	}
	if fps > 0 {
		cfg.FPS = fps
	}
	if brightness >= 0 {
		cfg.InitialBrightness = uint8(brightness)
	}
	if driverName != "" {
		cfg.Driver = driverName
	}
	if spiDev != "" {
		cfg.SPI.Dev = spiDev
	}
	if colorOrder != "" {
		cfg.ColorOrder = colorOrder
	}
	if bind != "" {
		cfg.ControlBind = bind
	}
}

// selectDriver builds the configured output driver, falling back to the
// simulator (with a warn log) on construction failure — the same
// switch-with-fallback shape as the teacher's driver selection.
func selectDriver(cfg *cfgpkg.Config, simOnly bool) (led.Driver, string) {
	selected := cfg.Driver
	if simOnly {
		selected = "sim"
	}

	switch selected {
	case "sim":
		return led.NewSimulator(cfg.PixelCount), "sim"

	case "spi":
		drv, err := led.NewSPI(cfg.SPI.Dev, cfg.PixelCount, cfg.ColorOrder, cfg.SPI.SpeedHz, cfg.SPI.ResetUs)
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("dev", cfg.SPI.Dev).
				Int("speed_hz", cfg.SPI.SpeedHz).
				Msg("SPI init failed; falling back to simulator")
			return led.NewSimulator(cfg.PixelCount), "sim"
		}
		return drv, "spi"

	default:
		log.Warn().Str("driver", selected).Msg("unknown driver; using simulator")
		return led.NewSimulator(cfg.PixelCount), "sim"
	}
}

func startControlSurface(ctrl *control.Server, bind string) *http.Server {
	srv := &http.Server{
		Addr:         bind,
		Handler:      ctrl.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("bind", bind).Msg("control surface starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("control surface crashed")
		}
	}()
	return srv
}

// runRenderLoop paces Render calls with a FrameScheduler, writes each frame
// to driver, mirrors it to the control surface's /frames stream, and logs a
// warn-level diagnostic on write failure. Runs until ctx is cancelled.
func runRenderLoop(ctx context.Context, renderer *engine.Renderer, driver led.Driver, ctrl *control.Server, fps int) {
	period := time.Second / time.Duration(max(1, fps))
	sched := scheduler.New(period, 0)
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		now := time.Since(start)
		result := sched.Next(now)
		if result.Sleep > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(result.Sleep):
			}
			continue
		}
		if result.Overdue {
			log.Debug().Msg("render loop overdue")
		}

		frame := renderer.Render(time.Since(start))
		if err := driver.Write(frame); err != nil {
			log.Warn().Err(err).Msg("driver write failed")
			ctrl.PushDiagnostic(diagnostics.Diagnostic{
				Severity: diagnostics.Warn,
				Code:     "driver_write_failed",
				Summary:  "driver write failed",
				Detail:   err.Error(),
			})
		}
		ctrl.BroadcastFrame(frame)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
