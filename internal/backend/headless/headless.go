// Package headless runs the viewer without a window: frames are rasterized on
// the CPU into an in-memory image on a fixed tick.
package headless

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/input"
	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/raster"
	"github.com/joshvictor1024/mandelview/internal/render"
	"github.com/joshvictor1024/mandelview/internal/viewer"
)

// Config controls the headless runner.
type Config struct {
	Width, Height int
	Hz            int
	// Ticks stops the run after N frames; 0 runs until ctx is done.
	Ticks   uint64
	Workers int
	// Hold, when set, is pressed with the primary button for the whole run.
	Hold *mgl32.Vec2
}

// Backend renders into Image.
type Backend struct {
	*raster.Device
	img *image.RGBA
}

func New(width, height, workers int) *Backend {
	return &Backend{
		Device: raster.NewDevice(workers),
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Image is the last submitted frame.
func (b *Backend) Image() *image.RGBA { return b.img }

func (b *Backend) ScreenSize() mgl32.Vec2 {
	r := b.img.Bounds()
	return mgl32.Vec2{float32(r.Dx()), float32(r.Dy())}
}

func (b *Backend) SubmitFrame(f render.Frame) error {
	return b.Draw(b.img, f)
}

// Run drives a viewer at cfg.Hz until ctx is done or cfg.Ticks frames have
// been drawn.
func Run(ctx context.Context, c fractal.Coloring, cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	b := New(cfg.Width, cfg.Height, cfg.Workers)
	defer b.Close()

	v, err := viewer.New(b, c)
	if err != nil {
		return err
	}
	if cfg.Hold != nil {
		v.PointerDown(input.ButtonPrimary, cfg.Hold[0], cfg.Hold[1])
	}
	logging.Logger().Info("headless run", "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "hz", cfg.Hz, "ticks", cfg.Ticks)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := v.Tick(); err != nil {
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				logging.Logger().Info("headless done", "ticks", tick, "status", v.Status())
				return nil
			}
		}
	}
}
