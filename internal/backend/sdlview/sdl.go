// Package sdlview shows the viewer in an SDL2 window. Frames are rasterized on
// the CPU and streamed into a texture each tick.
package sdlview

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/raster"
	"github.com/joshvictor1024/mandelview/internal/render"
	"github.com/joshvictor1024/mandelview/internal/viewer"
)

type Config struct {
	Title         string
	Width, Height int
	Workers       int
	// HUD puts the viewer status in the window title.
	HUD bool
}

// Backend implements render.Backend on an SDL renderer.
type Backend struct {
	*raster.Device
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	img      *image.RGBA
}

func sdlInit(cfg Config) (*sdl.Window, *sdl.Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER | sdl.INIT_EVENTS); err != nil {
		return nil, nil, err
	}
	sdl.StopTextInput()

	window, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height), sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		sdl.Quit()
		return nil, nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, nil, err
	}
	return window, renderer, nil
}

func newBackend(cfg Config) (*Backend, error) {
	window, renderer, err := sdlInit(cfg)
	if err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	b := &Backend{
		Device:   raster.NewDevice(cfg.Workers),
		window:   window,
		renderer: renderer,
	}
	if err := b.resize(); err != nil {
		b.close()
		return nil, err
	}
	return b, nil
}

func (b *Backend) close() {
	b.Device.Close()
	if b.texture != nil {
		b.texture.Destroy()
	}
	b.renderer.Destroy()
	b.window.Destroy()
	sdl.Quit()
}

// drawableSize is the renderer output size, which differs from the window
// size on high-DPI displays.
func (b *Backend) drawableSize() (int32, int32) {
	w, h, err := b.renderer.GetOutputSize()
	if err != nil {
		return b.window.GetSize()
	}
	return w, h
}

// resize recreates the streaming texture and framebuffer to match the
// drawable size.
func (b *Backend) resize() error {
	w, h := b.drawableSize()
	if w <= 0 || h <= 0 {
		return nil
	}
	if b.img != nil && b.img.Rect.Dx() == int(w) && b.img.Rect.Dy() == int(h) {
		return nil
	}
	// ABGR8888 is R, G, B, A in memory on little-endian hosts, matching image.RGBA.
	t, err := b.renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING, // only textures with TEXTUREACCESS_STREAMING can be locked
		w, h,
	)
	if err != nil {
		return fmt.Errorf("create texture %dx%d: %w", w, h, err)
	}
	if b.texture != nil {
		b.texture.Destroy()
	}
	b.texture = t
	b.img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	logging.Logger().Info("window resized", "width", w, "height", h)
	return nil
}

// ScreenSize reports the size in window coordinates, the space mouse and
// touch events are delivered in.
func (b *Backend) ScreenSize() mgl32.Vec2 {
	w, h := b.window.GetSize()
	return mgl32.Vec2{float32(w), float32(h)}
}

func (b *Backend) SubmitFrame(f render.Frame) error {
	if err := b.resize(); err != nil {
		return err
	}
	return b.present(f)
}

// present draws f into the framebuffer and shows it. Nothing is drawn while
// the drawable has no area yet, as for a window created minimised.
func (b *Backend) present(f render.Frame) error {
	if b.img == nil {
		return nil
	}
	if err := b.Draw(b.img, f); err != nil {
		return err
	}

	data, pitch, err := b.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("lock texture: %w", err)
	}
	stride := b.img.Stride
	for y := 0; y < b.img.Rect.Dy(); y++ {
		copy(data[y*pitch:y*pitch+stride], b.img.Pix[y*stride:(y+1)*stride])
	}
	b.texture.Unlock()

	b.renderer.SetDrawColor(0, 0, 0, 255)
	b.renderer.Clear()
	if err := b.renderer.Copy(b.texture, nil, nil); err != nil {
		return fmt.Errorf("copy texture: %w", err)
	}
	b.renderer.Present()
	return nil
}

// Run opens the window and pumps events until it is closed or Escape is
// pressed. It must be called from the main goroutine.
func Run(c fractal.Coloring, cfg Config) error {
	b, err := newBackend(cfg)
	if err != nil {
		return err
	}
	defer b.close()

	v, err := viewer.New(b, c)
	if err != nil {
		return err
	}
	logging.Logger().Info("sdl window open", "coloring", c.Name(), "width", cfg.Width, "height", cfg.Height)

	for {
		for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
			if quit := dispatch(v, e, b.ScreenSize()); quit {
				logging.Logger().Info("quit", "status", v.Status())
				return nil
			}
		}
		if err := v.Tick(); err != nil {
			return err
		}
		if cfg.HUD {
			b.window.SetTitle(cfg.Title + "  " + v.Status())
		}
	}
}
