// Package viewer is the frame driver. It owns the view state and the
// interaction state machine, creates the static GPU resources once, and
// submits one draw per tick.
package viewer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/input"
	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/palette"
	"github.com/joshvictor1024/mandelview/internal/render"
	"github.com/joshvictor1024/mandelview/internal/view"
)

// Viewer must be used from the event loop goroutine only.
type Viewer struct {
	backend  render.Backend
	pipeline render.Handle
	geometry render.Handle
	textures []render.Handle

	numColors int32
	state     view.State
	machine   input.Machine
}

// New creates the quad, the palette texture (if the coloring samples one)
// and the pipeline. Any failure is fatal for the viewer.
func New(b render.Backend, c fractal.Coloring) (*Viewer, error) {
	v := &Viewer{backend: b, state: view.Initial()}

	var err error
	if v.geometry, err = b.CreateGeometry(render.Quad()); err != nil {
		return nil, fmt.Errorf("create geometry: %w", err)
	}

	if c.UsesPalette() {
		pal, err := palette.New(palette.NumColors)
		if err != nil {
			return nil, fmt.Errorf("build palette: %w", err)
		}
		logging.Logger().Debug("palette built", "colors", pal.Len(), "pix", pal.Pix())
		tex, err := b.CreatePaletteTexture(render.TextureDesc{
			Width:  pal.Len(),
			Height: 1,
			Pix:    pal.Pix(),
			Filter: render.FilterNearest,
		})
		if err != nil {
			return nil, fmt.Errorf("create palette texture: %w", err)
		}
		v.textures = []render.Handle{tex}
		v.numColors = int32(pal.Len())
	}

	if v.pipeline, err = b.CompilePipeline(render.FractalPipeline(c)); err != nil {
		return nil, fmt.Errorf("compile %s pipeline: %w", c.Name(), err)
	}
	return v, nil
}

func (v *Viewer) State() view.State { return v.state }

func (v *Viewer) Action() input.Action { return v.machine.Action() }

func (v *Viewer) PointerDown(b input.Button, x, y float32) {
	v.machine.PointerDown(b, mgl32.Vec2{x, y}, v.backend.ScreenSize())
}

func (v *Viewer) PointerUp(b input.Button, x, y float32) {
	v.machine.PointerUp(b, mgl32.Vec2{x, y}, v.backend.ScreenSize())
}

func (v *Viewer) PointerMove(x, y float32) {
	v.machine.PointerMove(mgl32.Vec2{x, y}, v.backend.ScreenSize())
}

func (v *Viewer) Touch(phase input.TouchPhase, id uint64, x, y float32) {
	v.machine.Touch(phase, id, mgl32.Vec2{x, y}, v.backend.ScreenSize())
}

// Uniforms derives this frame's uniforms from the current view state.
func (v *Viewer) Uniforms(screen mgl32.Vec2) render.Uniforms {
	return render.Uniforms{
		Transform: v.state.Transform(screen),
		NumColors: v.numColors,
	}
}

// Tick advances the zoom by one frame and draws it.
func (v *Viewer) Tick() error {
	v.machine.Step(&v.state)
	return v.backend.SubmitFrame(render.Frame{
		Pipeline: v.pipeline,
		Geometry: v.geometry,
		Textures: v.textures,
		Uniforms: v.Uniforms(v.backend.ScreenSize()),
	})
}

// Status is a one-line summary for HUDs and window titles.
func (v *Viewer) Status() string {
	return fmt.Sprintf("zoom %.3g  center (%.6f, %.6f)  %s",
		v.state.Zoom, v.state.Center[0], v.state.Center[1], v.machine.Action())
}
