// Package raster is a CPU implementation of the rendering collaborator. It
// keeps the resources a backend creates at startup and draws frames into an
// image.RGBA by running the fractal evaluator per pixel on a worker pool.
package raster

import (
	"fmt"
	"image/color"
	"math"
	"runtime"

	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/render"
)

// texture is an uploaded palette texture.
type texture struct {
	desc render.TextureDesc
}

func (t *texture) texel(x, y int) color.RGBA {
	x = clamp(x, 0, t.desc.Width-1)
	y = clamp(y, 0, t.desc.Height-1)
	i := (y*t.desc.Width + x) * 4
	p := t.desc.Pix
	return color.RGBA{R: p[i], G: p[i+1], B: p[i+2], A: p[i+3]}
}

// Sample reads the texel under horizontal coordinate x in [0, 1) on the
// middle row, nearest addressing.
func (t *texture) Sample(x float32) color.RGBA {
	fx := x * float32(t.desc.Width)
	return t.texel(int(math.Floor(float64(fx))), t.desc.Height/2)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Device owns the CPU-side resources. Create methods and Draw must be called
// from one goroutine.
type Device struct {
	geometries map[render.Handle]render.Geometry
	textures   map[render.Handle]*texture
	pipelines  map[render.Handle]render.PipelineDesc
	last       render.Handle
	pool       *pool
}

// NewDevice starts a device with the given number of rasterizer workers, or
// one per CPU if workers <= 0.
func NewDevice(workers int) *Device {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Device{
		geometries: make(map[render.Handle]render.Geometry),
		textures:   make(map[render.Handle]*texture),
		pipelines:  make(map[render.Handle]render.PipelineDesc),
		pool:       newPool(workers),
	}
}

// Close stops the workers.
func (d *Device) Close() {
	d.pool.close()
}

func (d *Device) nextHandle() render.Handle {
	d.last++
	return d.last
}

func (d *Device) CreateGeometry(g render.Geometry) (render.Handle, error) {
	if len(g.Indices)%3 != 0 {
		return 0, fmt.Errorf("geometry: %d indices is not a triangle list", len(g.Indices))
	}
	for _, i := range g.Indices {
		if int(i) >= len(g.Vertices) {
			return 0, fmt.Errorf("geometry: index %d out of range of %d vertices", i, len(g.Vertices))
		}
	}
	h := d.nextHandle()
	d.geometries[h] = render.Geometry{
		Vertices: append([]render.Vertex(nil), g.Vertices...),
		Indices:  append([]uint16(nil), g.Indices...),
	}
	return h, nil
}

func (d *Device) CreatePaletteTexture(desc render.TextureDesc) (render.Handle, error) {
	if err := desc.Validate(); err != nil {
		return 0, err
	}
	desc.Pix = append([]byte(nil), desc.Pix...)
	h := d.nextHandle()
	d.textures[h] = &texture{desc: desc}
	return h, nil
}

// CompilePipeline validates the layout. The CPU "program" is the coloring's
// Shade method, so there is nothing else to compile.
func (d *Device) CompilePipeline(desc render.PipelineDesc) (render.Handle, error) {
	if err := desc.Validate(); err != nil {
		return 0, fmt.Errorf("compile pipeline: %w", err)
	}
	h := d.nextHandle()
	d.pipelines[h] = desc
	logging.Logger().Info("pipeline compiled", "device", "cpu", "coloring", desc.Coloring.Name(), "workers", d.pool.workers)
	return h, nil
}
