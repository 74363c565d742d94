package raster

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/render"
)

// ChunkLength is the side of the square tiles handed to workers.
const ChunkLength int = 128

// maxExtent bounds window coordinates before integer conversion; deep zoom
// pushes the quad corners far off screen.
const maxExtent = 1 << 24

// triangle is one transformed triangle: window-space corners plus the
// untransformed quad positions interpolated across it.
type triangle struct {
	win  [3]mgl32.Vec2
	pos  [3]mgl32.Vec2
	area float32
}

func edge(a, b, p mgl32.Vec2) float32 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// bounds is the pixel rectangle touched by the triangle, relative to the
// destination origin.
func (t *triangle) bounds() image.Rectangle {
	minX, minY := t.win[0][0], t.win[0][1]
	maxX, maxY := minX, minY
	for _, v := range t.win[1:] {
		minX, maxX = min(minX, v[0]), max(maxX, v[0])
		minY, maxY = min(minY, v[1]), max(maxY, v[1])
	}
	px := func(v float32) int { return int(mgl32.Clamp(v, -maxExtent, maxExtent)) }
	return image.Rect(px(minX)-1, px(minY)-1, px(maxX)+1, px(maxY)+1)
}

// frame is everything workers read while drawing one frame. It is not
// mutated once chunks are queued.
type frame struct {
	dst       *image.RGBA
	tris      []triangle
	coloring  fractal.Coloring
	numColors int32
	tex       fractal.Sampler
	done      sync.WaitGroup
}

// toWindow maps a clip-space position to window pixels, y down.
func toWindow(clip mgl32.Vec4, size mgl32.Vec2) mgl32.Vec2 {
	x, y := clip[0]/clip[3], clip[1]/clip[3]
	return mgl32.Vec2{(x + 1) / 2 * size[0], (1 - y) / 2 * size[1]}
}

func (d *Device) triangles(g render.Geometry, m mgl32.Mat4, size mgl32.Vec2) []triangle {
	tris := make([]triangle, 0, len(g.Indices)/3)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		var t triangle
		for k := 0; k < 3; k++ {
			pos := g.Vertices[g.Indices[i+k]].Pos
			t.pos[k] = pos
			t.win[k] = toWindow(m.Mul4x1(mgl32.Vec4{pos[0], pos[1], 0, 1}), size)
		}
		t.area = edge(t.win[0], t.win[1], t.win[2])
		if t.area == 0 {
			continue
		}
		tris = append(tris, t)
	}
	return tris
}

// Draw renders f into dst. Pixels the geometry does not cover are cleared to
// opaque black.
func (d *Device) Draw(dst *image.RGBA, f render.Frame) error {
	desc, ok := d.pipelines[f.Pipeline]
	if !ok {
		return fmt.Errorf("pipeline %d: %w", f.Pipeline, render.ErrUnknownHandle)
	}
	g, ok := d.geometries[f.Geometry]
	if !ok {
		return fmt.Errorf("geometry %d: %w", f.Geometry, render.ErrUnknownHandle)
	}
	fr := &frame{
		dst:       dst,
		coloring:  desc.Coloring,
		numColors: f.Uniforms.NumColors,
	}
	if len(f.Textures) > 0 {
		tex, ok := d.textures[f.Textures[0]]
		if !ok {
			return fmt.Errorf("texture %d: %w", f.Textures[0], render.ErrUnknownHandle)
		}
		fr.tex = tex
	}

	b := dst.Bounds()
	size := mgl32.Vec2{float32(b.Dx()), float32(b.Dy())}
	fr.tris = d.triangles(g, f.Uniforms.Transform, size)

	var chunks int
	for y := b.Min.Y; y < b.Max.Y; y += ChunkLength {
		for x := b.Min.X; x < b.Max.X; x += ChunkLength {
			r := image.Rect(x, y, x+ChunkLength, y+ChunkLength).Intersect(b)
			fr.done.Add(1)
			if !d.pool.send(&chunkWork{rect: r, frame: fr}) {
				fr.done.Done()
				fr.done.Wait()
				return errPoolClosed
			}
			chunks++
		}
	}
	fr.done.Wait()
	logging.Logger().Debug("frame drawn", "chunks", chunks, "triangles", len(fr.tris))
	return nil
}
