package raster

import (
	"errors"
	"image"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/fractal"
	"github.com/joshvictor1024/mandelview/internal/render"
	"github.com/joshvictor1024/mandelview/pkg/types"
)

var errPoolClosed = errors.New("raster: device closed")

type chunkWork struct {
	rect  image.Rectangle
	frame *frame
}

type pool struct {
	cq      *types.ControlledQueue[*chunkWork]
	workers int
	wg      sync.WaitGroup
}

func newPool(workers int) *pool {
	p := &pool{
		cq:      types.NewControlledQueue[*chunkWork](),
		workers: workers,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.processChunkWork()
	}
	return p
}

func (p *pool) send(cw *chunkWork) bool {
	return p.cq.Send(cw)
}

// blocks until all workers have exited
func (p *pool) close() {
	p.cq.Close()
	p.wg.Wait()
}

func (p *pool) processChunkWork() {
	defer p.wg.Done()
	for {
		cw, ok := p.cq.Recv()
		if !ok {
			return
		}
		drawChunk(cw)
		cw.frame.done.Done()
	}
}

var background = [4]byte{0, 0, 0, 255}

func drawChunk(cw *chunkWork) {
	fr := cw.frame
	dst := fr.dst
	for y := cw.rect.Min.Y; y < cw.rect.Max.Y; y++ {
		row := dst.Pix[dst.PixOffset(cw.rect.Min.X, y):dst.PixOffset(cw.rect.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], background[:])
		}
	}
	for i := range fr.tris {
		drawTriangle(fr, &fr.tris[i], cw.rect)
	}
}

// drawTriangle shades every pixel of r whose center lies inside t.
func drawTriangle(fr *frame, t *triangle, r image.Rectangle) {
	b := fr.dst.Bounds()
	r = t.bounds().Add(b.Min).Intersect(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := mgl32.Vec2{float32(x-b.Min.X) + 0.5, float32(y-b.Min.Y) + 0.5}
			w0 := edge(t.win[1], t.win[2], p) / t.area
			w1 := edge(t.win[2], t.win[0], p) / t.area
			w2 := edge(t.win[0], t.win[1], p) / t.area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			pos := t.pos[0].Mul(w0).Add(t.pos[1].Mul(w1)).Add(t.pos[2].Mul(w2))
			c := fractal.Evaluate(render.TexCoord(pos), fr.coloring, fr.numColors, fr.tex)
			i := fr.dst.PixOffset(x, y)
			fr.dst.Pix[i+0] = c.R
			fr.dst.Pix[i+1] = c.G
			fr.dst.Pix[i+2] = c.B
			fr.dst.Pix[i+3] = c.A
		}
	}
}
