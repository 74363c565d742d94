// Package ebitenview shows the viewer in an ebiten window and runs the
// escape-time evaluator on the GPU as a Kage fragment shader.
package ebitenview

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/joshvictor1024/mandelview/internal/logging"
	"github.com/joshvictor1024/mandelview/internal/render"
)

var errNoScreen = errors.New("ebitenview: frame submitted outside Draw")

// Backend implements render.Backend on ebiten images and shaders.
type Backend struct {
	geometries map[render.Handle]render.Geometry
	textures   map[render.Handle]*ebiten.Image
	shaders    map[render.Handle]*ebiten.Shader
	last       render.Handle

	// screen is the draw target, valid only inside Game.Draw.
	screen *ebiten.Image
	size   mgl32.Vec2

	vertices []ebiten.Vertex
	indices  []uint16
}

func newBackend(width, height int) *Backend {
	return &Backend{
		geometries: make(map[render.Handle]render.Geometry),
		textures:   make(map[render.Handle]*ebiten.Image),
		shaders:    make(map[render.Handle]*ebiten.Shader),
		size:       mgl32.Vec2{float32(width), float32(height)},
	}
}

func (b *Backend) nextHandle() render.Handle {
	b.last++
	return b.last
}

func (b *Backend) CreateGeometry(g render.Geometry) (render.Handle, error) {
	if len(g.Indices)%3 != 0 {
		return 0, fmt.Errorf("geometry: %d indices is not a triangle list", len(g.Indices))
	}
	h := b.nextHandle()
	b.geometries[h] = g
	return h, nil
}

// CreatePaletteTexture uploads the palette as an image. Kage samples with
// imageSrc0UnsafeAt at texel centers, which is the nearest filter.
func (b *Backend) CreatePaletteTexture(d render.TextureDesc) (render.Handle, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	img := ebiten.NewImage(d.Width, d.Height)
	img.WritePixels(d.Pix)
	h := b.nextHandle()
	b.textures[h] = img
	return h, nil
}

func (b *Backend) CompilePipeline(d render.PipelineDesc) (render.Handle, error) {
	if err := d.Validate(); err != nil {
		return 0, fmt.Errorf("compile pipeline: %w", err)
	}
	s, err := ebiten.NewShader(d.Coloring.Fragment())
	if err != nil {
		return 0, fmt.Errorf("compile %s shader: %w", d.Coloring.Name(), err)
	}
	h := b.nextHandle()
	b.shaders[h] = s
	logging.Logger().Info("pipeline compiled", "device", "ebiten", "coloring", d.Coloring.Name())
	return h, nil
}

func (b *Backend) ScreenSize() mgl32.Vec2 { return b.size }

// shaderUniforms splits the transform into the scale and translation the
// fragment shader inverts.
func shaderUniforms(u render.Uniforms, size mgl32.Vec2) map[string]any {
	m := u.Transform
	return map[string]any{
		"ScreenSize": []float32{size[0], size[1]},
		"Scale":      []float32{m.At(0, 0), m.At(1, 1)},
		"Translate":  []float32{m.At(0, 3), m.At(1, 3)},
		"NumColors":  u.NumColors,
	}
}

// transformVertices runs the vertex stage on the CPU: quad positions go
// through the transform and land in screen pixels.
func transformVertices(dst []ebiten.Vertex, g render.Geometry, m mgl32.Mat4, size mgl32.Vec2) []ebiten.Vertex {
	dst = dst[:0]
	for _, v := range g.Vertices {
		clip := m.Mul4x1(mgl32.Vec4{v.Pos[0], v.Pos[1], 0, 1})
		dst = append(dst, ebiten.Vertex{
			DstX:   (clip[0]/clip[3] + 1) / 2 * size[0],
			DstY:   (1 - clip[1]/clip[3]) / 2 * size[1],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	return dst
}

func (b *Backend) SubmitFrame(f render.Frame) error {
	if b.screen == nil {
		return errNoScreen
	}
	shader, ok := b.shaders[f.Pipeline]
	if !ok {
		return fmt.Errorf("pipeline %d: %w", f.Pipeline, render.ErrUnknownHandle)
	}
	g, ok := b.geometries[f.Geometry]
	if !ok {
		return fmt.Errorf("geometry %d: %w", f.Geometry, render.ErrUnknownHandle)
	}

	bounds := b.screen.Bounds()
	size := mgl32.Vec2{float32(bounds.Dx()), float32(bounds.Dy())}
	op := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: shaderUniforms(f.Uniforms, size),
	}
	for i, h := range f.Textures {
		img, ok := b.textures[h]
		if !ok {
			return fmt.Errorf("texture %d: %w", h, render.ErrUnknownHandle)
		}
		op.Images[i] = img
	}

	b.vertices = transformVertices(b.vertices, g, f.Uniforms.Transform, size)
	b.indices = append(b.indices[:0], g.Indices...)
	b.screen.Fill(background)
	b.screen.DrawTrianglesShader(b.vertices, b.indices, shader, op)
	return nil
}
