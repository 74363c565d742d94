// Package render describes what the viewer needs from a rendering backend:
// static geometry, a palette texture, one pipeline, and a per-frame draw.
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/fractal"
)

var (
	// ErrPipelineLayout is returned for a pipeline whose attributes or
	// uniforms differ from what the fractal program reads.
	ErrPipelineLayout = errors.New("pipeline layout mismatch")
	// ErrUnknownHandle is returned when a frame names a resource that was
	// never created.
	ErrUnknownHandle = errors.New("unknown handle")
)

// Handle identifies a resource created by a Backend. The zero Handle is
// never returned by a successful create.
type Handle uint32

// Vertex is one corner of the fractal quad in canonical [-1, 1] space.
type Vertex struct {
	Pos mgl32.Vec2
}

type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// Quad returns the full-viewport quad drawn every frame, as two triangles.
func Quad() Geometry {
	return Geometry{
		Vertices: []Vertex{
			{Pos: mgl32.Vec2{-1, -1}},
			{Pos: mgl32.Vec2{1, -1}},
			{Pos: mgl32.Vec2{1, 1}},
			{Pos: mgl32.Vec2{-1, 1}},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// TexCoord returns the texture coordinate the vertex stage derives from a
// quad position: x grows right, y grows down.
func TexCoord(pos mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{pos[0]/2 + 0.5, 1 - (pos[1]/2 + 0.5)}
}

// Filter is the texture sampling mode. Palette lookups index texel centres,
// so nearest is the only mode.
type Filter uint8

const (
	FilterNearest Filter = iota
)

// TextureDesc is an RGBA8 texture. Pix holds Width*Height*4 bytes.
type TextureDesc struct {
	Width, Height int
	Pix           []byte
	Filter        Filter
}

func (d TextureDesc) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("texture %dx%d: size must be positive", d.Width, d.Height)
	}
	if len(d.Pix) != d.Width*d.Height*4 {
		return fmt.Errorf("texture %dx%d: got %d bytes, want %d", d.Width, d.Height, len(d.Pix), d.Width*d.Height*4)
	}
	if d.Filter != FilterNearest {
		return fmt.Errorf("texture %dx%d: unsupported filter %d", d.Width, d.Height, d.Filter)
	}
	return nil
}

type VertexFormat uint8

const (
	Float2 VertexFormat = iota + 1
)

type VertexAttribute struct {
	Name   string
	Format VertexFormat
}

type UniformType uint8

const (
	Mat4 UniformType = iota + 1
	Int1
)

type UniformDesc struct {
	Name string
	Type UniformType
}

// Uniform names shared by every pipeline.
const (
	UniformTransform = "transform"
	UniformNumColors = "num_colors"
	ImagePalette     = "tex"
)

// PipelineDesc is everything a backend needs to build the fractal pipeline.
// Coloring supplies both the GPU fragment source and the CPU shading path.
type PipelineDesc struct {
	Coloring   fractal.Coloring
	Attributes []VertexAttribute
	Uniforms   []UniformDesc
	Images     []string
}

// FractalPipeline returns the pipeline description for coloring c.
func FractalPipeline(c fractal.Coloring) PipelineDesc {
	d := PipelineDesc{
		Coloring:   c,
		Attributes: []VertexAttribute{{Name: "pos", Format: Float2}},
		Uniforms: []UniformDesc{
			{Name: UniformTransform, Type: Mat4},
			{Name: UniformNumColors, Type: Int1},
		},
	}
	if c.UsesPalette() {
		d.Images = []string{ImagePalette}
	}
	return d
}

// Validate checks the layout against what Uniforms and Vertex provide.
func (d PipelineDesc) Validate() error {
	if d.Coloring == nil {
		return fmt.Errorf("%w: no coloring", ErrPipelineLayout)
	}
	if len(d.Coloring.Fragment()) == 0 {
		return fmt.Errorf("%w: %s has no fragment source", ErrPipelineLayout, d.Coloring.Name())
	}
	if len(d.Attributes) != 1 || d.Attributes[0].Format != Float2 {
		return fmt.Errorf("%w: want a single Float2 attribute, got %v", ErrPipelineLayout, d.Attributes)
	}
	want := map[string]UniformType{UniformTransform: Mat4, UniformNumColors: Int1}
	for _, u := range d.Uniforms {
		typ, ok := want[u.Name]
		if !ok || typ != u.Type {
			return fmt.Errorf("%w: unexpected uniform %q", ErrPipelineLayout, u.Name)
		}
		delete(want, u.Name)
	}
	if len(want) > 0 {
		return fmt.Errorf("%w: missing uniforms %v", ErrPipelineLayout, want)
	}
	if d.Coloring.UsesPalette() && len(d.Images) != 1 {
		return fmt.Errorf("%w: %s needs one palette image, got %d", ErrPipelineLayout, d.Coloring.Name(), len(d.Images))
	}
	return nil
}

// Uniforms are recomputed every frame.
type Uniforms struct {
	Transform mgl32.Mat4
	NumColors int32
}

// Frame is one draw of the quad.
type Frame struct {
	Pipeline Handle
	Geometry Handle
	Textures []Handle
	Uniforms Uniforms
}

// Backend is the rendering collaborator. All methods are called from the
// event loop goroutine.
type Backend interface {
	CreateGeometry(g Geometry) (Handle, error)
	CreatePaletteTexture(d TextureDesc) (Handle, error)
	CompilePipeline(d PipelineDesc) (Handle, error)
	SubmitFrame(f Frame) error
	// ScreenSize returns the current drawable size in pixels.
	ScreenSize() mgl32.Vec2
}
