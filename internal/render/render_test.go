package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/joshvictor1024/mandelview/internal/fractal"
)

func TestQuad(t *testing.T) {
	q := Quad()
	if len(q.Vertices) != 4 || len(q.Indices) != 6 {
		t.Fatalf("quad has %d vertices and %d indices", len(q.Vertices), len(q.Indices))
	}
	for _, i := range q.Indices {
		if int(i) >= len(q.Vertices) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestTexCoord(t *testing.T) {
	tests := []struct {
		pos, want mgl32.Vec2
	}{
		{mgl32.Vec2{-1, 1}, mgl32.Vec2{0, 0}},
		{mgl32.Vec2{1, -1}, mgl32.Vec2{1, 1}},
		{mgl32.Vec2{0, 0}, mgl32.Vec2{0.5, 0.5}},
	}
	for _, tt := range tests {
		if got := TexCoord(tt.pos); !got.ApproxEqual(tt.want) {
			t.Errorf("TexCoord(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestTextureDescValidate(t *testing.T) {
	ok := TextureDesc{Width: 2, Height: 1, Pix: make([]byte, 8)}
	if err := ok.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, d := range []TextureDesc{
		{Width: 0, Height: 1},
		{Width: 2, Height: 1, Pix: make([]byte, 7)},
		{Width: 2, Height: 1, Pix: make([]byte, 8), Filter: FilterNearest + 1},
	} {
		if err := d.Validate(); err == nil {
			t.Errorf("Validate(%dx%d, %d bytes) succeeded", d.Width, d.Height, len(d.Pix))
		}
	}
}

func TestFractalPipelineValidates(t *testing.T) {
	for _, c := range []fractal.Coloring{fractal.PaletteColoring{}, fractal.GradientColoring{}} {
		d := FractalPipeline(c)
		if err := d.Validate(); err != nil {
			t.Errorf("%s: %v", c.Name(), err)
		}
		if got, want := len(d.Images), map[bool]int{true: 1, false: 0}[c.UsesPalette()]; got != want {
			t.Errorf("%s: %d images, want %d", c.Name(), got, want)
		}
	}
}

func TestPipelineDescValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *PipelineDesc)
	}{
		{"no coloring", func(d *PipelineDesc) { d.Coloring = nil }},
		{"no attributes", func(d *PipelineDesc) { d.Attributes = nil }},
		{"wrong uniform type", func(d *PipelineDesc) { d.Uniforms[1].Type = Mat4 }},
		{"missing uniform", func(d *PipelineDesc) { d.Uniforms = d.Uniforms[:1] }},
		{"extra uniform", func(d *PipelineDesc) { d.Uniforms = append(d.Uniforms, UniformDesc{Name: "zoom", Type: Int1}) }},
		{"missing palette image", func(d *PipelineDesc) { d.Images = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FractalPipeline(fractal.PaletteColoring{})
			tt.mutate(&d)
			if err := d.Validate(); !errors.Is(err, ErrPipelineLayout) {
				t.Fatalf("Validate() = %v, want ErrPipelineLayout", err)
			}
		})
	}
}
