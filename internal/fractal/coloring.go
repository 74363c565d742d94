package fractal

import (
	_ "embed"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/palette.kage
var paletteFragment []byte

//go:embed shaders/gradient.kage
var gradientFragment []byte

var interior = color.RGBA{A: 255}

// Sampler looks up a palette texture at a horizontal coordinate x in [0,1).
type Sampler interface {
	Sample(x float32) color.RGBA
}

// Coloring turns an escape index into a color. Implementations carry both a
// CPU path (Shade) and the equivalent GPU fragment source.
type Coloring interface {
	Name() string
	MaxIterations() int
	// UsesPalette reports whether Shade reads the palette texture.
	UsesPalette() bool
	// Shade colors escape index b. numColors is the palette size uniform;
	// tex may be nil when UsesPalette is false.
	Shade(b int, numColors int32, tex Sampler) color.RGBA
	// Fragment returns the Kage fragment shader for this coloring.
	Fragment() []byte
}

// PaletteColoring bands escape indices cyclically through the palette and
// paints interior points black.
type PaletteColoring struct{}

func (PaletteColoring) Name() string       { return "palette" }
func (PaletteColoring) MaxIterations() int { return 500 }
func (PaletteColoring) UsesPalette() bool  { return true }
func (PaletteColoring) Fragment() []byte   { return paletteFragment }

func (p PaletteColoring) Shade(b int, numColors int32, tex Sampler) color.RGBA {
	if b == p.MaxIterations() || numColors <= 0 || tex == nil {
		return interior
	}
	n := int(numColors)
	return tex.Sample(float32(b%n) / float32(n))
}

// GradientColoring ramps from black through red to white with the escape
// index. Interior points saturate at full intensity.
type GradientColoring struct{}

func (GradientColoring) Name() string       { return "gradient" }
func (GradientColoring) MaxIterations() int { return 120 }
func (GradientColoring) UsesPalette() bool  { return false }
func (GradientColoring) Fragment() []byte   { return gradientFragment }

func (g GradientColoring) Shade(b int, _ int32, _ Sampler) color.RGBA {
	intensity := float32(b) / float32(g.MaxIterations())
	intensity = 2 * intensity / (mgl32.Abs(intensity) + 1)
	r := 2*intensity - 1
	if r < 0 {
		r = 0
	}
	return color.RGBA{R: unorm(r), G: unorm(intensity), B: unorm(intensity), A: 255}
}

func unorm(x float32) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 255
	}
	return uint8(x*255 + 0.5)
}

// Evaluate runs the whole per-pixel program for texture coordinate uv.
func Evaluate(uv mgl32.Vec2, col Coloring, numColors int32, tex Sampler) color.RGBA {
	b := Escape(TexCoordToComplex(uv), col.MaxIterations())
	return col.Shade(b, numColors, tex)
}

// ByName returns the coloring registered under name.
func ByName(name string) (Coloring, error) {
	switch name {
	case PaletteColoring{}.Name():
		return PaletteColoring{}, nil
	case GradientColoring{}.Name():
		return GradientColoring{}, nil
	}
	return nil, fmt.Errorf("unknown coloring %q", name)
}
