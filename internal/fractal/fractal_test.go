package fractal

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name    string
		c       mgl32.Vec2
		maxIter int
		want    int
	}{
		{"origin is interior", mgl32.Vec2{0, 0}, 500, 500},
		{"period-2 bulb is interior", mgl32.Vec2{-1, 0}, 500, 500},
		{"cardioid point is interior", mgl32.Vec2{-0.1, 0.1}, 500, 500},
		{"one escapes quickly", mgl32.Vec2{1, 0}, 500, 3},
		{"far point escapes after one step", mgl32.Vec2{2, 2}, 500, 1},
		{"cap respected", mgl32.Vec2{1, 0}, 2, 2},
		{"zero cap", mgl32.Vec2{0, 0}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.c, tt.maxIter); got != tt.want {
				t.Errorf("Escape(%v, %d) = %d, want %d", tt.c, tt.maxIter, got, tt.want)
			}
		})
	}
}

func TestTexCoordToComplex(t *testing.T) {
	tests := []struct {
		uv, want mgl32.Vec2
	}{
		{mgl32.Vec2{0, 0}, mgl32.Vec2{-2, -1.5}},
		{mgl32.Vec2{1, 1}, mgl32.Vec2{1, 1.5}},
		{mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{-0.5, 0}},
	}
	for _, tt := range tests {
		if got := TexCoordToComplex(tt.uv); !got.ApproxEqual(tt.want) {
			t.Errorf("TexCoordToComplex(%v) = %v, want %v", tt.uv, got, tt.want)
		}
	}
}

type recordingSampler struct {
	xs []float32
}

func (s *recordingSampler) Sample(x float32) color.RGBA {
	s.xs = append(s.xs, x)
	return color.RGBA{R: 1, G: 2, B: 3, A: 255}
}

func TestPaletteColoringShade(t *testing.T) {
	var p PaletteColoring
	s := &recordingSampler{}

	if got := p.Shade(p.MaxIterations(), 12, s); got != (color.RGBA{A: 255}) {
		t.Errorf("interior = %v, want opaque black", got)
	}
	if len(s.xs) != 0 {
		t.Fatalf("interior sampled the palette at %v", s.xs)
	}

	// Indices 1 and 13 land on the same band.
	p.Shade(1, 12, s)
	p.Shade(13, 12, s)
	p.Shade(0, 12, s)
	want := []float32{1.0 / 12, 1.0 / 12, 0}
	if len(s.xs) != len(want) {
		t.Fatalf("sampled %v, want %v", s.xs, want)
	}
	for i := range want {
		if !mgl32.FloatEqual(s.xs[i], want[i]) {
			t.Errorf("sample %d at %v, want %v", i, s.xs[i], want[i])
		}
	}

	if got := p.Shade(5, 0, s); got != (color.RGBA{A: 255}) {
		t.Errorf("empty palette shade = %v, want opaque black", got)
	}
}

func TestGradientColoringShade(t *testing.T) {
	var g GradientColoring
	if g.UsesPalette() {
		t.Fatal("gradient coloring claims to use the palette")
	}
	if got := g.Shade(0, 0, nil); got != (color.RGBA{A: 255}) {
		t.Errorf("Shade(0) = %v, want black", got)
	}
	if got := g.Shade(g.MaxIterations(), 0, nil); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Shade(max) = %v, want white", got)
	}
	prev := g.Shade(0, 0, nil)
	for b := 1; b <= g.MaxIterations(); b++ {
		c := g.Shade(b, 0, nil)
		if c.G < prev.G || c.R < prev.R {
			t.Fatalf("Shade(%d) = %v not brighter than %v", b, c, prev)
		}
		if c.R > c.G {
			t.Fatalf("Shade(%d) = %v: red above green", b, c)
		}
		prev = c
	}
}

func TestGradientColoringCurve(t *testing.T) {
	// intensity = b/120 compressed by 2i/(i+1); red starts once it passes 1/2.
	tests := []struct {
		b    int
		want color.RGBA
	}{
		{30, color.RGBA{0, 102, 102, 255}},
		{60, color.RGBA{85, 170, 170, 255}},
		{90, color.RGBA{182, 219, 219, 255}},
	}
	var g GradientColoring
	for _, tt := range tests {
		if got := g.Shade(tt.b, 0, nil); got != tt.want {
			t.Errorf("Shade(%d) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	s := &recordingSampler{}
	// uv (2/3, 1/2) is c = 0, inside the set.
	if got := Evaluate(mgl32.Vec2{2.0 / 3, 0.5}, PaletteColoring{}, 12, s); got != (color.RGBA{A: 255}) {
		t.Errorf("Evaluate(center) = %v, want black", got)
	}
	// uv (1, 0.5) is c = 1.
	Evaluate(mgl32.Vec2{1, 0.5}, PaletteColoring{}, 12, s)
	if len(s.xs) != 1 || !mgl32.FloatEqual(s.xs[0], 3.0/12) {
		t.Errorf("Evaluate(c=1) sampled %v, want [0.25]", s.xs)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"palette", "gradient"} {
		c, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, c.Name())
		}
		if len(c.Fragment()) == 0 {
			t.Errorf("%s has no fragment source", name)
		}
		// Destination pixels are made relative to the target's origin, which
		// is not zero for sub-images and atlas-backed screens.
		if !bytes.Contains(c.Fragment(), []byte("dstPos.xy - imageDstOrigin()")) {
			t.Errorf("%s fragment does not offset dstPos by imageDstOrigin()", name)
		}
	}
	if _, err := ByName("smooth"); err == nil {
		t.Error("ByName(smooth) succeeded")
	}
}
