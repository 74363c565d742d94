// Package view holds the zoom/pan state and the aspect-corrected transform
// that places the fractal quad on screen.
package view

import "github.com/go-gl/mathgl/mgl32"

// State is the current zoom factor and pan center. Zoom is always positive.
type State struct {
	Zoom   float32
	Center mgl32.Vec2
}

// Initial is the unzoomed, centered view.
func Initial() State {
	return State{Zoom: 1}
}

// AspectScale returns the per-axis scale that keeps a unit circle in fractal
// space circular on a screen of the given size.
func AspectScale(screen mgl32.Vec2) mgl32.Vec2 {
	ratio := screen[1] / screen[0]
	if ratio <= 1 {
		return mgl32.Vec2{ratio, 1}
	}
	return mgl32.Vec2{1, 1 / ratio}
}

// Transform builds the vertex transform for the fractal quad: an
// aspect-corrected scale by zoom followed by a translation of the scaled
// center. The matrix is column-major, as consumed by the GPU.
func Transform(zoom float32, center, screen mgl32.Vec2) mgl32.Mat4 {
	s := AspectScale(screen).Mul(zoom)
	return mgl32.Mat4{
		s[0], 0, 0, 0,
		0, s[1], 0, 0,
		0, 0, 1, 0,
		s[0] * center[0], s[1] * center[1], 0, 1,
	}
}

// Transform is Transform for the receiver's zoom and center.
func (s State) Transform(screen mgl32.Vec2) mgl32.Mat4 {
	return Transform(s.Zoom, s.Center, screen)
}
