// Package fractal evaluates the Mandelbrot escape time for a single pixel and
// turns it into a color. The same evaluation runs on the GPU from the Kage
// sources returned by each Coloring.
package fractal

import "github.com/go-gl/mathgl/mgl32"

// Complex-plane window covered by texture coordinates [0,1]^2.
const (
	CXMin = -2.0
	CXMax = 1.0
	CYMin = -1.5
	CYMax = 1.5
)

// TexCoordToComplex maps a texture coordinate in [0,1]^2 onto the
// complex-plane window.
func TexCoordToComplex(uv mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		uv[0]*(CXMax-CXMin) + CXMin,
		uv[1]*(CYMax-CYMin) + CYMin,
	}
}

func squareComplex(z mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{z[0]*z[0] - z[1]*z[1], 2 * z[0] * z[1]}
}

// Escape iterates z = z^2 + c from zero and returns the first index whose
// |z|^2 exceeds 4, or maxIter if the orbit stays bounded.
func Escape(c mgl32.Vec2, maxIter int) int {
	var z mgl32.Vec2
	for i := 0; i < maxIter; i++ {
		if z[0]*z[0]+z[1]*z[1] > 4 {
			return i
		}
		z = squareComplex(z).Add(c)
	}
	return maxIter
}
