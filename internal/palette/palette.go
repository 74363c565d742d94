// Package palette builds the hue-rotation color table sampled by the
// escape-time evaluator.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// NumColors is the number of palette entries uploaded at startup.
const NumColors = 12

// ErrInvalidHueSector is returned by HSVToRGB when h falls outside [0, 1).
var ErrInvalidHueSector = errors.New("invalid hue sector")

// HSVToRGB converts h, s, v in [0, 1) to 8-bit RGB. Channels are truncated,
// not rounded.
func HSVToRGB(h, s, v float32) ([3]uint8, error) {
	h6 := float32(h * 6)
	hi := int(math.Floor(float64(h6)))
	f := h6 - float32(hi)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float32
	switch hi {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	default:
		return [3]uint8{}, fmt.Errorf("%w: %d (h=%v)", ErrInvalidHueSector, hi, h)
	}
	return [3]uint8{channel(r), channel(g), channel(b)}, nil
}

func channel(x float32) uint8 {
	x *= 255
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// Palette is an immutable, ordered list of opaque colors.
type Palette struct {
	colors []color.RGBA
}

// New builds n colors with hues i/n at full saturation and value.
func New(n int) (Palette, error) {
	if n <= 0 {
		return Palette{}, fmt.Errorf("palette size %d: must be positive", n)
	}
	colors := make([]color.RGBA, n)
	for i := range colors {
		rgb, err := HSVToRGB(float32(i)/float32(n), 1, 1)
		if err != nil {
			return Palette{}, err
		}
		colors[i] = color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
	}
	return Palette{colors: colors}, nil
}

func (p Palette) Len() int { return len(p.colors) }

// At returns entry i. It panics if i is out of range.
func (p Palette) At(i int) color.RGBA { return p.colors[i] }

// Pix returns the palette as tightly packed RGBA8 bytes, one row of Len()
// texels.
func (p Palette) Pix() []byte {
	pix := make([]byte, 0, len(p.colors)*4)
	for _, c := range p.colors {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}
