package component

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA colour in display (sRGB) space with
// components in [0,1]. This is what callers hand to a transition request.
type Color struct {
	R, G, B, A float64
}

// SRGBA builds a display-space colour.
func SRGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// LinearRGBA is a colour in linear space, laid out the way the shader reads
// it.
type LinearRGBA [4]float32

// Linear converts c to linear space. Alpha is carried through unchanged.
func (c Color) Linear() LinearRGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.LinearRgb()
	return LinearRGBA{float32(r), float32(g), float32(b), float32(c.A)}
}

func (c Color) String() string {
	return fmt.Sprintf("srgba(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}
