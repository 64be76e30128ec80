package scene

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple.
type Color [3]float32

// Hex parses an sRGB "#rrggbb" or "#rgb" string into linear RGB.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.LinearRgb()
	return Color{float32(r), float32(g), float32(b)}, nil
}

// MustHex is Hex for compiled-in literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// SRGB returns the colour encoded for display, clamped to [0,1].
func (c Color) SRGB() [3]float32 {
	s := colorful.LinearRgb(float64(c[0]), float64(c[1]), float64(c[2])).Clamped()
	return [3]float32{float32(s.R), float32(s.G), float32(s.B)}
}

// Scale multiplies every channel by k.
func (c Color) Scale(k float32) Color {
	return Color{c[0] * k, c[1] * k, c[2] * k}
}

// White is linear white.
var White = Color{1, 1, 1}
