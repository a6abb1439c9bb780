package trace

import (
	"image/color"
	"math"
)

// Color is a linear RGB triple. Components are not clamped; shading results
// may exceed 1 and are clamped only when quantized.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	Black = Color{}
	White = Color{1, 1, 1}
)

// RGB creates a new Color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Gray returns a color with all channels set to v.
func Gray(v float64) Color {
	return Color{v, v, v}
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the channel-wise product, used to filter light by reflectance.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Lerp3 blends three colors with barycentric weights.
func Lerp3(a, b, c Color, alpha, beta, gamma float64) Color {
	return Color{
		alpha*a.R + beta*b.R + gamma*c.R,
		alpha*a.G + beta*b.G + gamma*c.G,
		alpha*a.B + beta*b.B + gamma*c.B,
	}
}

// IsBlack reports whether all channels are zero or negative.
func (c Color) IsBlack() bool {
	return c.R <= 0 && c.G <= 0 && c.B <= 0
}

// ApproxEqual reports whether every channel differs by at most eps.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps &&
		math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps
}

// RGBA quantizes the color to 8 bits per channel, clamping to [0, 1].
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: quantize(c.R),
		G: quantize(c.G),
		B: quantize(c.B),
		A: 255,
	}
}

// FromRGBA converts an 8-bit color to linear channels in [0, 1].
func FromRGBA(c color.RGBA) Color {
	return Color{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func quantize(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
