package trace

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// PointLight is an omnidirectional light with polynomial distance falloff.
type PointLight struct {
	Position math3d.Vec3
	Color    Color

	// Attenuation coefficients: 1 / (Constant + Linear*d + Quadratic*d²).
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NewPointLight creates a light without distance falloff.
func NewPointLight(position math3d.Vec3, c Color) PointLight {
	return PointLight{Position: position, Color: c, Constant: 1}
}

// Attenuation returns the light color scaled by the inverse falloff at
// distance d. A denominator that is not strictly positive and finite yields
// black rather than an infinite or NaN contribution.
func (l PointLight) Attenuation(d float64) Color {
	denom := l.Constant + l.Linear*d + l.Quadratic*d*d
	if !(denom > 0) || math.IsInf(denom, 0) {
		return Black
	}
	return l.Color.Scale(1 / denom)
}
