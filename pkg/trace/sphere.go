package trace

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Sphere is a sphere of the given radius centered on its object-space origin.
type Sphere struct {
	Radius    float64
	Material  MaterialRef
	transform math3d.Transform
}

// NewSphere creates a sphere placed in the world by tr.
func NewSphere(radius float64, m MaterialRef, tr math3d.Transform) *Sphere {
	return &Sphere{
		Radius:    radius,
		Material:  m,
		transform: tr,
	}
}

// NewSphereAt creates an unrotated, unscaled sphere centered at center.
func NewSphereAt(center math3d.Vec3, radius float64, m MaterialRef) *Sphere {
	return NewSphere(radius, m, math3d.Translated(center))
}

// Transform returns the object→world transform.
func (s *Sphere) Transform() math3d.Transform {
	return s.transform
}

// Center returns the world-space center.
func (s *Sphere) Center() math3d.Vec3 {
	return s.transform.Translation()
}

// Intersect solves ‖E + tD‖² = r² in object space. The nearer positive root
// wins; from inside the sphere the farther root is used.
func (s *Sphere) Intersect(ray Ray, bestT float64) (Hit, bool) {
	miss := Hit{T: bestT}
	r := ray.ToObject(s.transform)

	// Center is the object-space origin, so E - C = E.
	ec := r.Origin
	a := r.Direction.LenSq()
	if a == 0 {
		return miss, false
	}
	b := r.Direction.Dot(ec)
	c := ec.LenSq() - s.Radius*s.Radius

	disc := b*b - a*c
	if disc < 0 || math.IsNaN(disc) {
		return miss, false
	}

	sq := math.Sqrt(disc)
	t1 := (-b + sq) / a
	if t1 <= 0 {
		return miss, false
	}
	t2 := (-b - sq) / a

	tHit := t1
	if t2 > 0 {
		tHit = t2
	}
	if !closer(tHit, bestT) {
		return miss, false
	}
	return Hit{T: tHit, Alpha: 1}, true
}

// Shade evaluates local illumination with the sphere's single material.
func (s *Sphere) Shade(scene Scene, surfacePos math3d.Vec3, _ Hit) Color {
	return Illuminate(scene, surfacePos, s.NormalAt(surfacePos), s.Material.Ambient(), s.Material.Diffuse())
}

// NormalAt returns the unit outward world-space normal at a surface point.
// For rigid transforms this is (p - center) / radius.
func (s *Sphere) NormalAt(surfacePos math3d.Vec3) math3d.Vec3 {
	local := s.transform.PointToObject(surfacePos)
	if s.Radius > 0 {
		local = local.Scale(1 / s.Radius)
	}
	return s.transform.NormalToWorld(local)
}
