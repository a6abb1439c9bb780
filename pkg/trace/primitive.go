package trace

import "github.com/taigrr/lumen/pkg/math3d"

// Primitive is the capability set shared by Triangle and Sphere.
//
// Intersect tests ray against the primitive and applies the nearest-hit
// policy: a hit is reported only when it is valid and closer than bestT
// (or bestT is NoHit). The returned Hit.T is the updated best distance; on
// false it equals bestT.
//
// Shade evaluates local illumination at surfacePos, which must lie on the
// primitive, using the Hit returned by a successful Intersect for the same
// ray.
type Primitive interface {
	Intersect(ray Ray, bestT float64) (Hit, bool)
	Shade(scene Scene, surfacePos math3d.Vec3, hit Hit) Color
	Transform() math3d.Transform
}

var (
	_ Primitive = (*Triangle)(nil)
	_ Primitive = (*Sphere)(nil)
)
