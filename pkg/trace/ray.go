// Package trace implements analytic ray/primitive intersection and local
// illumination: ambient light plus attenuated, shadow-gated point-light
// diffuse shading for triangles and spheres.
//
// Every query is a pure function of its arguments. Intersection results are
// returned as Hit values and handed back to Shade explicitly, so any number
// of goroutines may trace against the same scene concurrently.
package trace

import "github.com/taigrr/lumen/pkg/math3d"

// NoHit is the bestT sentinel meaning no intersection has been recorded yet.
const NoHit = -1.0

// Ray is a half-line in world space. Direction need not be normalized; hit
// parameters are always expressed in the caller's parameterization.
type Ray struct {
	Origin    math3d.Vec3
	Direction math3d.Vec3
}

// NewRay creates a new ray.
func NewRay(origin, direction math3d.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ToObject maps the ray into the object space of tr. The origin is
// transformed as a point and the direction as a vector, so t keeps its
// meaning on both sides of the mapping.
func (r Ray) ToObject(tr math3d.Transform) Ray {
	return Ray{
		Origin:    tr.PointToObject(r.Origin),
		Direction: tr.DirToObject(r.Direction),
	}
}

// Hit is the per-query result of an intersection test.
type Hit struct {
	T float64 // Ray parameter of the nearest hit so far

	// Barycentric weights of vertices A, B and C. Spheres report (1, 0, 0).
	Alpha, Beta, Gamma float64
}

// closer reports whether t should replace best under the nearest-hit policy.
func closer(t, best float64) bool {
	return best < 0 || t < best
}
