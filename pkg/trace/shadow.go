package trace

import "github.com/taigrr/lumen/pkg/math3d"

// ShadowEpsilon offsets shadow ray origins off the surface so they do not
// immediately re-hit the primitive being shaded.
const ShadowEpsilon = 1e-6

// Occluded reports whether any scene geometry blocks the segment from p to
// the light. Shadow rays use the same Intersect routines as primary rays.
func Occluded(scene Scene, p math3d.Vec3, light PointLight) bool {
	toLight := light.Position.Sub(p)
	dist := toLight.Len()
	if dist == 0 {
		return false
	}
	dir := toLight.Scale(1 / dist)
	return occludedAlong(scene, p, dir, dist)
}

func occludedAlong(scene Scene, p, dir math3d.Vec3, dist float64) bool {
	ray := NewRay(p.Add(dir.Scale(ShadowEpsilon)), dir)
	for _, g := range scene.Geometries() {
		if hit, ok := g.Intersect(ray, NoHit); ok && hit.T < dist {
			return true
		}
	}
	return false
}
