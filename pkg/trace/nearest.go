package trace

// Nearest intersects ray with every scene geometry, threading the best
// distance through each Intersect call. On ties the earlier geometry wins.
func Nearest(scene Scene, ray Ray) (Primitive, Hit, bool) {
	var (
		nearest Primitive
		best    = Hit{T: NoHit}
	)
	for _, g := range scene.Geometries() {
		if hit, ok := g.Intersect(ray, best.T); ok {
			nearest, best = g, hit
		}
	}
	return nearest, best, nearest != nil
}

// Trace shades the nearest hit along ray. It reports false when the ray
// escapes the scene.
func Trace(scene Scene, ray Ray) (Color, bool) {
	prim, hit, ok := Nearest(scene, ray)
	if !ok {
		return Black, false
	}
	return prim.Shade(scene, ray.At(hit.T), hit), true
}
