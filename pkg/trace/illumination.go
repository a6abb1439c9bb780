package trace

import "github.com/taigrr/lumen/pkg/math3d"

// Illuminate evaluates ambient plus per-light diffuse lighting at point p
// with unit surface normal n:
//
//	ambientLight⊙ambient + Σ visible Attenuation(d)·max(0, n·l)⊙diffuse
//
// Lights behind the surface contribute nothing and are not shadow tested.
func Illuminate(scene Scene, p, n math3d.Vec3, ambient, diffuse Color) Color {
	result := scene.AmbientLight().Mul(ambient)
	if diffuse.IsBlack() {
		return result
	}
	return result.Add(DiffuseLight(scene, p, n).Mul(diffuse))
}

// DiffuseLight returns the unfiltered diffuse irradiance at p: the sum over
// unshadowed lights of Attenuation(d)·max(0, n·l).
func DiffuseLight(scene Scene, p, n math3d.Vec3) Color {
	var sum Color
	for _, light := range scene.Lights() {
		toLight := light.Position.Sub(p)
		dist := toLight.Len()
		if dist == 0 {
			continue
		}
		l := toLight.Scale(1 / dist)

		cos := n.Dot(l)
		if cos <= 0 {
			continue
		}
		if occludedAlong(scene, p, l, dist) {
			continue
		}
		sum = sum.Add(light.Attenuation(dist).Scale(cos))
	}
	return sum
}
