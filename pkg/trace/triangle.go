package trace

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// determinantEpsilon is the magnitude below which the Cramer system is
// treated as singular (ray parallel to the triangle plane).
const determinantEpsilon = 1e-12

// Vertex holds the per-vertex attributes of a triangle in object space.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3 // Zero means "use the face normal"
	UV       math3d.Vec2
	Material MaterialRef
}

// Triangle is a triangle primitive with vertices A, B, C in object space.
type Triangle struct {
	A, B, C   Vertex
	transform math3d.Transform
	normal    math3d.Vec3 // Object-space face normal, (B-A)×(C-A) normalized
}

// NewTriangle creates a triangle placed in the world by tr.
func NewTriangle(a, b, c Vertex, tr math3d.Transform) *Triangle {
	return &Triangle{
		A:         a,
		B:         b,
		C:         c,
		transform: tr,
		normal:    b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize(),
	}
}

// NewFlatTriangle creates an untransformed triangle with a single material.
func NewFlatTriangle(a, b, c math3d.Vec3, m MaterialRef) *Triangle {
	return NewTriangle(
		Vertex{Position: a, Material: m},
		Vertex{Position: b, Material: m},
		Vertex{Position: c, Material: m},
		math3d.IdentityTransform(),
	)
}

// Transform returns the object→world transform.
func (t *Triangle) Transform() math3d.Transform {
	return t.transform
}

// Intersect solves E + t·D = A + β(B−A) + γ(C−A) in object space with
// Cramer's rule. Edges are closed: β=0, γ=0 and β+γ=1 all count as hits.
func (t *Triangle) Intersect(ray Ray, bestT float64) (Hit, bool) {
	miss := Hit{T: bestT}
	r := ray.ToObject(t.transform)

	pa, pb, pc := t.A.Position, t.B.Position, t.C.Position

	// Columns of the system matrix and the right-hand side.
	a, b, c := pa.X-pb.X, pa.Y-pb.Y, pa.Z-pb.Z
	d, e, f := pa.X-pc.X, pa.Y-pc.Y, pa.Z-pc.Z
	g, h, i := r.Direction.X, r.Direction.Y, r.Direction.Z
	j, k, l := pa.X-r.Origin.X, pa.Y-r.Origin.Y, pa.Z-r.Origin.Z

	eiMinusHf := e*i - h*f
	gfMinusDi := g*f - d*i
	dhMinusEg := d*h - e*g
	akMinusJb := a*k - j*b
	jcMinusAl := j*c - a*l
	blMinusKc := b*l - k*c

	m := a*eiMinusHf + b*gfMinusDi + c*dhMinusEg
	if math.Abs(m) < determinantEpsilon || math.IsNaN(m) {
		return miss, false
	}
	invM := 1 / m

	tHit := -(f*akMinusJb + e*jcMinusAl + d*blMinusKc) * invM
	if tHit < 0 || !closer(tHit, bestT) {
		return miss, false
	}

	gamma := (i*akMinusJb + h*jcMinusAl + g*blMinusKc) * invM
	if gamma < 0 || gamma > 1 {
		return miss, false
	}

	beta := (j*eiMinusHf + k*gfMinusDi + l*dhMinusEg) * invM
	if beta < 0 || beta > 1-gamma {
		return miss, false
	}

	return Hit{T: tHit, Alpha: (1 - gamma) - beta, Beta: beta, Gamma: gamma}, true
}

// Shade interpolates vertex reflectance and normals with the hit's
// barycentric weights and evaluates local illumination at surfacePos.
func (t *Triangle) Shade(scene Scene, surfacePos math3d.Vec3, hit Hit) Color {
	ambient := Lerp3(
		t.A.Material.Ambient(), t.B.Material.Ambient(), t.C.Material.Ambient(),
		hit.Alpha, hit.Beta, hit.Gamma,
	)
	diffuse := Lerp3(
		t.A.Material.Diffuse(), t.B.Material.Diffuse(), t.C.Material.Diffuse(),
		hit.Alpha, hit.Beta, hit.Gamma,
	)
	return Illuminate(scene, surfacePos, t.NormalAt(hit), ambient, diffuse)
}

// NormalAt returns the unit world-space shading normal for a hit: the
// barycentric blend of the vertex normals, or the face normal when the
// vertices carry none.
func (t *Triangle) NormalAt(hit Hit) math3d.Vec3 {
	n := math3d.Barycentric(t.A.Normal, t.B.Normal, t.C.Normal, hit.Alpha, hit.Beta, hit.Gamma)
	if n.LenSq() == 0 {
		n = t.normal
	}
	return t.transform.NormalToWorld(n)
}

// UVAt returns the interpolated texture coordinate for a hit.
func (t *Triangle) UVAt(hit Hit) math3d.Vec2 {
	return t.A.UV.Scale(hit.Alpha).Add(t.B.UV.Scale(hit.Beta)).Add(t.C.UV.Scale(hit.Gamma))
}

// FaceNormal returns the unit object-space geometric normal.
func (t *Triangle) FaceNormal() math3d.Vec3 {
	return t.normal
}
