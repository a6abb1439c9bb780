package trace

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestSphereIntersectScenario(t *testing.T) {
	sphere := NewSphereAt(math3d.Zero3(), 1, None())
	ray := NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1))

	hit, ok := sphere.Intersect(ray, NoHit)
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if math.Abs(hit.T-4) > tolerance {
		t.Errorf("t = %v, want 4", hit.T)
	}

	n := sphere.NormalAt(ray.At(hit.T))
	if !n.ApproxEqual(math3d.V3(0, 0, 1), tolerance) {
		t.Errorf("normal = %v, want (0, 0, 1)", n)
	}
}

func TestSphereIntersect(t *testing.T) {
	tests := []struct {
		name   string
		sphere *Sphere
		origin math3d.Vec3
		dir    math3d.Vec3
		hit    bool
		wantT  float64
	}{
		{
			name:   "pointing away",
			sphere: NewSphereAt(math3d.V3(0, 0, -10), 1, None()),
			origin: math3d.Zero3(),
			dir:    math3d.V3(0, 0, 1),
		},
		{
			name:   "passes beside",
			sphere: NewSphereAt(math3d.Zero3(), 1, None()),
			origin: math3d.V3(2, 0, 5),
			dir:    math3d.V3(0, 0, -1),
		},
		{
			name:   "from inside uses far root",
			sphere: NewSphereAt(math3d.Zero3(), 1, None()),
			origin: math3d.Zero3(),
			dir:    math3d.V3(0, 0, 1),
			hit:    true,
			wantT:  1,
		},
		{
			name:   "tangent graze",
			sphere: NewSphereAt(math3d.Zero3(), 1, None()),
			origin: math3d.V3(1, 0, 5),
			dir:    math3d.V3(0, 0, -1),
			hit:    true,
			wantT:  5,
		},
		{
			name:   "unnormalized direction",
			sphere: NewSphereAt(math3d.Zero3(), 1, None()),
			origin: math3d.V3(0, 0, 5),
			dir:    math3d.V3(0, 0, -2),
			hit:    true,
			wantT:  2,
		},
		{
			name:   "zero direction",
			sphere: NewSphereAt(math3d.Zero3(), 1, None()),
			origin: math3d.V3(0, 0, 5),
			dir:    math3d.Zero3(),
		},
		{
			name:   "non-uniform scale",
			sphere: NewSphere(1, None(), math3d.NewTransform(math3d.Zero3(), math3d.Zero3(), math3d.V3(2, 1, 1))),
			origin: math3d.V3(5, 0, 0),
			dir:    math3d.V3(-1, 0, 0),
			hit:    true,
			wantT:  3,
		},
		{
			name:   "zero radius",
			sphere: NewSphereAt(math3d.Zero3(), 0, None()),
			origin: math3d.V3(0, 0, 5),
			dir:    math3d.V3(0, 0, -1),
			hit:    true,
			wantT:  5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := tc.sphere.Intersect(NewRay(tc.origin, tc.dir), NoHit)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v (t=%v)", ok, tc.hit, hit.T)
			}
			if !ok {
				if hit.T != NoHit {
					t.Errorf("miss should return bestT unchanged, got %v", hit.T)
				}
				return
			}
			if math.Abs(hit.T-tc.wantT) > tolerance {
				t.Errorf("t = %v, want %v", hit.T, tc.wantT)
			}
			if hit.Alpha != 1 || hit.Beta != 0 || hit.Gamma != 0 {
				t.Errorf("sphere barycentrics = (%v, %v, %v), want (1, 0, 0)", hit.Alpha, hit.Beta, hit.Gamma)
			}
		})
	}
}

func TestSphereSelfSimilarity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	dir := math3d.V3(0.1, -0.2, -1)

	for range 200 {
		radius := 0.5 + rng.Float64()
		offset := math3d.V3(rng.Float64()-0.5, rng.Float64()-0.5, 3+rng.Float64()*5)
		k := 0.1 + rng.Float64()*10

		base, okBase := NewSphereAt(math3d.Zero3(), radius, None()).Intersect(NewRay(offset, dir), NoHit)
		scaled, okScaled := NewSphereAt(math3d.Zero3(), radius*k, None()).Intersect(NewRay(offset.Scale(k), dir), NoHit)

		if okBase != okScaled {
			t.Fatalf("hit mismatch under scale %v: base=%v scaled=%v", k, okBase, okScaled)
		}
		if okBase && math.Abs(scaled.T-k*base.T) > 1e-9*k*base.T {
			t.Fatalf("scaled t = %v, want %v", scaled.T, k*base.T)
		}
	}
}

func TestSphereNearestHitPolicy(t *testing.T) {
	sphere := NewSphereAt(math3d.Zero3(), 1, None())
	ray := NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1))

	if hit, ok := sphere.Intersect(ray, 3); ok || hit.T != 3 {
		t.Errorf("closer best should win: ok=%v t=%v", ok, hit.T)
	}
	if hit, ok := sphere.Intersect(ray, 10); !ok || math.Abs(hit.T-4) > tolerance {
		t.Errorf("farther best should be replaced: ok=%v t=%v", ok, hit.T)
	}
}

func TestSphereNormalAt(t *testing.T) {
	tests := []struct {
		name   string
		sphere *Sphere
		point  math3d.Vec3
		want   math3d.Vec3
	}{
		{"translated", NewSphereAt(math3d.V3(1, 2, 3), 2, None()), math3d.V3(1, 4, 3), math3d.V3(0, 1, 0)},
		{
			name:   "rotated",
			sphere: NewSphere(1, None(), math3d.NewTransform(math3d.Zero3(), math3d.V3(0, math.Pi/3, 0), math3d.One3())),
			point:  math3d.V3(0, 0, 1),
			want:   math3d.V3(0, 0, 1),
		},
		{
			name:   "stretched along X",
			sphere: NewSphere(1, None(), math3d.NewTransform(math3d.Zero3(), math3d.Zero3(), math3d.V3(2, 1, 1))),
			point:  math3d.V3(2, 0, 0),
			want:   math3d.V3(1, 0, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sphere.NormalAt(tc.point); !got.ApproxEqual(tc.want, tolerance) {
				t.Errorf("NormalAt(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestSphereShade(t *testing.T) {
	mat := Some(NewLambert(White, RGB(1, 0, 0)))
	sphere := NewSphereAt(math3d.Zero3(), 1, mat)

	world := NewWorld(Gray(0.1))
	world.Add(sphere)
	world.AddLight(NewPointLight(math3d.V3(0, 0, 5), White))

	tests := []struct {
		name  string
		point math3d.Vec3
		want  Color
	}{
		{"facing light", math3d.V3(0, 0, 1), RGB(1.1, 0.1, 0.1)},
		{"facing away", math3d.V3(0, 0, -1), Gray(0.1)},
		// Light direction from (1,0,0) is (-1,0,5)/√26, so N·L < 0.
		{"terminator", math3d.V3(1, 0, 0), Gray(0.1)},
		// N·toLight = 3, |toLight| = √18.
		{"oblique", math3d.V3(0, 0.6, 0.8), RGB(0.1+3/math.Sqrt(18), 0.1, 0.1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sphere.Shade(world, tc.point, Hit{Alpha: 1})
			if !got.ApproxEqual(tc.want, tolerance) {
				t.Errorf("Shade = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSphereShadeMissingMaterial(t *testing.T) {
	sphere := NewSphereAt(math3d.Zero3(), 1, None())
	world := NewWorld(White)
	world.Add(sphere)
	world.AddLight(NewPointLight(math3d.V3(0, 0, 5), White))

	if got := sphere.Shade(world, math3d.V3(0, 0, 1), Hit{Alpha: 1}); got != Black {
		t.Errorf("Shade without material = %v, want black", got)
	}
}

func BenchmarkSphereIntersectHit(b *testing.B) {
	sphere := NewSphereAt(math3d.Zero3(), 1, None())
	ray := NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1))

	for b.Loop() {
		_, _ = sphere.Intersect(ray, NoHit)
	}
}

func BenchmarkSphereIntersectMiss(b *testing.B) {
	sphere := NewSphereAt(math3d.Zero3(), 1, None())
	ray := NewRay(math3d.V3(5, 5, 5), math3d.V3(0, 0, -1))

	b.ReportAllocs()
	for b.Loop() {
		_, _ = sphere.Intersect(ray, NoHit)
	}
}
