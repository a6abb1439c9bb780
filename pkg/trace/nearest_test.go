package trace

import (
	"math"
	"sync"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestNearestIgnoresQueryOrder(t *testing.T) {
	near := NewSphereAt(math3d.V3(0, 0, -4), 1, None()) // t = 3
	far := NewSphereAt(math3d.V3(0, 0, -8), 1, None())  // t = 7
	ray := NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))

	orders := map[string][]Primitive{
		"near first": {near, far},
		"far first":  {far, near},
	}

	for name, prims := range orders {
		t.Run(name, func(t *testing.T) {
			world := NewWorld(Black)
			world.Add(prims...)

			prim, hit, ok := Nearest(world, ray)
			if !ok {
				t.Fatal("expected hit, got miss")
			}
			if prim != Primitive(near) {
				t.Errorf("nearest primitive is not the t=3 sphere")
			}
			if math.Abs(hit.T-3) > tolerance {
				t.Errorf("t = %v, want 3", hit.T)
			}
		})
	}
}

func TestNearestTieKeepsFirst(t *testing.T) {
	a := unitTriangle(None())
	b := unitTriangle(None())
	world := NewWorld(Black)
	world.Add(a, b)

	prim, _, ok := Nearest(world, NewRay(math3d.V3(0.25, 0.25, 1), math3d.V3(0, 0, -1)))
	if !ok || prim != Primitive(a) {
		t.Error("ties should resolve to the earlier geometry")
	}
}

func TestNearestMixedPrimitives(t *testing.T) {
	tri := NewFlatTriangle(math3d.V3(-5, -5, -2), math3d.V3(5, -5, -2), math3d.V3(0, 5, -2), None())
	sphere := NewSphereAt(math3d.V3(0, 0, -6), 1, None())
	world := NewWorld(Black)
	world.Add(sphere, tri)

	prim, hit, ok := Nearest(world, NewRay(math3d.Zero3(), math3d.V3(0, 0, -1)))
	if !ok || prim != Primitive(tri) || math.Abs(hit.T-2) > tolerance {
		t.Errorf("Nearest = (%T, t=%v, %v), want triangle at t=2", prim, hit.T, ok)
	}
}

func TestTrace(t *testing.T) {
	world := NewWorld(Gray(0.2))
	world.Add(NewSphereAt(math3d.Zero3(), 1, Some(NewLambert(White, White))))
	world.AddLight(NewPointLight(math3d.V3(0, 0, 5), White))

	if _, ok := Trace(world, NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, 1))); ok {
		t.Error("ray pointing away should escape")
	}

	got, ok := Trace(world, NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1)))
	if !ok {
		t.Fatal("expected hit, got miss")
	}
	if want := Gray(1.2); !got.ApproxEqual(want, 1e-6) {
		t.Errorf("Trace = %v, want %v", got, want)
	}
}

func TestTraceConcurrent(t *testing.T) {
	world := NewWorld(Gray(0.1))
	world.Add(
		NewSphereAt(math3d.V3(0, 0, -5), 1, Some(NewLambert(White, RGB(1, 0, 0)))),
		NewFlatTriangle(math3d.V3(-5, -1, -10), math3d.V3(5, -1, -10), math3d.V3(0, -1, 0), Some(NewLambert(White, White))),
	)
	world.AddLight(NewPointLight(math3d.V3(2, 5, 0), White))

	rays := make([]Ray, 64)
	want := make([]Color, len(rays))
	for i := range rays {
		x := float64(i%8)/8 - 0.5
		y := float64(i/8)/8 - 0.5
		rays[i] = NewRay(math3d.Zero3(), math3d.V3(x, y, -1))
		want[i], _ = Trace(world, rays[i])
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, r := range rays {
				if got, _ := Trace(world, r); got != want[i] {
					t.Errorf("ray %d: concurrent Trace = %v, want %v", i, got, want[i])
				}
			}
		}()
	}
	wg.Wait()
}
