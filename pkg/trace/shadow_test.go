package trace

import (
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

// floor is a large triangle in the z=0 plane facing +Z.
func floor() *Triangle {
	m := Some(NewLambert(Black, White))
	return NewFlatTriangle(math3d.V3(-10, -10, 0), math3d.V3(10, -10, 0), math3d.V3(0, 10, 0), m)
}

func TestOccluded(t *testing.T) {
	light := PointLight{Position: math3d.V3(0, 0, 10), Color: White, Constant: 1, Quadratic: 0.01}
	p := math3d.Zero3()

	tests := []struct {
		name     string
		occluder Primitive
		want     bool
	}{
		{"no occluder", nil, false},
		{"sphere between", NewSphereAt(math3d.V3(0, 0, 5), 1, None()), true},
		{"triangle between", NewFlatTriangle(math3d.V3(-1, -1, 3), math3d.V3(1, -1, 3), math3d.V3(0, 1, 3), None()), true},
		{"sphere beyond light", NewSphereAt(math3d.V3(0, 0, 20), 1, None()), false},
		{"sphere behind point", NewSphereAt(math3d.V3(0, 0, -5), 1, None()), false},
		{"sphere off axis", NewSphereAt(math3d.V3(5, 0, 5), 1, None()), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			world := NewWorld(Black)
			world.Add(floor())
			if tc.occluder != nil {
				world.Add(tc.occluder)
			}
			world.AddLight(light)

			if got := Occluded(world, p, light); got != tc.want {
				t.Errorf("Occluded = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShadowRemovesDiffuse(t *testing.T) {
	light := PointLight{Position: math3d.V3(0, 0, 10), Color: White, Constant: 1, Quadratic: 0.01}
	n := math3d.V3(0, 0, 1)
	p := math3d.Zero3()

	world := NewWorld(Black)
	world.Add(floor(), NewSphereAt(math3d.V3(0, 0, 5), 1, None()))
	world.AddLight(light)

	if got := DiffuseLight(world, p, n); got != Black {
		t.Errorf("shadowed diffuse = %v, want black", got)
	}

	// Without the occluder: attenuation(10) * max(0, N·L) = 1/(1+0.01*100) * 1.
	world.Primitives = world.Primitives[:1]
	want := light.Attenuation(10)
	got := DiffuseLight(world, p, n)
	if !got.ApproxEqual(want, tolerance) || !got.ApproxEqual(Gray(0.5), tolerance) {
		t.Errorf("lit diffuse = %v, want %v", got, want)
	}
}

func TestShadowPerLight(t *testing.T) {
	n := math3d.V3(0, 0, 1)
	blocked := NewPointLight(math3d.V3(0, 0, 10), RGB(1, 0, 0))
	open := NewPointLight(math3d.V3(0, 10, 10), RGB(0, 1, 0))

	world := NewWorld(Black)
	world.Add(floor(), NewSphereAt(math3d.V3(0, 0, 5), 1, None()))
	world.AddLight(blocked, open)

	got := DiffuseLight(world, math3d.Zero3(), n)
	if got.R != 0 {
		t.Errorf("blocked light contributed red %v", got.R)
	}
	// cos of 45° toward the open light.
	if want := 1 / 1.4142135623730951; got.G < want-1e-9 || got.G > want+1e-9 {
		t.Errorf("open light contributed green %v, want %v", got.G, want)
	}
}

func TestIlluminateAmbientOnly(t *testing.T) {
	world := NewWorld(RGB(0.2, 0.4, 0.6))
	world.AddLight(NewPointLight(math3d.V3(0, 0, 10), White))

	got := Illuminate(world, math3d.Zero3(), math3d.V3(0, 0, 1), Gray(0.5), Black)
	if want := RGB(0.1, 0.2, 0.3); !got.ApproxEqual(want, tolerance) {
		t.Errorf("Illuminate = %v, want %v", got, want)
	}
}

func TestOccludedLightAtPoint(t *testing.T) {
	world := NewWorld(Black)
	world.Add(NewSphereAt(math3d.Zero3(), 1, None()))
	light := NewPointLight(math3d.V3(0, 0, 1), White)

	if Occluded(world, math3d.V3(0, 0, 1), light) {
		t.Error("a light coincident with the point cannot be occluded")
	}
}
