// Package scene loads JSON scene descriptions into a traceable world.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/trace"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("invalid scene")

// Vec is a JSON [x, y, z] triple.
type Vec [3]float64

// Vec3 converts to a math3d vector.
func (v Vec) Vec3() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

// RGB is a JSON [r, g, b] triple in linear units.
type RGB [3]float64

// Color converts to a trace color.
func (c RGB) Color() trace.Color { return trace.RGB(c[0], c[1], c[2]) }

// Config is the on-disk scene description.
type Config struct {
	Ambient    RGB           `json:"ambient"`
	Background RGB           `json:"background"`
	Camera     CameraCfg     `json:"camera"`
	Lights     []LightCfg    `json:"lights"`
	Spheres    []SphereCfg   `json:"spheres,omitempty"`
	Triangles  []TriangleCfg `json:"triangles,omitempty"`
	Meshes     []MeshCfg     `json:"meshes,omitempty"`
}

// CameraCfg places the viewer.
type CameraCfg struct {
	Position Vec     `json:"position"`
	LookAt   Vec     `json:"lookAt"`
	FOVDeg   float64 `json:"fovDeg,omitempty"` // vertical; defaults to 60
}

// LightCfg describes a point light. Constant attenuation defaults to 1.
type LightCfg struct {
	Position  Vec      `json:"position"`
	Color     RGB      `json:"color"`
	Constant  *float64 `json:"constant,omitempty"`
	Linear    float64  `json:"linear,omitempty"`
	Quadratic float64  `json:"quadratic,omitempty"`
}

// MaterialCfg is a diffuse material. A primitive without one reflects nothing.
type MaterialCfg struct {
	Ambient RGB `json:"ambient"`
	Diffuse RGB `json:"diffuse"`
}

// TransformCfg is the placement shared by every primitive. Rotation is in
// degrees (friendlier than radians) and applied X then Y then Z.
type TransformCfg struct {
	Position Vec  `json:"position"`
	RotDeg   Vec  `json:"rotDeg"`
	Scale    *Vec `json:"scale,omitempty"` // defaults to [1, 1, 1]
}

// SphereCfg is a sphere centered on its transform's position.
type SphereCfg struct {
	TransformCfg
	Radius   float64      `json:"radius"`
	Material *MaterialCfg `json:"material,omitempty"`
}

// TriangleCfg is a triangle in object space. Normals and per-vertex
// materials are optional; Material applies to vertices without their own.
type TriangleCfg struct {
	TransformCfg
	Vertices  [3]Vec          `json:"vertices"`
	Normals   *[3]Vec         `json:"normals,omitempty"`
	Material  *MaterialCfg    `json:"material,omitempty"`
	Materials [3]*MaterialCfg `json:"materials,omitempty"`
}

// MeshCfg references a glTF/GLB file relative to the scene file.
type MeshCfg struct {
	TransformCfg
	Path     string       `json:"path"`
	Material *MaterialCfg `json:"material,omitempty"` // overrides the file's materials
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScene, fmt.Sprintf(format, args...))
}

// Radians converts degrees to radians per axis.
func (v Vec) Radians() math3d.Vec3 {
	const k = math.Pi / 180
	return math3d.V3(v[0]*k, v[1]*k, v[2]*k)
}

// Build validates the placement and constructs the transform.
func (t TransformCfg) Build() (math3d.Transform, error) {
	scale := math3d.One3()
	if t.Scale != nil {
		scale = t.Scale.Vec3()
		if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
			return math3d.Transform{}, invalid("scale must be non-zero on all axes, got %v", *t.Scale)
		}
	}
	return math3d.NewTransform(t.Position.Vec3(), t.RotDeg.Radians(), scale), nil
}

// Build returns the material reference; nil means no material.
func (m *MaterialCfg) Build() trace.MaterialRef {
	if m == nil {
		return trace.None()
	}
	return trace.Some(trace.NewLambert(m.Ambient.Color(), m.Diffuse.Color()))
}

// Build validates and constructs the light.
func (l LightCfg) Build() (trace.PointLight, error) {
	light := trace.NewPointLight(l.Position.Vec3(), l.Color.Color())
	if l.Constant != nil {
		light.Constant = *l.Constant
	}
	light.Linear = l.Linear
	light.Quadratic = l.Quadratic

	if light.Constant <= 0 {
		return light, invalid("constant attenuation must be > 0, got %v", light.Constant)
	}
	if light.Linear < 0 || light.Quadratic < 0 {
		return light, invalid("attenuation coefficients must be >= 0, got linear=%v quadratic=%v", light.Linear, light.Quadratic)
	}
	return light, nil
}

// Build validates and constructs the sphere.
func (s SphereCfg) Build() (*trace.Sphere, error) {
	if s.Radius < 0 || math.IsNaN(s.Radius) {
		return nil, invalid("radius must be >= 0, got %v", s.Radius)
	}
	tr, err := s.TransformCfg.Build()
	if err != nil {
		return nil, err
	}
	return trace.NewSphere(s.Radius, s.Material.Build(), tr), nil
}

// Build validates and constructs the triangle.
func (t TriangleCfg) Build() (*trace.Triangle, error) {
	a, b, c := t.Vertices[0].Vec3(), t.Vertices[1].Vec3(), t.Vertices[2].Vec3()
	if b.Sub(a).Cross(c.Sub(a)).Len() < 1e-12 {
		return nil, invalid("vertices %v are collinear", t.Vertices)
	}
	tr, err := t.TransformCfg.Build()
	if err != nil {
		return nil, err
	}

	var verts [3]trace.Vertex
	for i, p := range t.Vertices {
		verts[i] = trace.Vertex{Position: p.Vec3(), Material: t.Material.Build()}
		if t.Normals != nil {
			verts[i].Normal = t.Normals[i].Vec3()
		}
		if t.Materials[i] != nil {
			verts[i].Material = t.Materials[i].Build()
		}
	}
	return trace.NewTriangle(verts[0], verts[1], verts[2], tr), nil
}

// Build loads the mesh file relative to dir and converts it to triangles.
func (m MeshCfg) Build(dir string, loader *models.GLTFLoader) ([]trace.Primitive, error) {
	if m.Path == "" {
		return nil, invalid("mesh path is empty")
	}
	tr, err := m.TransformCfg.Build()
	if err != nil {
		return nil, err
	}
	mesh, err := loader.Load(resolve(dir, m.Path))
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}
	return mesh.Triangles(tr, m.Material.Build()), nil
}
