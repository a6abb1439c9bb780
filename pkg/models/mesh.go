// Package models loads triangle meshes and turns them into trace primitives.
package models

import (
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/trace"
)

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face represents a triangle face with vertex indices and material reference.
// Vertices are ordered counter-clockwise when seen from the front.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material the tracer understands.
type Material struct {
	Name      string
	BaseColor [4]float64      // RGBA in 0-1 range
	BaseMap   *render.Texture // Optional base color texture
}

// DefaultMaterial is used for faces without a material, matching the glTF
// default of an opaque white base color.
var DefaultMaterial = Material{Name: "default", BaseColor: [4]float64{1, 1, 1, 1}}

// HasTexture reports whether the material samples a base color texture.
func (m *Material) HasTexture() bool {
	return m.BaseMap != nil && m.BaseMap.Width > 0 && m.BaseMap.Height > 0
}

// Color returns the material's base color modulated by its texture at uv.
func (m *Material) Color(uv math3d.Vec2) trace.Color {
	c := trace.RGB(m.BaseColor[0], m.BaseColor[1], m.BaseColor[2])
	if m.HasTexture() {
		c = c.Mul(trace.FromRGBA(m.BaseMap.Sample(uv.X, uv.Y)))
	}
	return c
}

// Lambert returns a diffuse material whose ambient and diffuse reflectance
// both equal c.
func Lambert(c trace.Color) trace.MaterialRef {
	return trace.Some(trace.NewLambert(c, c))
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// CalculateNormals assigns each face's normal to its vertices (flat shading).
// Shared vertices end up with the normal of the last face that uses them.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		normal := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = normal.Normalize()
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	// Unnormalized face normals weight each face by its area.
	for _, f := range m.Faces {
		normal := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Triangles converts the mesh into trace triangles placed in the world by tr.
//
// Each vertex carries its own material so that textured meshes keep their
// detail after barycentric interpolation. When override holds a material it
// replaces every mesh material. Faces with collinear vertices are skipped.
func (m *Mesh) Triangles(tr math3d.Transform, override trace.MaterialRef) []trace.Primitive {
	_, overridden := override.Get()
	flat := make(map[int]trace.MaterialRef)

	prims := make([]trace.Primitive, 0, len(m.Faces))
	for _, f := range m.Faces {
		if m.faceNormal(f).LenSq() == 0 {
			continue
		}

		mat := m.GetMaterial(f.Material)
		if mat == nil {
			mat = &DefaultMaterial
		}

		var verts [3]trace.Vertex
		for i, vi := range f.V {
			src := m.Vertices[vi]
			v := trace.Vertex{
				Position: src.Position,
				Normal:   src.Normal,
				UV:       src.UV,
			}
			switch {
			case overridden:
				v.Material = override
			case mat.HasTexture():
				v.Material = Lambert(mat.Color(src.UV))
			default:
				ref, ok := flat[f.Material]
				if !ok {
					ref = Lambert(mat.Color(src.UV))
					flat[f.Material] = ref
				}
				v.Material = ref
			}
			verts[i] = v
		}
		prims = append(prims, trace.NewTriangle(verts[0], verts[1], verts[2], tr))
	}
	return prims
}
