package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/lumen/pkg/math3d"
)

// writeQuad saves a unit quad in the z=0 plane facing +Z as a GLB file.
func writeQuad(t *testing.T, withNormals bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		}),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{
			{0, 1}, {1, 1}, {1, 0}, {0, 0},
		}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{
			{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
		})
	}

	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})),
			Attributes: attrs,
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
	if !loader.LoadTextures {
		t.Error("LoadTextures should default to true")
	}
}

func TestLoadGLBQuad(t *testing.T) {
	mesh, err := LoadGLB(writeQuad(t, true))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	if mesh.Name != "quad.glb" {
		t.Errorf("Name = %q, want quad.glb", mesh.Name)
	}
	if mesh.VertexCount() != 4 || mesh.TriangleCount() != 2 {
		t.Fatalf("got %d vertices, %d faces; want 4, 2", mesh.VertexCount(), mesh.TriangleCount())
	}

	for i, f := range mesh.Faces {
		if f.Material != 0 {
			t.Errorf("face %d material = %d, want 0", i, f.Material)
		}
		// Winding is kept counter-clockwise so face normals point out of the file's front side.
		if n := mesh.faceNormal(f).Normalize(); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("face %d normal = %v, want +Z", i, n)
		}
	}

	if got := mesh.Materials[0].BaseColor; got != [4]float64{1, 0, 0, 1} {
		t.Errorf("BaseColor = %v, want red", got)
	}
	if !mesh.BoundsMin.ApproxEqual(math3d.Zero3(), 1e-9) || !mesh.BoundsMax.ApproxEqual(math3d.V3(1, 1, 0), 1e-9) {
		t.Errorf("bounds = %v..%v, want (0,0,0)..(1,1,0)", mesh.BoundsMin, mesh.BoundsMax)
	}

	// V is flipped on load.
	if uv := mesh.Vertices[0].UV; uv != math3d.V2(0, 0) {
		t.Errorf("vertex 0 UV = %v, want (0,0)", uv)
	}
}

func TestLoadGLBGeneratesNormals(t *testing.T) {
	mesh, err := LoadGLB(writeQuad(t, false))
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	for i, v := range mesh.Vertices {
		if !v.Normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
}

func TestLoadGLBNoGeometry(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name: "points",
		Primitives: []*gltf.Primitive{{
			Mode: gltf.PrimitivePoints,
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
			},
		}},
	}}
	path := filepath.Join(t.TempDir(), "points.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	_, err := LoadGLB(path)
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}
