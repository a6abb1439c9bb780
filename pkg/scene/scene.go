package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/trace"
)

// Default camera field of view in degrees.
const DefaultFOVDeg = 60

// DefaultEye is the camera position used when the scene omits a camera.
var DefaultEye = math3d.V3(0, 0, 5)

// Scene is a loaded scene ready to render.
type Scene struct {
	World      *trace.World
	Background trace.Color

	Eye    math3d.Vec3 // Camera position
	Target math3d.Vec3 // Point the camera looks at
	FOV    float64     // Vertical field of view in radians
}

// Load reads and builds the scene file at path. Mesh paths are resolved
// relative to the file's directory.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene description from r and builds it. dir is the base
// directory for relative mesh paths.
func Parse(r io.Reader, dir string) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return cfg.Build(dir)
}

// Build validates the configuration and constructs the scene.
func (c *Config) Build(dir string) (*Scene, error) {
	world := trace.NewWorld(c.Ambient.Color())

	for i, lc := range c.Lights {
		light, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		world.AddLight(light)
	}

	for i, sc := range c.Spheres {
		sphere, err := sc.Build()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(sphere)
	}

	for i, tc := range c.Triangles {
		tri, err := tc.Build()
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		world.Add(tri)
	}

	loader := models.NewGLTFLoader()
	for i, mc := range c.Meshes {
		prims, err := mc.Build(dir, loader)
		if err != nil {
			return nil, fmt.Errorf("mesh %d (%s): %w", i, mc.Path, err)
		}
		world.Add(prims...)
	}

	fov := c.Camera.FOVDeg
	if fov == 0 {
		fov = DefaultFOVDeg
	}
	if fov <= 0 || fov >= 180 {
		return nil, fmt.Errorf("camera: %w", invalid("fovDeg must be in (0, 180), got %v", fov))
	}
	eye, target := c.Camera.Position.Vec3(), c.Camera.LookAt.Vec3()
	if c.Camera.Position == (Vec{}) && c.Camera.LookAt == (Vec{}) {
		eye = DefaultEye
	}
	if eye == target {
		return nil, fmt.Errorf("camera: %w", invalid("position and lookAt coincide"))
	}

	return &Scene{
		World:      world,
		Background: c.Background.Color(),
		Eye:        eye,
		Target:     target,
		FOV:        fov * math.Pi / 180,
	}, nil
}

// Camera returns a camera for the scene's viewpoint with the given aspect
// ratio (width / height).
func (s *Scene) Camera(aspect float64) *render.Camera {
	cam := render.NewCamera()
	cam.SetPosition(s.Eye)
	cam.SetFOV(s.FOV)
	cam.SetAspectRatio(aspect)
	cam.LookAt(s.Target)
	return cam
}

// Distance returns the distance from the camera to its target.
func (s *Scene) Distance() float64 {
	return s.Eye.Distance(s.Target)
}

// Raytracer returns a raytracer for the scene viewed through cam.
func (s *Scene) Raytracer(cam *render.Camera) *render.Raytracer {
	rt := render.NewRaytracer(s.World, cam)
	rt.Background = s.Background
	return rt
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
