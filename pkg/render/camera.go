package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/trace"
)

// Camera is a pinhole camera that generates primary rays.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)

	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
}

// NewCamera creates a new camera at (0, 0, 5) looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 5),
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 16.0 / 9.0,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetFOV sets the vertical field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
}

// Forward returns the forward direction vector.
func (c *Camera) Forward() math3d.Vec3 {
	// Forward is -Z in camera space, rotated by yaw and pitch
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the right direction vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.Yaw),
		0,
		-math.Sin(c.Yaw),
	)
}

// Up returns the up direction vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// LookAt makes the camera look at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()

	c.Pitch = math.Asin(dir.Y)
	c.Yaw = math.Atan2(-dir.X, -dir.Z)
}

// Orbit places the camera on a circle of the given radius around target at
// the given yaw and pitch, then looks at target.
func (c *Camera) Orbit(target math3d.Vec3, radius, yaw, pitch float64) {
	offset := math3d.V3(
		math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	).Scale(radius)
	c.Position = target.Add(offset)
	c.LookAt(target)
}

// Ray returns the unit-direction primary ray through the center of pixel
// (x, y) of a width×height image. Pixel (0, 0) is the top-left corner.
func (c *Camera) Ray(x, y, width, height int) trace.Ray {
	halfH := math.Tan(c.FOV / 2)
	halfW := halfH * c.AspectRatio

	u := (2*(float64(x)+0.5)/float64(width) - 1) * halfW
	v := (1 - 2*(float64(y)+0.5)/float64(height)) * halfH

	dir := c.Forward().Add(c.Right().Scale(u)).Add(c.Up().Scale(v))
	return trace.NewRay(c.Position, dir.Normalize())
}
