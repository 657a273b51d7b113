// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/atelier-lux/vitrail/pkg/math"
)

// OrbitCamera orbits around a center point. Used for the installation
// overview mode.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        6.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     40.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * math32.Cos(c.RotationX) * math32.Sin(c.RotationY)
	y := c.Distance * math32.Sin(c.RotationX)
	z := c.Distance * math32.Cos(c.RotationX) * math32.Cos(c.RotationY)

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds adjusts the camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(min, max math.Vec3) {
	c.Center = min.Add(max).Scale(0.5)

	size := max.Sub(min)
	maxSize := size.X
	if size.Z > maxSize {
		maxSize = size.Z
	}

	c.Distance = maxSize * 1.4
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}

	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0.0
}

// FirstPersonCamera is the walkthrough camera. Its position is written each
// tick by the player controller; it owns only the look direction.
type FirstPersonCamera struct {
	Position math.Vec3

	Yaw   float32 // Horizontal look angle (radians)
	Pitch float32 // Vertical look angle (radians), clamped

	Sensitivity float32
	MaxPitch    float32
}

// NewFirstPersonCamera creates a first-person camera with default settings.
func NewFirstPersonCamera() *FirstPersonCamera {
	return &FirstPersonCamera{
		Sensitivity: 0.0025,
		MaxPitch:    1.55, // just under straight up/down
	}
}

// HandleMouseDelta rotates the look direction from relative mouse motion.
func (c *FirstPersonCamera) HandleMouseDelta(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.Sensitivity
	c.Pitch -= deltaY * c.Sensitivity

	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// LookDirection returns the unit view direction.
func (c *FirstPersonCamera) LookDirection() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: math32.Sin(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: math32.Cos(c.Yaw) * cp,
	}
}

// ForwardDirection returns the camera's forward direction projected onto the
// XZ plane, so walking never changes altitude directly.
func (c *FirstPersonCamera) ForwardDirection() math.Vec3 {
	return math.Vec3{X: math32.Sin(c.Yaw), Z: math32.Cos(c.Yaw)}
}

// RightDirection returns the camera's right direction on the XZ plane.
func (c *FirstPersonCamera) RightDirection() math.Vec3 {
	return math.Vec3{X: -math32.Cos(c.Yaw), Z: math32.Sin(c.Yaw)}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position, c.Position.Add(c.LookDirection()), up)
}
