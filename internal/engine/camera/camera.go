// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
)

// Camera is what the viewer needs from a camera.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	Projection(aspect float32) mgl32.Mat4
	EyePosition() mgl32.Vec3
}

// Lens holds the perspective projection settings.
type Lens struct {
	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// DefaultLens returns a 45 degree lens.
func DefaultLens() Lens {
	return Lens{FOV: 45, Near: 0.1, Far: 1000}
}

// Projection returns the perspective matrix for aspect.
func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.FOV), aspect, l.Near, l.Far)
}

// Zoom narrows or widens the field of view, kept within [1, 90] degrees.
func (l *Lens) Zoom(delta float32) {
	l.FOV = mgl32.Clamp(l.FOV-delta, 1, 90)
}

// FlyCamera is a free-look camera moved in its own frame.
type FlyCamera struct {
	Lens

	Position mgl32.Vec3
	Yaw      float32 // degrees, -90 looks down -Z
	Pitch    float32 // degrees

	MouseSensitivity float32
}

// NewFlyCamera creates a camera at (0, 0, 3) looking down -Z.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{}
	c.Reset()
	return c
}

// Reset restores position, orientation, lens and sensitivity.
func (c *FlyCamera) Reset() {
	c.Lens = DefaultLens()
	c.Position = mgl32.Vec3{0, 0, 3}
	c.Yaw = -90
	c.Pitch = 0
	c.MouseSensitivity = 0.1
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// Right returns the unit right vector.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return c.Front().Cross(geometry.Up).Normalize()
}

// ViewMatrix implements Camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), geometry.Up)
}

// EyePosition implements Camera.
func (c *FlyCamera) EyePosition() mgl32.Vec3 {
	return c.Position
}

// ProcessMouse turns the camera by a mouse delta in pixels. Pitch stays
// within 89 degrees of the horizon.
func (c *FlyCamera) ProcessMouse(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch-dy*c.MouseSensitivity, -89, 89)
}

// Move translates the camera. dir is in camera space: x right, y world up,
// z forward.
func (c *FlyCamera) Move(dir mgl32.Vec3, distance float32) {
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	offset := c.Right().Mul(dir.X()).
		Add(geometry.Up.Mul(dir.Y())).
		Add(c.Front().Mul(dir.Z()))
	c.Position = c.Position.Add(offset.Mul(distance))
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Lens

	// Center point to orbit around
	Center mgl32.Vec3

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
		Lens:            DefaultLens(),
		Distance:        3,
		RotationX:       0.5,
		MinDistance:     0.1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// EyePosition implements Camera.
func (c *OrbitCamera) EyePosition() mgl32.Vec3 {
	cosX := math32.Cos(c.RotationX)
	offset := mgl32.Vec3{
		cosX * math32.Sin(c.RotationY),
		math32.Sin(c.RotationX),
		cosX * math32.Cos(c.RotationY),
	}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix implements Camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.EyePosition(), c.Center, geometry.Up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point on the ground plane.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sinY, cosY := math32.Sincos(c.RotationY)
	c.Center = c.Center.Add(mgl32.Vec3{
		(-sinY*forward + cosY*right) * speed,
		up * speed,
		(-cosY*forward - sinY*right) * speed,
	})
}

// FitToBounds centres the camera on b and backs off until it is in view.
// Empty bounds leave the camera unchanged.
func (c *OrbitCamera) FitToBounds(b geometry.Bounds) {
	if b.IsEmpty() {
		return
	}
	c.Center = b.Center()

	radius := b.Radius()
	halfFOV := mgl32.DegToRad(c.FOV) / 2
	c.Distance = mgl32.Clamp(radius/math32.Sin(halfFOV), c.MinDistance, c.MaxDistance)
	c.RotationX = 0.5
	c.RotationY = 0
}
