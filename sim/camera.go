package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// CameraHeight is the fixed height the camera keeps above the ground
	// while following the player.
	CameraHeight = 8

	// MouseSensitivity is the look rotation in radians per dragged pixel.
	MouseSensitivity = 0.3 * math.Pi / 180
)

// Camera is the view state handed to the renderer. Projection is the
// renderer's concern.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Look accumulates pitch and yaw from mouse drags.
type Look struct {
	Pitch float32
	Yaw   float32
}

// Drag applies a mouse movement of dx, dy pixels.
func (l *Look) Drag(dx, dy float64) {
	l.Pitch += float32(MouseSensitivity * dy)
	l.Yaw += float32(MouseSensitivity * dx)
}

// Rotation is yaw around +Y applied after pitch around +X.
func (l Look) Rotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(l.Yaw, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(l.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Heading is the yaw-only rotation movement intent is steered by.
func (l Look) Heading() mgl32.Quat {
	return mgl32.QuatRotate(l.Yaw, mgl32.Vec3{0, 1, 0})
}

// Follow places the camera above target and copies its rotation.
func (c *Camera) Follow(target *Transform) {
	c.Position = mgl32.Vec3{target.Position[0], CameraHeight, target.Position[2]}
	c.Rotation = target.Rotation
}
