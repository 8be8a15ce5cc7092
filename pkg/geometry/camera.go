package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// maxPitch keeps the camera away from straight up or down, where the right
// vector would collapse.
const maxPitch = math.Pi/2 - 1e-3

// Camera is a pinhole camera described by an origin, a yaw/pitch orientation
// and a vertical field of view. Forward looks down +Z at zero yaw and pitch.
type Camera struct {
	Origin     core.Vec3
	TotalYaw   float64 // Radians around +Y, positive turns right
	TotalPitch float64 // Radians around +X, positive looks down

	fovAngle      float64
	fovMultiplier float64
}

// NewCamera creates a camera at origin looking down +Z
func NewCamera(origin core.Vec3, fovAngle float64) *Camera {
	c := &Camera{Origin: origin}
	c.SetFovAngle(fovAngle)
	return c
}

// SetFovAngle sets the vertical field of view in degrees
func (c *Camera) SetFovAngle(degrees float64) {
	c.fovAngle = degrees
	c.fovMultiplier = math.Tan(degrees * math.Pi / 180 / 2)
}

// FovAngle returns the vertical field of view in degrees
func (c *Camera) FovAngle() float64 {
	return c.fovAngle
}

// FovMultiplier returns tan(fov/2), the image plane half-height at distance 1
func (c *Camera) FovMultiplier() float64 {
	return c.fovMultiplier
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	rotation := core.RotationMatrix(c.TotalPitch, c.TotalYaw, 0)
	return core.TransformVector(rotation, core.UnitZ).Normalize()
}

// Rotate adds yaw and pitch deltas in radians
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.TotalYaw += deltaYaw
	c.TotalPitch = math.Max(-maxPitch, math.Min(maxPitch, c.TotalPitch+deltaPitch))
}

// LookAt orients the camera towards target
func (c *Camera) LookAt(target core.Vec3) {
	forward := target.Subtract(c.Origin).Normalize()
	if forward.LengthSquared() == 0 {
		return
	}
	c.TotalYaw = math.Atan2(forward.X, forward.Z)
	c.TotalPitch = math.Max(-maxPitch, math.Min(maxPitch, -math.Asin(forward.Y)))
}

// Move translates the camera along its own forward, right and world up axes
func (c *Camera) Move(forwardAmount, rightAmount, upAmount float64) {
	forward := c.Forward()
	right := cameraRight(forward)
	c.Origin = c.Origin.
		Add(forward.Multiply(forwardAmount)).
		Add(right.Multiply(rightAmount)).
		Add(core.UnitY.Multiply(upAmount))
}

// CameraToWorld returns the orthonormal basis right, up, forward placed at the
// camera origin.
func (c *Camera) CameraToWorld() core.Matrix {
	forward := c.Forward()
	right := cameraRight(forward)
	up := forward.Cross(right)
	return core.BasisMatrix(right, up, forward, c.Origin)
}

func cameraRight(forward core.Vec3) core.Vec3 {
	right := core.UnitY.Cross(forward).Normalize()
	if right.LengthSquared() == 0 {
		return core.UnitX
	}
	return right
}
