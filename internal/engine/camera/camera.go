// Package camera provides the orbit camera and its pointer controls.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

// polarEpsilon keeps the polar angle off the poles, where the view basis
// degenerates.
const polarEpsilon = 1e-6

// OrbitCamera orbits a target point on a sphere.
type OrbitCamera struct {
	// Point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Polar    float32 // Angle from +Y (radians)
	Azimuth  float32 // Angle around Y from +Z towards +X (radians)

	// Projection
	FOV  float32 // Vertical field of view (degrees)
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPolar    float32
	MaxPolar    float32

	// Sensitivity
	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
}

// NewOrbitCamera creates a camera at position looking at target.
func NewOrbitCamera(position, target math.Vec3, fov float32) *OrbitCamera {
	c := &OrbitCamera{
		Target:      target,
		FOV:         fov,
		Near:        0.1,
		Far:         1000,
		MinDistance: 0,
		MaxDistance: math32.Inf(1),
		MinPolar:    0,
		MaxPolar:    math32.Pi,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		PanSpeed:    1,
	}
	c.SetPosition(position)
	return c
}

// SetPosition moves the camera to p, keeping the target.
func (c *OrbitCamera) SetPosition(p math.Vec3) {
	off := p.Sub(c.Target)
	c.Distance = off.Length()
	if c.Distance == 0 {
		c.Polar, c.Azimuth = math32.Pi/2, 0
	} else {
		c.Polar = math32.Acos(math32.Max(-1, math32.Min(1, off.Y/c.Distance)))
		c.Azimuth = math32.Atan2(off.X, off.Z)
	}
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Polar)
	sa, ca := math32.Sincos(c.Azimuth)
	return c.Target.Add(math.Vec3{
		X: c.Distance * sp * sa,
		Y: c.Distance * cp,
		Z: c.Distance * sp * ca,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV*math32.Pi/180, aspect, c.Near, c.Far)
}

// Rotate orbits by dx, dy pixels of pointer motion in a viewport of the
// given height. A drag across the full height turns a full circle.
func (c *OrbitCamera) Rotate(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	c.Azimuth -= 2 * math32.Pi * dx / viewportHeight * c.RotateSpeed
	c.Polar -= 2 * math32.Pi * dy / viewportHeight * c.RotateSpeed
	c.clamp()
}

// Zoom dollies towards the target for positive steps and away for negative.
func (c *OrbitCamera) Zoom(steps float32) {
	c.Distance *= math32.Pow(0.95, c.ZoomSpeed*steps)
	c.clamp()
}

// Pan moves the target in the camera plane so the point under the pointer
// follows it.
func (c *OrbitCamera) Pan(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	view := c.ViewMatrix()
	// Camera right and up are the first two rows of the view rotation.
	right := math.Vec3{X: view[0], Y: view[4], Z: view[8]}
	up := math.Vec3{X: view[1], Y: view[5], Z: view[9]}

	visible := c.Distance * math32.Tan(c.FOV*math32.Pi/360)
	unit := 2 * visible / viewportHeight * c.PanSpeed

	c.Target = c.Target.
		Sub(right.Scale(dx * unit)).
		Add(up.Scale(dy * unit))
}

func (c *OrbitCamera) clamp() {
	c.Polar = math32.Max(c.MinPolar, math32.Min(c.MaxPolar, c.Polar))
	c.Polar = math32.Max(polarEpsilon, math32.Min(math32.Pi-polarEpsilon, c.Polar))
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))
}
