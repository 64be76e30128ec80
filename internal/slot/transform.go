package slot

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

// Transform places the loaded model in the scene. It is a value: the
// per-frame hook returns a new Transform rather than mutating a shared one.
type Transform struct {
	Scale    float32
	Position math.Vec3

	// RotationY is the current yaw in radians, kept in [0, 2π).
	RotationY float32
	// SpinRate is the yaw velocity in radians per second.
	SpinRate float32
}

// Advance returns the transform after dt seconds of spin.
func (t Transform) Advance(dt float32) Transform {
	if t.SpinRate == 0 || dt <= 0 {
		return t
	}
	t.RotationY = math32.Mod(t.RotationY+t.SpinRate*dt, 2*math32.Pi)
	if t.RotationY < 0 {
		t.RotationY += 2 * math32.Pi
	}
	return t
}

// Matrix returns translate * rotateY * uniform scale.
func (t Transform) Matrix() math.Mat4 {
	return math.Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(math.RotateY(t.RotationY)).
		Mul(math.Scale(t.Scale, t.Scale, t.Scale))
}
