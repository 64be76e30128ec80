package scene

import (
	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/pkg/math"
)

// LightKind distinguishes the light types the renderer supports.
type LightKind int

const (
	Ambient LightKind = iota
	Directional
	Point
)

func (k LightKind) String() string {
	switch k {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	case Point:
		return "point"
	default:
		return "unknown"
	}
}

// Light is a scene light. Position is ignored for ambient lights; a
// directional light shines from Position towards the origin.
type Light struct {
	Kind       LightKind
	Position   math.Vec3
	Color      Color
	Intensity  float32
	CastShadow bool
}

// Material is a metallic-roughness surface.
type Material struct {
	Color     Color
	Opacity   float32
	Metallic  float32
	Roughness float32
}

// MaterialOf reads the surface parameters carried by a loaded mesh.
func MaterialOf(m *asset.Mesh) Material {
	return Material{
		Color:     Color{m.BaseColor[0], m.BaseColor[1], m.BaseColor[2]},
		Opacity:   m.BaseColor[3],
		Metallic:  m.Metallic,
		Roughness: m.Roughness,
	}
}

// Transform is a local placement with Euler XYZ rotation in radians.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// IdentityTransform leaves geometry where it is.
func IdentityTransform() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// UniformScale returns a transform scaling by s about the origin.
func UniformScale(s float32) Transform {
	return Transform{Scale: math.Vec3{X: s, Y: s, Z: s}}
}

// Matrix returns T * Rx * Ry * Rz * S.
func (t Transform) Matrix() math.Mat4 {
	m := math.Translate(t.Position.X, t.Position.Y, t.Position.Z)
	if t.Rotation.X != 0 {
		m = m.Mul(math.RotateX(t.Rotation.X))
	}
	if t.Rotation.Y != 0 {
		m = m.Mul(math.RotateY(t.Rotation.Y))
	}
	if t.Rotation.Z != 0 {
		m = m.Mul(math.RotateZ(t.Rotation.Z))
	}
	return m.Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// Node is one entry of the declarative scene tree. A node with a Mesh is
// drawn; Children inherit its transform.
type Node struct {
	Name          string
	Mesh          *asset.Mesh
	Material      Material
	Transform     Transform
	CastShadow    bool
	ReceiveShadow bool
	Children      []*Node

	// Bounds, when set, covers the node and all its children in local
	// space, so bounds queries need not visit the vertices.
	Bounds asset.Bounds
}
