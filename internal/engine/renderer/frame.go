package renderer

import (
	"github.com/Faultbox/orbitview/internal/engine/lighting"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

// View is the camera state for one frame.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Position   math.Vec3
}

// pointDecay matches physically based inverse-square falloff.
const pointDecay = 2

// buildRig converts the description's lights into shader-ready values.
// Intensities are folded into the colours.
func buildRig(rig *lighting.Rig, desc *scene.Description) {
	rig.Clear()
	for _, l := range desc.Lights {
		c := [3]float32(l.Color.Scale(l.Intensity))
		switch l.Kind {
		case scene.Ambient:
			rig.AddAmbient(c)
		case scene.Directional:
			rig.AddDirectional(l.Position, math.Vec3{}, c, l.CastShadow && desc.Shadows.Enabled)
		case scene.Point:
			rig.AddPoint(lighting.PointLight{
				Position: l.Position.Array(),
				Color:    c,
				Decay:    pointDecay,
			})
		}
	}
	env := desc.Environment
	rig.Hemisphere = lighting.Hemisphere{
		Sky:    [3]float32(env.Sky.Scale(env.Intensity)),
		Ground: [3]float32(env.Ground.Scale(env.Intensity)),
	}
}

// drawOrder returns opaque items first, then translucent ones, keeping the
// relative order within each group.
func drawOrder(items []scene.DrawItem) []scene.DrawItem {
	out := make([]scene.DrawItem, 0, len(items))
	for _, it := range items {
		if it.Material.Opacity >= 1 {
			out = append(out, it)
		}
	}
	for _, it := range items {
		if it.Material.Opacity < 1 {
			out = append(out, it)
		}
	}
	return out
}
