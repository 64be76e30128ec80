package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/pkg/math"
)

// DirectionalLightMatrix computes the view-projection for the shadow map.
// lightDir is the direction TO the light; bounds is the world-space box of
// everything that casts or receives shadows.
func DirectionalLightMatrix(lightDir math.Vec3, bounds asset.Bounds) math.Mat4 {
	if bounds.Empty() {
		bounds.Extend(math.Vec3{X: -1, Y: -1, Z: -1})
		bounds.Extend(math.Vec3{X: 1, Y: 1, Z: 1})
	}
	dir := lightDir.Normalize()
	if dir.Length() == 0 {
		dir = math.Vec3{Y: 1}
	}

	center := bounds.Center()
	radius := math32.Max(bounds.Radius(), 1e-3)

	// Position light far enough to encompass entire scene
	lightDistance := radius * 2
	lightPos := center.Add(dir.Scale(lightDistance))

	// Avoid an up vector parallel with the light direction
	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(lightPos, center, up)

	// Padding avoids edge artifacts
	padding := radius * 0.1
	halfSize := radius + padding
	near := float32(0.1)
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	return proj.Mul(view)
}

// biasMatrix maps clip space [-1,1] to texture space [0,1].
var biasMatrix = math.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 0.5, 0,
	0.5, 0.5, 0.5, 1,
}

// TextureMatrix returns the light matrix composed with the clip-to-texture
// bias, for sampling the shadow map directly.
func TextureMatrix(lightViewProj math.Mat4) math.Mat4 {
	return biasMatrix.Mul(lightViewProj)
}
