package shadow

import (
	"testing"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/pkg/math"
)

func box(min, max math.Vec3) asset.Bounds {
	var b asset.Bounds
	b.Extend(min)
	b.Extend(max)
	return b
}

func project(m math.Mat4, p math.Vec3) [3]float32 {
	// Orthographic: w stays 1.
	return m.TransformPoint(p.Array())
}

func TestDirectionalLightMatrixCoversBounds(t *testing.T) {
	tests := []struct {
		name string
		dir  math.Vec3
	}{
		{"sun", math.Vec3{X: 10, Y: 10, Z: 5}},
		{"overhead", math.Vec3{Y: 1}},
		{"grazing", math.Vec3{X: 1, Y: 0.05}},
		{"zero falls back to overhead", math.Vec3{}},
	}

	bounds := box(math.Vec3{X: -10, Y: -2.5, Z: -10}, math.Vec3{X: 10, Y: 2.5, Z: 10})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DirectionalLightMatrix(tt.dir, bounds)

			c := project(m, bounds.Center())
			if abs(c[0]) > 1e-4 || abs(c[1]) > 1e-4 {
				t.Errorf("center projects to %v, want xy at origin", c)
			}

			for i := 0; i < 8; i++ {
				corner := bounds.Min
				if i&1 != 0 {
					corner.X = bounds.Max.X
				}
				if i&2 != 0 {
					corner.Y = bounds.Max.Y
				}
				if i&4 != 0 {
					corner.Z = bounds.Max.Z
				}
				p := project(m, corner)
				for axis, v := range p {
					if v < -1.0001 || v > 1.0001 {
						t.Errorf("corner %v axis %d = %v outside clip volume", corner, axis, v)
					}
				}
			}
		})
	}
}

func TestDirectionalLightMatrixEmptyBounds(t *testing.T) {
	m := DirectionalLightMatrix(math.Vec3{Y: 1}, asset.Bounds{})
	p := project(m, math.Vec3{})
	if abs(p[0]) > 1e-4 || abs(p[1]) > 1e-4 {
		t.Errorf("origin projects to %v", p)
	}
}

func TestTextureMatrix(t *testing.T) {
	p := TextureMatrix(math.Identity()).TransformPoint([3]float32{-1, 1, 0})
	want := [3]float32{0, 1, 0.5}
	for i := range p {
		if abs(p[i]-want[i]) > 1e-6 {
			t.Errorf("p[%d] = %v, want %v", i, p[i], want[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
