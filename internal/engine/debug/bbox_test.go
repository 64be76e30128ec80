package debug

import (
	"testing"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/pkg/math"
)

func TestGenerateBBoxWireframeVertices(t *testing.T) {
	v := GenerateBBoxWireframeVertices(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3})
	if len(v) != BBoxWireframeVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BBoxWireframeVertexCount*3)
	}
	for i := 0; i < len(v); i += 3 {
		if abs(v[i]) != 1 || abs(v[i+1]) != 2 || abs(v[i+2]) != 3 {
			t.Errorf("vertex %d = %v is not a corner", i/3, v[i:i+3])
		}
	}
	// Every edge changes exactly one axis.
	for e := 0; e < len(v); e += 6 {
		changed := 0
		for axis := 0; axis < 3; axis++ {
			if v[e+axis] != v[e+3+axis] {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("edge %d changes %d axes", e/6, changed)
		}
	}
}

func TestBoundsWireframe(t *testing.T) {
	if BoundsWireframe(asset.Bounds{}, 1) != nil {
		t.Error("empty bounds should produce no vertices")
	}

	var b asset.Bounds
	b.Extend(math.Vec3{})
	b.Extend(math.Vec3{X: 1, Y: 1, Z: 1})
	v := BoundsWireframe(b, 0.5)
	if v[0] != -0.5 || v[3] != 1.5 {
		t.Errorf("padding not applied: first edge %v", v[:6])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
