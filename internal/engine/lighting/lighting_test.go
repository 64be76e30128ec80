package lighting

import (
	"testing"

	"github.com/Faultbox/orbitview/pkg/math"
)

func TestAddDirectionalNormalizesTowardsLight(t *testing.T) {
	r := NewRig()
	if !r.AddDirectional(math.Vec3{Y: 10}, math.Vec3{}, [3]float32{1, 1, 1}, true) {
		t.Fatal("AddDirectional rejected first light")
	}
	got := r.Directional[0].Direction
	if got != [3]float32{0, 1, 0} {
		t.Errorf("direction = %v, want +Y", got)
	}
	if r.ShadowCaster() != 0 {
		t.Errorf("ShadowCaster() = %d, want 0", r.ShadowCaster())
	}
}

func TestRigCapacity(t *testing.T) {
	r := NewRig()
	for i := 0; i < MaxDirectionalLights; i++ {
		if !r.AddDirectional(math.Vec3{X: 1}, math.Vec3{}, [3]float32{}, false) {
			t.Fatalf("directional %d rejected", i)
		}
	}
	if r.AddDirectional(math.Vec3{X: 1}, math.Vec3{}, [3]float32{}, false) {
		t.Error("expected directional overflow to be rejected")
	}
	for i := 0; i < MaxPointLights; i++ {
		if !r.AddPoint(PointLight{}) {
			t.Fatalf("point %d rejected", i)
		}
	}
	if r.AddPoint(PointLight{}) {
		t.Error("expected point overflow to be rejected")
	}
	if r.ShadowCaster() != -1 {
		t.Errorf("ShadowCaster() = %d, want -1", r.ShadowCaster())
	}

	r.Clear()
	if len(r.Directional) != 0 || len(r.Points) != 0 || r.Ambient != [3]float32{} {
		t.Error("Clear left lights behind")
	}
}

func TestUniformPacking(t *testing.T) {
	r := NewRig()
	r.AddPoint(PointLight{Position: [3]float32{-10, -10, -10}, Color: [3]float32{0.5, 0.5, 0.5}, Decay: 2})
	r.AddPoint(PointLight{Position: [3]float32{1, 2, 3}, Color: [3]float32{1, 0, 0}, Range: 7, Decay: 1})

	positions := r.PointPositions()
	if len(positions) != MaxPointLights*3 {
		t.Fatalf("len(positions) = %d", len(positions))
	}
	if positions[3] != 1 || positions[4] != 2 || positions[5] != 3 {
		t.Errorf("second position = %v", positions[3:6])
	}
	if positions[6] != 0 {
		t.Error("unused slots should be zero")
	}

	colors := r.PointColors()
	if colors[0] != 0.5 || colors[3] != 1 {
		t.Errorf("colors = %v", colors[:6])
	}
	if ranges := r.PointRanges(); ranges[1] != 7 || len(ranges) != MaxPointLights {
		t.Errorf("ranges = %v", ranges)
	}
	if decays := r.PointDecays(); decays[0] != 2 || decays[1] != 1 {
		t.Errorf("decays = %v", decays)
	}
	if dirs := r.DirectionalDirections(); len(dirs) != MaxDirectionalLights*3 {
		t.Errorf("len(directions) = %d", len(dirs))
	}
	if cols := r.DirectionalColors(); len(cols) != MaxDirectionalLights*3 {
		t.Errorf("len(directional colors) = %d", len(cols))
	}
}

func TestAddAmbientAccumulates(t *testing.T) {
	r := NewRig()
	r.AddAmbient([3]float32{0.25, 0.25, 0.25})
	r.AddAmbient([3]float32{0.25, 0, 0})
	if r.Ambient != [3]float32{0.5, 0.25, 0.25} {
		t.Errorf("Ambient = %v", r.Ambient)
	}
}
