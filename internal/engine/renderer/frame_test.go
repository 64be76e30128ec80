package renderer

import (
	"testing"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/engine/lighting"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/internal/slot"
)

func defaultDescription(t *testing.T) *scene.Description {
	t.Helper()
	desc, err := scene.Build(scene.DefaultRenderConfig(), slot.LoadingState(), slot.Transform{Scale: 0.25})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return desc
}

func TestBuildRig(t *testing.T) {
	desc := defaultDescription(t)
	rig := lighting.NewRig()
	buildRig(rig, desc)

	if rig.Ambient != [3]float32{0.4, 0.4, 0.4} {
		t.Errorf("Ambient = %v, want 0.4 white", rig.Ambient)
	}
	if len(rig.Directional) != 1 {
		t.Fatalf("len(Directional) = %d, want 1", len(rig.Directional))
	}
	if rig.ShadowCaster() != 0 {
		t.Errorf("ShadowCaster() = %d, want 0", rig.ShadowCaster())
	}
	d := rig.Directional[0].Direction
	if d[0] <= 0 || d[1] <= 0 || d[2] <= 0 {
		t.Errorf("direction %v should point towards +x+y+z", d)
	}
	if len(rig.Points) != 1 || rig.Points[0].Color != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("points = %+v", rig.Points)
	}
	if rig.Hemisphere.Sky == ([3]float32{}) {
		t.Error("environment hemisphere not applied")
	}

	// Rebuilding starts from scratch.
	buildRig(rig, desc)
	if len(rig.Directional) != 1 || len(rig.Points) != 1 {
		t.Error("buildRig accumulated lights across frames")
	}
}

func TestBuildRigWithoutShadows(t *testing.T) {
	desc := defaultDescription(t)
	desc.Shadows.Enabled = false
	rig := lighting.NewRig()
	buildRig(rig, desc)
	if rig.ShadowCaster() != -1 {
		t.Errorf("ShadowCaster() = %d, want -1 with shadows disabled", rig.ShadowCaster())
	}
}

func TestDrawOrder(t *testing.T) {
	items := []scene.DrawItem{
		{Name: "glass", Material: scene.Material{Opacity: 0.5}},
		{Name: "ground", Material: scene.Material{Opacity: 1}},
		{Name: "smoke", Material: scene.Material{Opacity: 0.1}},
		{Name: "box", Material: scene.Material{Opacity: 1}},
	}
	got := drawOrder(items)
	want := []string{"ground", "box", "glass", "smoke"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Name, name)
		}
	}
}

func TestDrawOrderKeepsFlattenOrderForModel(t *testing.T) {
	m := &asset.Mesh{Name: "link", Positions: [][3]float32{{0, 0, 0}}, BaseColor: [4]float32{1, 1, 1, 1}}
	s := &asset.Scene{Name: "arm", Meshes: []*asset.Mesh{m}, Bounds: asset.BoundsOf(m.Positions)}
	desc, err := scene.Build(scene.DefaultRenderConfig(), slot.ReadyState(s), slot.Transform{Scale: 0.25})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := drawOrder(scene.Flatten(desc))
	if len(got) != 2 || got[0].Name != "ground" || got[1].Name != "link" {
		t.Errorf("order = %+v", got)
	}
}
