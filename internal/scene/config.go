package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/internal/engine/tonemap"
	"github.com/Faultbox/orbitview/pkg/math"
)

// RenderConfig is the compiled-in description of the viewport. It is a
// value: DefaultRenderConfig builds a fresh copy on every call and nothing
// in the program modifies one after construction.
type RenderConfig struct {
	Camera      CameraConfig
	Model       ModelConfig
	Controls    Controls
	Shadows     ShadowConfig
	ToneMapping ToneMapping
	Antialias   bool
	Samples     int

	Lights      []Light
	Environment string
	Ground      GroundConfig
	Background  Color
	Overlay     Overlay
}

// CameraConfig is the initial perspective camera.
type CameraConfig struct {
	Position math.Vec3
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32
}

// ModelConfig places the loaded model.
type ModelConfig struct {
	Scale    float32
	Position math.Vec3
}

// Controls configures the orbit controls.
type Controls struct {
	EnablePan     bool
	EnableZoom    bool
	EnableRotate  bool
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32
	Target        math.Vec3
}

// ShadowConfig sizes the directional shadow map.
type ShadowConfig struct {
	Enabled bool
	Width   int
	Height  int
}

// ToneMapping selects the output transform.
type ToneMapping struct {
	Mode     tonemap.Mode
	Exposure float32
}

// GroundConfig describes the shadow-receiving ground plane.
type GroundConfig struct {
	Width    float32
	Height   float32
	Position math.Vec3
	Rotation math.Vec3 // Euler XYZ, radians
	Color    Color
}

// Overlay is the fixed instruction text.
type Overlay struct {
	Title string
	Lines []string
}

// DefaultRenderConfig returns the viewer's fixed configuration.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Camera: CameraConfig{
			Position: math.Vec3{X: 5, Y: 5, Z: 5},
			FOV:      60,
			Near:     0.1,
			Far:      1000,
		},
		Model: ModelConfig{Scale: 0.25},
		Controls: Controls{
			EnablePan:     true,
			EnableZoom:    true,
			EnableRotate:  true,
			MinDistance:   2,
			MaxDistance:   20,
			MinPolarAngle: 0,
			MaxPolarAngle: math32.Pi / 2,
		},
		Shadows:     ShadowConfig{Enabled: true, Width: 2048, Height: 2048},
		ToneMapping: ToneMapping{Mode: tonemap.ACESFilmic, Exposure: 1},
		Antialias:   true,
		Samples:     4,
		Lights: []Light{
			{Kind: Ambient, Color: White, Intensity: 0.4},
			{Kind: Directional, Position: math.Vec3{X: 10, Y: 10, Z: 5}, Color: White, Intensity: 1, CastShadow: true},
			{Kind: Point, Position: math.Vec3{X: -10, Y: -10, Z: -10}, Color: White, Intensity: 0.5},
		},
		Environment: "city",
		Ground: GroundConfig{
			Width:    20,
			Height:   20,
			Position: math.Vec3{Y: -2},
			Rotation: math.Vec3{X: -math32.Pi / 2},
			Color:    MustHex("#f0f0f0"),
		},
		Background: MustHex("#111827"),
		Overlay: Overlay{
			Title: "GLTF Model Viewer",
			Lines: []string{
				"- Left click + drag: Rotate camera",
				"- Right click + drag: Pan camera",
				"- Scroll: Zoom in/out",
			},
		},
	}
}

// placeholderColor is the placeholder cube's colour.
var placeholderColor = MustHex("#ffa500")
