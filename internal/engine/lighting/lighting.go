// Package lighting packs scene lights into shader uniforms.
package lighting

import "github.com/Faultbox/orbitview/pkg/math"

// Shader array sizes; must match the fragment shader.
const (
	MaxDirectionalLights = 4
	MaxPointLights       = 8
)

// DirectionalLight shines uniformly along Direction.
type DirectionalLight struct {
	Direction  [3]float32 // Normalized direction TO the light
	Color      [3]float32 // Linear RGB, premultiplied by intensity
	CastShadow bool
}

// PointLight is an omnidirectional light with inverse-square falloff.
type PointLight struct {
	Position [3]float32 // World position
	Color    [3]float32 // Linear RGB, premultiplied by intensity
	Range    float32    // Cutoff distance; 0 means unlimited
	Decay    float32    // Falloff exponent
}

// Hemisphere is sky/ground ambient lighting.
type Hemisphere struct {
	Sky    [3]float32
	Ground [3]float32
}

// Rig holds every light for one frame.
type Rig struct {
	Ambient     [3]float32
	Hemisphere  Hemisphere
	Directional []DirectionalLight
	Points      []PointLight
}

// NewRig creates an empty rig.
func NewRig() *Rig {
	return &Rig{
		Directional: make([]DirectionalLight, 0, MaxDirectionalLights),
		Points:      make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights.
func (r *Rig) Clear() {
	r.Ambient = [3]float32{}
	r.Hemisphere = Hemisphere{}
	r.Directional = r.Directional[:0]
	r.Points = r.Points[:0]
}

// AddAmbient accumulates ambient light.
func (r *Rig) AddAmbient(color [3]float32) {
	for i := range color {
		r.Ambient[i] += color[i]
	}
}

// AddDirectional adds a directional light from position towards target.
// Returns false if the rig is full.
func (r *Rig) AddDirectional(position, target math.Vec3, color [3]float32, castShadow bool) bool {
	if len(r.Directional) >= MaxDirectionalLights {
		return false
	}
	dir := position.Sub(target).Normalize()
	r.Directional = append(r.Directional, DirectionalLight{
		Direction:  dir.Array(),
		Color:      color,
		CastShadow: castShadow,
	})
	return true
}

// AddPoint adds a point light. Returns false if the rig is full.
func (r *Rig) AddPoint(light PointLight) bool {
	if len(r.Points) >= MaxPointLights {
		return false
	}
	r.Points = append(r.Points, light)
	return true
}

// ShadowCaster returns the index of the first shadow-casting directional
// light, or -1.
func (r *Rig) ShadowCaster() int {
	for i, l := range r.Directional {
		if l.CastShadow {
			return i
		}
	}
	return -1
}

// DirectionalDirections returns directions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (r *Rig) DirectionalDirections() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i, l := range r.Directional {
		copy(result[i*3:], l.Direction[:])
	}
	return result
}

// DirectionalColors returns colors as a flat float32 slice for GPU upload.
func (r *Rig) DirectionalColors() []float32 {
	result := make([]float32, MaxDirectionalLights*3)
	for i, l := range r.Directional {
		copy(result[i*3:], l.Color[:])
	}
	return result
}

// PointPositions returns positions as a flat float32 slice for GPU upload.
func (r *Rig) PointPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, l := range r.Points {
		copy(result[i*3:], l.Position[:])
	}
	return result
}

// PointColors returns colors as a flat float32 slice for GPU upload.
func (r *Rig) PointColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, l := range r.Points {
		copy(result[i*3:], l.Color[:])
	}
	return result
}

// PointRanges returns ranges as a flat float32 slice for GPU upload.
func (r *Rig) PointRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, l := range r.Points {
		result[i] = l.Range
	}
	return result
}

// PointDecays returns decay exponents as a flat float32 slice for GPU upload.
func (r *Rig) PointDecays() []float32 {
	result := make([]float32, MaxPointLights)
	for i, l := range r.Points {
		result[i] = l.Decay
	}
	return result
}
