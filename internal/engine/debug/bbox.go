// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/engine/shader"
	"github.com/Faultbox/orbitview/internal/engine/shaders"
	"github.com/Faultbox/orbitview/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(min, max math.Vec3) []float32 {
	return []float32{
		// Bottom face
		min.X, min.Y, min.Z, max.X, min.Y, min.Z,
		max.X, min.Y, min.Z, max.X, min.Y, max.Z,
		max.X, min.Y, max.Z, min.X, min.Y, max.Z,
		min.X, min.Y, max.Z, min.X, min.Y, min.Z,
		// Top face
		min.X, max.Y, min.Z, max.X, max.Y, min.Z,
		max.X, max.Y, min.Z, max.X, max.Y, max.Z,
		max.X, max.Y, max.Z, min.X, max.Y, max.Z,
		min.X, max.Y, max.Z, min.X, max.Y, min.Z,
		// Vertical edges
		min.X, min.Y, min.Z, min.X, max.Y, min.Z,
		max.X, min.Y, min.Z, max.X, max.Y, min.Z,
		max.X, min.Y, max.Z, max.X, max.Y, max.Z,
		min.X, min.Y, max.Z, min.X, max.Y, max.Z,
	}
}

// BoundsWireframe returns the wireframe of b expanded by padding on every
// side, or nil for empty bounds.
func BoundsWireframe(b asset.Bounds, padding float32) []float32 {
	if b.Empty() {
		return nil
	}
	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	return GenerateBBoxWireframeVertices(b.Min.Sub(pad), b.Max.Add(pad))
}

// BoundsRenderer draws world-space bounding boxes as lines.
type BoundsRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32

	// Color is the sRGB line colour.
	Color [3]float32
}

// NewBoundsRenderer creates the line program and a dynamic vertex buffer.
func NewBoundsRenderer() (*BoundsRenderer, error) {
	program, err := shader.New("bounds", shaders.BoundsVertexShader, shaders.BoundsFragmentShader)
	if err != nil {
		return nil, err
	}
	r := &BoundsRenderer{program: program, Color: [3]float32{0.2, 1, 0.4}}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, BBoxWireframeVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return r, nil
}

// Draw renders b with the given view-projection matrix.
func (r *BoundsRenderer) Draw(b asset.Bounds, viewProj math.Mat4) {
	vertices := BoundsWireframe(b, 0.02)
	if vertices == nil {
		return
	}
	r.program.Use()
	r.program.SetMat4("uViewProj", (*[16]float32)(&viewProj))
	r.program.SetVec3("uColor", r.Color)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.LINES, 0, BBoxWireframeVertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU resources.
func (r *BoundsRenderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.program.Delete()
}
