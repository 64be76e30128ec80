// Package mesh uploads asset meshes to the GPU.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbitview/internal/asset"
)

// Vertex layout: position (location 0) then normal (location 1).
const (
	floatsPerVertex = 6
	stride          = floatsPerVertex * 4
)

// GPUMesh is an uploaded indexed triangle mesh.
type GPUMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Interleave packs positions and normals into the vertex buffer layout.
// A missing or short normal list is filled with +Y.
func Interleave(m *asset.Mesh) []float32 {
	out := make([]float32, 0, len(m.Positions)*floatsPerVertex)
	for i, p := range m.Positions {
		n := [3]float32{0, 1, 0}
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return out
}

// Upload creates the vertex array for m.
func Upload(m *asset.Mesh) (*GPUMesh, error) {
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return nil, errors.New("mesh has no geometry")
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return nil, fmt.Errorf("mesh %q: index %d out of range", m.Name, idx)
		}
	}

	vertices := Interleave(m)
	g := &GPUMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return g, nil
}

// Draw issues the indexed draw call.
func (g *GPUMesh) Draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU buffers.
func (g *GPUMesh) Destroy() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
}

// Cache uploads each asset mesh once and keeps it until Release.
type Cache struct {
	meshes map[*asset.Mesh]*GPUMesh
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{meshes: make(map[*asset.Mesh]*GPUMesh)}
}

// Get returns the uploaded mesh for m, uploading it on first use.
func (c *Cache) Get(m *asset.Mesh) (*GPUMesh, error) {
	if g, ok := c.meshes[m]; ok {
		return g, nil
	}
	g, err := Upload(m)
	if err != nil {
		return nil, err
	}
	c.meshes[m] = g
	return g, nil
}

// Len returns the number of uploaded meshes.
func (c *Cache) Len() int {
	return len(c.meshes)
}

// Release destroys every uploaded mesh.
func (c *Cache) Release() {
	for m, g := range c.meshes {
		g.Destroy()
		delete(c.meshes, m)
	}
}
