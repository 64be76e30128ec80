// Package asset resolves asset references and turns glTF/GLB documents into
// flat, render-ready scene graphs.
//
// Format decoding is done by github.com/qmuntal/gltf. This package only
// fetches bytes, checks what kind of content arrived, and bakes node
// transforms into mesh vertices so the renderer can draw each mesh with a
// single model matrix.
package asset

import (
	"strings"

	"github.com/Faultbox/orbitview/pkg/math"
)

// Ref identifies a model resource. It is immutable once built.
type Ref struct {
	url string
}

// NewRef wraps a URL or path. No validation happens here; resolution errors
// surface from Load.
func NewRef(url string) Ref {
	return Ref{url: url}
}

// URL returns the reference as given.
func (r Ref) URL() string {
	return r.url
}

// String implements fmt.Stringer.
func (r Ref) String() string {
	return r.url
}

// Scheme returns the lower-cased URL scheme, or "file" for plain paths.
func (r Ref) Scheme() string {
	i := strings.Index(r.url, "://")
	if i <= 0 {
		return "file"
	}
	return strings.ToLower(r.url[:i])
}

// Mesh is a triangle mesh with node transforms already applied.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32

	// BaseColor is linear RGBA.
	BaseColor [4]float32
	Metallic  float32
	Roughness float32
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max math.Vec3
	valid    bool
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return !b.valid
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p math.Vec3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union grows the box to include other.
func (b *Bounds) Union(other Bounds) {
	if other.Empty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the half-diagonal length.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Length() / 2
}

// Transform returns the bounds of the box's eight corners under m.
func (b Bounds) Transform(m math.Mat4) Bounds {
	if b.Empty() {
		return b
	}
	var out Bounds
	for i := 0; i < 8; i++ {
		corner := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			corner[0] = b.Max.X
		}
		if i&2 != 0 {
			corner[1] = b.Max.Y
		}
		if i&4 != 0 {
			corner[2] = b.Max.Z
		}
		out.Extend(math.V3(m.TransformPoint(corner)))
	}
	return out
}

// BoundsOf returns the bounds of a position list.
func BoundsOf(positions [][3]float32) Bounds {
	var b Bounds
	for _, p := range positions {
		b.Extend(math.V3(p))
	}
	return b
}

// Scene is the flattened content of a loaded asset.
type Scene struct {
	Name   string
	Source Ref
	Meshes []*Mesh
	Bounds Bounds
}

// TriangleCount returns the total triangle count over all meshes.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.TriangleCount()
	}
	return n
}

// ComputeNormals derives smooth vertex normals by accumulating area-weighted
// face normals. Vertices that belong to no triangle get +Y.
func ComputeNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		p0, p1, p2 := math.V3(positions[a]), math.V3(positions[b]), math.V3(positions[c])
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}

	normals := make([][3]float32, len(positions))
	for i, n := range acc {
		if n.Length() == 0 {
			normals[i] = [3]float32{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize().Array()
	}
	return normals
}

// SequentialIndices returns 0..n-1, used for non-indexed primitives.
func SequentialIndices(n int) []uint32 {
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}
