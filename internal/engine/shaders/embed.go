// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader is the vertex shader for lit meshes.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader is the fragment shader for lit meshes. It includes the
// "tonemap" chunk.
//
//go:embed mesh.frag
var MeshFragmentShader string

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string

// OverlayVertexShader is the vertex shader for screen-space overlays.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader is the fragment shader for screen-space overlays.
//
//go:embed overlay.frag
var OverlayFragmentShader string

// BoundsVertexShader is the vertex shader for bounding box lines.
//
//go:embed bounds.vert
var BoundsVertexShader string

// BoundsFragmentShader is the fragment shader for bounding box lines.
//
//go:embed bounds.frag
var BoundsFragmentShader string
