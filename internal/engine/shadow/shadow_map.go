// Package shadow provides real-time shadow mapping for 3D rendering.
package shadow

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is used when a dimension is not positive.
const DefaultResolution = 2048

// Map represents a shadow map framebuffer for directional light shadows.
// Uses a depth-only texture for shadow comparison sampling.
type Map struct {
	FBO          uint32   // Framebuffer object
	DepthTexture uint32   // Depth texture for shadow sampling
	Width        int32    // Shadow map width in texels
	Height       int32    // Shadow map height in texels
	prevViewport [4]int32 // Saved viewport for restore
}

// NewMap creates a shadow map of the given size.
func NewMap(width, height int32) (*Map, error) {
	if width <= 0 {
		width = DefaultResolution
	}
	if height <= 0 {
		height = DefaultResolution
	}

	sm := &Map{Width: width, Height: height}

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.DEPTH_COMPONENT24,
		width,
		height,
		0,
		gl.DEPTH_COMPONENT,
		gl.FLOAT,
		nil,
	)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Clamp to border with white (1.0) to avoid shadow outside frustum
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	borderColor := []float32{1.0, 1.0, 1.0, 1.0}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])

	// Comparison mode for sampler2DShadow
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)

	// No color buffer for shadow pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, errors.New("shadow framebuffer incomplete")
	}

	return sm, nil
}

// Bind binds the shadow map framebuffer for rendering the depth pass.
// Sets the viewport to match the shadow map size.
func (sm *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &sm.prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Width, sm.Height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Front-face culling reduces shadow acne
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// Unbind restores the default framebuffer, viewport and back-face culling.
func (sm *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(sm.prevViewport[0], sm.prevViewport[1], sm.prevViewport[2], sm.prevViewport[3])
	gl.CullFace(gl.BACK)
}

// BindTexture binds the depth texture to the specified texture unit.
func (sm *Map) BindTexture(textureUnit uint32) {
	gl.ActiveTexture(textureUnit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// Destroy releases all GPU resources associated with this shadow map.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
		sm.FBO = 0
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
		sm.DepthTexture = 0
	}
}

// IsValid returns true if the shadow map was created successfully.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.FBO != 0 && sm.DepthTexture != 0
}
