// Package overlay draws screen-space text over the 3D view.
package overlay

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orbitview/internal/engine/shader"
	"github.com/Faultbox/orbitview/internal/engine/shaders"
)

// Margin is the distance from the top-left corner of the viewport, in
// framebuffer pixels before scaling.
const Margin = 16

// Overlay is a textured quad showing rasterized text.
type Overlay struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	texture uint32

	content Content
	size    image.Point
	// Scale is the framebuffer pixels per overlay pixel.
	Scale float32
}

// New creates the overlay and uploads the initial content.
func New(c Content) (*Overlay, error) {
	program, err := shader.New("overlay", shaders.OverlayVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		return nil, err
	}
	o := &Overlay{program: program, Scale: 1}

	corners := []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}
	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, gl.Ptr(corners), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.texture)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	o.upload(c)
	return o, nil
}

// SetContent re-rasterizes the text when it differs from what is shown.
func (o *Overlay) SetContent(c Content) {
	if c.Equal(o.content) {
		return
	}
	o.upload(c)
}

func (o *Overlay) upload(c Content) {
	img := Rasterize(c)
	o.content = c
	o.size = img.Bounds().Size()

	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(o.size.X), int32(o.size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Draw renders the overlay in a viewport of the given framebuffer size.
func (o *Overlay) Draw(viewportW, viewportH int) {
	if o.size.X == 0 || o.size.Y == 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	// image.RGBA is alpha-premultiplied.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	o.program.Use()
	o.program.SetInt("uTexture", 0)
	gl.Uniform4f(o.program.Location("uRect"), Margin*o.Scale, Margin*o.Scale,
		float32(o.size.X)*o.Scale, float32(o.size.Y)*o.Scale)
	gl.Uniform2f(o.program.Location("uViewport"), float32(viewportW), float32(viewportH))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases the GPU resources.
func (o *Overlay) Destroy() {
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
		o.texture = 0
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
		o.vbo = 0
	}
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
		o.vao = 0
	}
	o.program.Delete()
}
