package screenshot

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// ReadFramebuffer reads the back buffer of the default framebuffer as
// bottom-up RGBA rows. Call it before swapping buffers.
func ReadFramebuffer(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
