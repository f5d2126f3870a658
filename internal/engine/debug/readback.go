package debug

import "github.com/go-gl/gl/v4.1-core/gl"

// ReadDefaultFramebuffer returns the back buffer as bottom-up RGBA rows.
// Call after the frame is drawn and before the swap.
func ReadDefaultFramebuffer(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
