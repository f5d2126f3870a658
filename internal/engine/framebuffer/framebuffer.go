// Package framebuffer provides the off-screen colour+depth target the water
// reflection is rendered into.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is an RGBA8 colour texture with a 24-bit depth renderbuffer.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	width        int32
	height       int32
}

// New allocates a target of the given size; sizes below 1 are raised to 1.
func New(width, height int32) (*Framebuffer, error) {
	fb := &Framebuffer{width: max(width, 1), height: max(height, 1)}

	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	// Reflection lookups are perturbed past the edges.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)

	gl.GenRenderbuffers(1, &fb.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)

	fb.allocate()

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fb, nil
}

func (fb *Framebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
}

// Bind makes this framebuffer current and sets a full-size viewport.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// ColorTexture returns the colour attachment.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTexture
}

// Size returns the current dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Resize reallocates storage when the size changed. It reports whether it did.
func (fb *Framebuffer) Resize(width, height int32) bool {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return false
	}
	fb.width, fb.height = width, height
	fb.allocate()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return true
}

// Destroy releases all GL objects.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
