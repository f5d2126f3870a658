// Package shadow provides the depth target and light matrices of the
// shadow pass.
package shadow

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrIncomplete is returned when the driver rejects the depth framebuffer.
var ErrIncomplete = errors.New("shadow framebuffer incomplete")

// DefaultResolution is the shadow map edge length in texels.
const DefaultResolution = 2048

// Map is a depth-only framebuffer sampled with hardware comparison.
type Map struct {
	FBO          uint32
	DepthTexture uint32
	Resolution   int32
}

// NewMap allocates a square depth target. Resolution should be a power of two.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	sm := &Map{Resolution: resolution}

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)

	gl.GenTextures(1, &sm.DepthTexture)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, resolution, resolution, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Outside the light frustum counts as lit.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := []float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	// sampler2DShadow
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("%w: status 0x%x", ErrIncomplete, status)
	}
	return sm, nil
}

// Bind makes the depth target current with a full-size viewport and clears it.
func (sm *Map) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Resolution, sm.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// BindTexture binds the depth texture to the given texture unit.
func (sm *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// Destroy releases the GPU resources.
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
