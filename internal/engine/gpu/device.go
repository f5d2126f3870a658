// Package gpu declares the resource operations the renderer needs from the
// graphics API and implements them on OpenGL 4.1 core.
package gpu

// Attribute binds one float vertex stream to a shader attribute location.
type Attribute struct {
	Location   int32
	Components int32 // floats per vertex
	Buffer     uint32
}

// Device creates and destroys GPU resources. Every method must be called on
// the goroutine that owns the GL context.
type Device interface {
	// NewBuffer uploads a static float array buffer.
	NewBuffer(data []float32) uint32

	// NewVertexArray records the given attribute bindings. Attributes with a
	// negative location are skipped.
	NewVertexArray(attrs []Attribute) uint32

	// NewTexture creates a 2D RGBA8 texture from tightly packed pixels.
	NewTexture(width, height int, rgba []byte) uint32

	// ReplaceTexture swaps the storage of an existing texture in place and,
	// when mipmaps is set, regenerates the mip chain.
	ReplaceTexture(tex uint32, width, height int, rgba []byte, mipmaps bool)

	DeleteBuffer(buf uint32)
	DeleteVertexArray(vao uint32)
	DeleteTexture(tex uint32)
}
