package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL is the OpenGL implementation of Device. The zero value is ready once a
// context is current and gl.Init has run.
type GL struct{}

var _ Device = GL{}

func (GL) NewBuffer(data []float32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return buf
}

func (GL) NewVertexArray(attrs []Attribute) uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	for _, a := range attrs {
		if a.Location < 0 {
			continue
		}
		loc := uint32(a.Location)
		gl.BindBuffer(gl.ARRAY_BUFFER, a.Buffer)
		gl.VertexAttribPointerWithOffset(loc, a.Components, gl.FLOAT, false, a.Components*4, 0)
		gl.EnableVertexAttribArray(loc)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao
}

func (GL) NewTexture(width, height int, rgba []byte) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (GL) ReplaceTexture(tex uint32, width, height int, rgba []byte, mipmaps bool) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba[0]))
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (GL) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (GL) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (GL) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}
