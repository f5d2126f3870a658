// Package mesh uploads parsed meshes to the GPU and tracks the resulting
// buffers and vertex arrays.
package mesh

import (
	"errors"

	"github.com/Faultbox/lakeside/internal/engine/gpu"
	"github.com/Faultbox/lakeside/internal/engine/texture"
	"github.com/Faultbox/lakeside/pkg/formats"
)

// ErrNoPosition is returned when a layout has no position attribute.
var ErrNoPosition = errors.New("mesh: layout has no position attribute")

// Layout gives the attribute locations a program reads; -1 marks an
// attribute the program does not use.
type Layout struct {
	Position int32
	TexCoord int32
	Normal   int32
}

// PositionOnly is a layout for depth-only programs.
func PositionOnly(position int32) Layout {
	return Layout{Position: position, TexCoord: -1, Normal: -1}
}

// Record is the GPU side of one mesh. The depth vertex array reuses the
// position buffer of the primary one.
type Record struct {
	PositionBuffer uint32
	TexCoordBuffer uint32 // 0 when not uploaded
	NormalBuffer   uint32 // 0 when not uploaded

	VAO      uint32
	DepthVAO uint32 // 0 without a depth layout

	Count   int32 // vertices to draw as triangles
	Texture *texture.Handle
}

// Upload creates one buffer per attribute that layout reads and m carries,
// plus a depth-only vertex array when depth is non-nil.
func Upload(dev gpu.Device, m *formats.Mesh, layout Layout, depth *Layout) (*Record, error) {
	if layout.Position < 0 || (depth != nil && depth.Position < 0) {
		return nil, ErrNoPosition
	}

	rec := &Record{Count: int32(m.VertexCount())}

	rec.PositionBuffer = dev.NewBuffer(m.Positions)
	attrs := []gpu.Attribute{{Location: layout.Position, Components: 3, Buffer: rec.PositionBuffer}}

	if layout.TexCoord >= 0 && len(m.TexCoords) > 0 {
		rec.TexCoordBuffer = dev.NewBuffer(m.TexCoords)
		attrs = append(attrs, gpu.Attribute{Location: layout.TexCoord, Components: 2, Buffer: rec.TexCoordBuffer})
	}
	if layout.Normal >= 0 && len(m.Normals) > 0 {
		rec.NormalBuffer = dev.NewBuffer(m.Normals)
		attrs = append(attrs, gpu.Attribute{Location: layout.Normal, Components: 3, Buffer: rec.NormalBuffer})
	}
	rec.VAO = dev.NewVertexArray(attrs)

	if depth != nil {
		rec.DepthVAO = dev.NewVertexArray([]gpu.Attribute{
			{Location: depth.Position, Components: 3, Buffer: rec.PositionBuffer},
		})
	}
	return rec, nil
}

// Delete releases the record's buffers and vertex arrays. The texture is
// owned by the texture manager.
func (r *Record) Delete(dev gpu.Device) {
	if r.DepthVAO != 0 {
		dev.DeleteVertexArray(r.DepthVAO)
	}
	dev.DeleteVertexArray(r.VAO)
	for _, b := range []uint32{r.PositionBuffer, r.TexCoordBuffer, r.NormalBuffer} {
		if b != 0 {
			dev.DeleteBuffer(b)
		}
	}
	*r = Record{}
}
