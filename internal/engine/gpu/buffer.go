// Package gpu owns OpenGL resources created from CPU-side mesh and texture data.
// All functions must be called on the thread that owns the GL context.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegl/internal/engine/mesh"
	"github.com/Faultbox/scenegl/internal/logger"
)

// ErrEmptyMesh is returned when uploading mesh data with no indices.
var ErrEmptyMesh = errors.New("mesh has no indices")

// Fixed vertex attribute locations shared with the shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTexCoord = 2
)

// DrawMode is a primitive type for indexed draws.
type DrawMode uint32

// Draw modes.
const (
	Triangles DrawMode = gl.TRIANGLES
	LineLoop  DrawMode = gl.LINE_LOOP
	Points    DrawMode = gl.POINTS
)

// ModeFor returns the primitive used to draw a mesh style.
func ModeFor(style mesh.DrawStyle) DrawMode {
	switch style {
	case mesh.Line:
		return LineLoop
	case mesh.Point:
		return Points
	default:
		return Triangles
	}
}

// Buffer is a vertex array object with one buffer per attribute and an index buffer.
type Buffer struct {
	vao        uint32
	vbos       [3]uint32
	ebo        uint32
	indexCount int32
}

// Upload copies mesh data into new GL buffers. The data is not modified and
// later changes to it are not reflected until it is uploaded again.
func Upload(data *mesh.MeshData) (*Buffer, error) {
	if data.Len() == 0 || len(data.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}

	b := &Buffer{indexCount: int32(len(data.Indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(3, &b.vbos[0])
	uploadAttrib(b.vbos[AttribPosition], AttribPosition, 3, unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*3*4)
	uploadAttrib(b.vbos[AttribNormal], AttribNormal, 3, unsafe.Pointer(&data.Normals[0]), len(data.Normals)*3*4)
	uploadAttrib(b.vbos[AttribTexCoord], AttribTexCoord, 2, unsafe.Pointer(&data.TexCoords[0]), len(data.TexCoords)*2*4)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, unsafe.Pointer(&data.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	logger.Named("gpu").Debug("mesh uploaded",
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("indices", len(data.Indices)),
		zap.Uint32("vao", b.vao),
	)
	return b, nil
}

func uploadAttrib(vbo uint32, location uint32, size int32, ptr unsafe.Pointer, byteLen int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, byteLen, ptr, gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(location)
}

// IndexCount returns the number of indices drawn.
func (b *Buffer) IndexCount() int32 {
	return b.indexCount
}

// Draw issues an indexed draw of the whole buffer.
func (b *Buffer) Draw(mode DrawMode) {
	if b.vao == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(uint32(mode), b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the GL objects. Safe to call more than once.
func (b *Buffer) Delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbos[0] != 0 {
		gl.DeleteBuffers(3, &b.vbos[0])
		b.vbos = [3]uint32{}
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}
