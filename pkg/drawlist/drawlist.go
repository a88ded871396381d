// Package drawlist assembles the triangles emitted by gizmo handles during
// one frame into a single vertex/index buffer and exposes it as raw bytes
// for upload to a renderer.
//
// A Buffer is an arena: Reset keeps the backing storage, so a steady-state
// frame appends into memory that was already grown by earlier frames.
package drawlist

import (
	"math"
	"unsafe"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one interleaved vertex record as uploaded to the renderer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = int(unsafe.Sizeof(Vertex{}))

// Index strides.
const (
	IndexStride16 = 2
	IndexStride32 = 4
)

// Buffer accumulates the geometry of one frame.
type Buffer struct {
	// PreferNarrowIndices makes View pack indices as uint16 whenever the
	// vertex count allows it.
	PreferNarrowIndices bool

	vertices []Vertex
	indices  []uint32
	narrow   []uint16
}

// Reset empties the buffer in place. Views taken before Reset are invalid.
func (b *Buffer) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.narrow = b.narrow[:0]
}

// VertexCount returns the number of vertices appended since the last Reset.
func (b *Buffer) VertexCount() int {
	return len(b.vertices)
}

// IndexCount returns the number of indices appended since the last Reset.
func (b *Buffer) IndexCount() int {
	return len(b.indices)
}

// Vertices returns the appended vertices. The slice aliases the buffer.
func (b *Buffer) Vertices() []Vertex {
	return b.vertices
}

// Indices returns the appended indices. The slice aliases the buffer.
func (b *Buffer) Indices() []uint32 {
	return b.indices
}

// AppendMesh appends m placed by xf after a uniform scale, with one color for
// every vertex. Indices are offset by the current vertex count.
func (b *Buffer) AppendMesh(m *kernel.Mesh, xf falg.Transform, scale float32, color mgl32.Vec4) {
	base := uint32(len(b.vertices))
	for i := 0; i < m.VertexCount(); i++ {
		p := xf.ApplyPosition(m.Position(uint32(i)).Mul(scale))
		n := xf.ApplyDirection(m.Normal(uint32(i)))
		b.vertices = append(b.vertices, Vertex{
			Position: [3]float32(p),
			Normal:   [3]float32(n),
			Color:    [4]float32(color),
		})
	}
	for _, idx := range m.Indices {
		b.indices = append(b.indices, base+idx)
	}
}

// View exposes the assembled frame without copying the vertex data.
// It is valid until the next Reset of the buffer it came from.
type View struct {
	Vertices     []byte
	VertexStride int
	VertexCount  int

	Indices     []byte
	IndexStride int
	IndexCount  int
}

// View returns the current contents as byte spans. With PreferNarrowIndices
// and fewer than 65536 vertices the indices are packed into a reused uint16
// slice; otherwise the uint32 storage is exposed directly.
func (b *Buffer) View() View {
	v := View{
		Vertices:     vertexBytes(b.vertices),
		VertexStride: VertexStride,
		VertexCount:  len(b.vertices),
		IndexCount:   len(b.indices),
	}
	if b.PreferNarrowIndices && len(b.vertices) <= math.MaxUint16+1 {
		b.narrow = b.narrow[:0]
		for _, idx := range b.indices {
			b.narrow = append(b.narrow, uint16(idx))
		}
		v.Indices = sliceBytes(b.narrow, IndexStride16)
		v.IndexStride = IndexStride16
		return v
	}
	v.Indices = sliceBytes(b.indices, IndexStride32)
	v.IndexStride = IndexStride32
	return v
}

// TriangleCount returns the number of triangles in the view.
func (v View) TriangleCount() int {
	return v.IndexCount / 3
}

// VertexRecords reinterprets the vertex bytes as records.
func (v View) VertexRecords() []Vertex {
	if v.VertexCount == 0 {
		return nil
	}
	return unsafe.Slice((*Vertex)(unsafe.Pointer(&v.Vertices[0])), v.VertexCount)
}

// Index returns index i widened to uint32, whatever the stride.
func (v View) Index(i int) uint32 {
	if v.IndexStride == IndexStride16 {
		return uint32(*(*uint16)(unsafe.Pointer(&v.Indices[i*IndexStride16])))
	}
	return *(*uint32)(unsafe.Pointer(&v.Indices[i*IndexStride32]))
}

func vertexBytes(vs []Vertex) []byte {
	if len(vs) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vs[0])), len(vs)*VertexStride)
}

func sliceBytes[T uint16 | uint32](s []T, stride int) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*stride)
}
