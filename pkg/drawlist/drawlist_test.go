package drawlist

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

func triangle() *kernel.Mesh {
	m := &kernel.Mesh{}
	n := mgl32.Vec3{0, 0, 1}
	m.AddTriangle(m.AddVertex(mgl32.Vec3{0, 0, 0}, n), m.AddVertex(mgl32.Vec3{1, 0, 0}, n), m.AddVertex(mgl32.Vec3{0, 1, 0}, n))
	return m
}

func TestVertexStride(t *testing.T) {
	if VertexStride != 40 {
		t.Errorf("VertexStride = %d, want 40", VertexStride)
	}
}

func TestAppendMeshOffsetsIndices(t *testing.T) {
	var b Buffer
	red := mgl32.Vec4{1, 0, 0, 1}
	b.AppendMesh(triangle(), falg.Identity(), 1, red)
	b.AppendMesh(triangle(), falg.Identity(), 1, red)

	want := []uint32{0, 1, 2, 3, 4, 5}
	got := b.Indices()
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indices = %v, want %v", got, want)
		}
	}
}

func TestAppendMeshTransformsVertices(t *testing.T) {
	var b Buffer
	xf := falg.Transform{
		Translation: mgl32.Vec3{10, 0, 0},
		Rotation:    falg.QuatAxisAngle(mgl32.Vec3{0, 0, 1}, 90*falg.ToRadians),
	}
	b.AppendMesh(triangle(), xf, 2, mgl32.Vec4{0, 1, 0, 1})

	vs := b.Vertices()
	// (1,0,0) scaled by 2, rotated 90 degrees about Z, then moved +10 on X.
	if p := mgl32.Vec3(vs[1].Position); !falg.NearlyVec3(p, mgl32.Vec3{10, 2, 0}, 1e-5) {
		t.Errorf("vertex 1 = %v, want [10 2 0]", p)
	}
	if n := mgl32.Vec3(vs[1].Normal); !falg.NearlyVec3(n, mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("normal 1 = %v, want [0 0 1]", n)
	}
	if vs[2].Color != [4]float32{0, 1, 0, 1} {
		t.Errorf("color = %v", vs[2].Color)
	}
}

func TestResetReusesStorage(t *testing.T) {
	var b Buffer
	for i := 0; i < 100; i++ {
		b.AppendMesh(triangle(), falg.Identity(), 1, mgl32.Vec4{1, 1, 1, 1})
	}
	vcap, icap := cap(b.vertices), cap(b.indices)

	b.Reset()
	if b.VertexCount() != 0 || b.IndexCount() != 0 {
		t.Fatalf("after Reset: %d vertices, %d indices", b.VertexCount(), b.IndexCount())
	}
	for i := 0; i < 100; i++ {
		b.AppendMesh(triangle(), falg.Identity(), 1, mgl32.Vec4{1, 1, 1, 1})
	}
	if cap(b.vertices) != vcap || cap(b.indices) != icap {
		t.Errorf("storage reallocated: vertex cap %d -> %d, index cap %d -> %d",
			vcap, cap(b.vertices), icap, cap(b.indices))
	}
}

func TestViewBytes(t *testing.T) {
	var b Buffer
	b.AppendMesh(triangle(), falg.Identity(), 1, mgl32.Vec4{0.5, 0.5, 0.5, 1})
	v := b.View()

	if v.VertexStride != 40 || len(v.Vertices) != 3*40 || v.VertexCount != 3 {
		t.Errorf("vertex span = %d bytes, stride %d, count %d", len(v.Vertices), v.VertexStride, v.VertexCount)
	}
	if v.IndexStride != IndexStride32 || len(v.Indices) != 3*4 || v.TriangleCount() != 1 {
		t.Errorf("index span = %d bytes, stride %d", len(v.Indices), v.IndexStride)
	}

	// Vertex 1 position x sits at byte 40 (little-endian float32 on every supported target).
	x := math.Float32frombits(binary.LittleEndian.Uint32(v.Vertices[40:44]))
	if x != 1 {
		t.Errorf("vertex 1 x from bytes = %v, want 1", x)
	}
	if got := v.VertexRecords()[2].Position; got != [3]float32{0, 1, 0} {
		t.Errorf("VertexRecords()[2] = %v", got)
	}
	if v.Index(2) != 2 {
		t.Errorf("Index(2) = %d, want 2", v.Index(2))
	}
}

func TestViewNarrowIndices(t *testing.T) {
	b := Buffer{PreferNarrowIndices: true}
	b.AppendMesh(triangle(), falg.Identity(), 1, mgl32.Vec4{1, 1, 1, 1})
	b.AppendMesh(triangle(), falg.Identity(), 1, mgl32.Vec4{1, 1, 1, 1})
	v := b.View()

	if v.IndexStride != IndexStride16 || len(v.Indices) != 6*2 {
		t.Fatalf("index span = %d bytes, stride %d; want 12, 2", len(v.Indices), v.IndexStride)
	}
	for i := 0; i < 6; i++ {
		if v.Index(i) != uint32(i) {
			t.Errorf("Index(%d) = %d", i, v.Index(i))
		}
	}
}

func TestEmptyView(t *testing.T) {
	var b Buffer
	v := b.View()
	if v.Vertices != nil || v.Indices != nil || v.VertexRecords() != nil {
		t.Error("empty buffer should expose nil spans")
	}
}
