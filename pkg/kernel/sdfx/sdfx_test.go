package sdfx

import (
	"testing"

	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// testCells keeps marching cubes fast while still resolving the test shapes.
const testCells = 64

// extent returns the axis-aligned bounds of a mesh.
func extent(m *kernel.Mesh) (min, max mgl32.Vec3) {
	min = m.Position(0)
	max = min
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(uint32(i))
		for c := 0; c < 3; c++ {
			if p[c] < min[c] {
				min[c] = p[c]
			}
			if p[c] > max[c] {
				max[c] = p[c]
			}
		}
	}
	return min, max
}

func checkMesh(t *testing.T, m *kernel.Mesh) {
	t.Helper()
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(m.Positions) != len(m.Normals) {
		t.Fatalf("positions length %d != normals length %d", len(m.Positions), len(m.Normals))
	}
	if len(m.Indices) != m.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(m.Indices), m.TriangleCount()*3)
	}
}

func TestBox(t *testing.T) {
	k := New(testCells)
	b := kernel.Box{Min: mgl32.Vec3{1, 0, 0}, Max: mgl32.Vec3{2, 0.5, 0.25}}
	m, err := k.Mesh(b)
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	checkMesh(t, m)

	min, max := extent(m)
	const tol = 0.05
	if !min.ApproxEqualThreshold(b.Min, tol) || !max.ApproxEqualThreshold(b.Max, tol) {
		t.Errorf("box extent = %v..%v, want %v..%v", min, max, b.Min, b.Max)
	}
}

func TestArrowPointsAlongX(t *testing.T) {
	k := New(testCells)
	m, err := k.Mesh(kernel.Arrow{Length: 1, ShaftRadius: 0.08, HeadLength: 0.3, HeadRadius: 0.2, Segments: 16})
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	checkMesh(t, m)

	min, max := extent(m)
	if min[0] < -0.05 || max[0] < 0.85 || max[0] > 1.05 {
		t.Errorf("arrow x extent = %v..%v, want about 0..1", min[0], max[0])
	}
	if max[1] > 0.25 || max[2] > 0.25 {
		t.Errorf("arrow radial extent = %v, %v; want <= head radius", max[1], max[2])
	}
}

func TestRingAroundX(t *testing.T) {
	k := New(testCells)
	m, err := k.Mesh(kernel.Ring{Radius: 1, TubeRadius: 0.15})
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	checkMesh(t, m)

	min, max := extent(m)
	if max[0] > 0.2 || min[0] < -0.2 {
		t.Errorf("ring x extent = %v..%v, want within the tube radius", min[0], max[0])
	}
	if max[1] < 1.05 || max[2] < 1.05 {
		t.Errorf("ring yz extent = %v, %v; want about 1.15", max[1], max[2])
	}
}

func TestRingArcUnsupported(t *testing.T) {
	k := New(testCells)
	if _, err := k.Mesh(kernel.Ring{Radius: 1, TubeRadius: 0.1, ArcDegrees: 90}); err == nil {
		t.Error("expected error for partial ring")
	}
}

func TestSphere(t *testing.T) {
	k := New(testCells)
	m, err := k.Mesh(kernel.Sphere{Radius: 0.5})
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	checkMesh(t, m)
	for i := 0; i < m.VertexCount(); i++ {
		if r := m.Position(uint32(i)).Len(); r < 0.45 || r > 0.55 {
			t.Fatalf("vertex %d at radius %v, want about 0.5", i, r)
		}
	}
}

func TestScaleHandle(t *testing.T) {
	k := New(testCells)
	m, err := k.Mesh(kernel.ScaleHandle{Length: 1, ShaftRadius: 0.06, TipSize: 0.25, Segments: 12})
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}
	checkMesh(t, m)
	_, max := extent(m)
	if max[0] < 0.95 || max[0] > 1.05 {
		t.Errorf("scale handle reaches x=%v, want about 1", max[0])
	}
}

func TestInvalidShapeReturnsError(t *testing.T) {
	k := New(testCells)
	if _, err := k.Mesh(kernel.Sphere{Radius: -1}); err == nil {
		t.Error("expected error for negative radius")
	}
}

func TestDefaultCells(t *testing.T) {
	if k := New(0); k.Cells != DefaultMeshCells {
		t.Errorf("New(0).Cells = %d, want %d", k.Cells, DefaultMeshCells)
	}
}
