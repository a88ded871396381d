package procedural_test

import (
	"reflect"
	"testing"

	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/chazu/gizmesh/pkg/kernel/procedural"
	"github.com/go-gl/mathgl/mgl32"
)

func shapes() []struct {
	name  string
	shape kernel.Shape
} {
	return []struct {
		name  string
		shape kernel.Shape
	}{
		{"arrow", kernel.Arrow{Length: 1, ShaftRadius: 0.025, HeadLength: 0.2, HeadRadius: 0.07, Segments: 12}},
		{"ring", kernel.Ring{Radius: 1, TubeRadius: 0.03, Segments: 32, TubeSegments: 6}},
		{"half ring", kernel.Ring{Radius: 1, TubeRadius: 0.03, Segments: 16, TubeSegments: 6, ArcDegrees: 180}},
		{"box", kernel.Box{Min: mgl32.Vec3{0.1, 0.1, -0.01}, Max: mgl32.Vec3{0.3, 0.3, 0.01}}},
		{"sphere", kernel.Sphere{Radius: 0.5, Slices: 12, Stacks: 6}},
		{"scale handle", kernel.ScaleHandle{Length: 1, ShaftRadius: 0.025, TipSize: 0.12, Segments: 12}},
	}
}

func TestMeshesAreWellFormed(t *testing.T) {
	k := procedural.New()
	for _, tt := range shapes() {
		t.Run(tt.name, func(t *testing.T) {
			m, err := k.Mesh(tt.shape)
			if err != nil {
				t.Fatalf("Mesh() error = %v", err)
			}
			if m.IsEmpty() || m.TriangleCount() == 0 {
				t.Fatal("mesh is empty")
			}
			if len(m.Normals) != len(m.Positions) {
				t.Fatalf("normals %d != positions %d", len(m.Normals), len(m.Positions))
			}
			for _, idx := range m.Indices {
				if int(idx) >= m.VertexCount() {
					t.Fatalf("index %d out of range (%d vertices)", idx, m.VertexCount())
				}
			}
			min, max := tt.shape.Bounds()
			const slack = 1e-4
			for i := 0; i < m.VertexCount(); i++ {
				p := m.Position(uint32(i))
				for c := 0; c < 3; c++ {
					if p[c] < min[c]-slack || p[c] > max[c]+slack {
						t.Fatalf("vertex %d = %v outside bounds %v..%v", i, p, min, max)
					}
				}
				if l := m.Normal(uint32(i)).Len(); l < 0.999 || l > 1.001 {
					t.Fatalf("normal %d has length %v", i, l)
				}
			}
		})
	}
}

func TestMeshesAreDeterministic(t *testing.T) {
	k := procedural.New()
	for _, tt := range shapes() {
		a, _ := k.Mesh(tt.shape)
		b, _ := k.Mesh(tt.shape)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two builds differ", tt.name)
		}
	}
}

func TestSphereNormalsPointOutward(t *testing.T) {
	m := procedural.Sphere(kernel.Sphere{Radius: 2, Slices: 10, Stacks: 5})
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Len() < 1e-6 {
			continue // pole triangles collapse
		}
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if face.Dot(center) <= 0 {
			t.Fatalf("triangle %d winds inward", i)
		}
	}
}

func TestBoxHasSixFaces(t *testing.T) {
	m := procedural.Box(kernel.Box{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}})
	if m.VertexCount() != 24 || m.TriangleCount() != 12 {
		t.Errorf("box has %d vertices, %d triangles; want 24, 12", m.VertexCount(), m.TriangleCount())
	}
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Dot(a) <= 0 {
			t.Fatalf("triangle %d winds inward", i)
		}
	}
}

func TestArrowReachesTip(t *testing.T) {
	m := procedural.Arrow(kernel.Arrow{Length: 2, ShaftRadius: 0.05, HeadLength: 0.5, HeadRadius: 0.1, Segments: 8})
	var maxX float32
	for i := 0; i < m.VertexCount(); i++ {
		if x := m.Position(uint32(i))[0]; x > maxX {
			maxX = x
		}
	}
	if maxX != 2 {
		t.Errorf("arrow tip at x=%v, want 2", maxX)
	}
}

func TestLowSegmentCountsAreClamped(t *testing.T) {
	m := procedural.Ring(kernel.Ring{Radius: 1, TubeRadius: 0.1})
	if m.TriangleCount() != 3*3*2 {
		t.Errorf("ring with zero segments has %d triangles, want 18", m.TriangleCount())
	}
}

type unknownShape struct{}

func (unknownShape) Bounds() (min, max mgl32.Vec3) { return }

func TestUnsupportedShape(t *testing.T) {
	if _, err := procedural.New().Mesh(unknownShape{}); err == nil {
		t.Error("expected error for unsupported shape")
	}
}
