// Package procedural implements kernel.Kernel with closed-form triangle
// generators. It is cheap enough to run every frame and is the default
// kernel of the gizmo system.
package procedural

import (
	"fmt"
	"math"

	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// minSegments is the smallest tessellation that still encloses a volume.
const minSegments = 3

// Kernel generates meshes analytically.
type Kernel struct{}

// New returns a new procedural Kernel.
func New() *Kernel {
	return &Kernel{}
}

// Mesh builds the triangles of s.
func (k *Kernel) Mesh(s kernel.Shape) (*kernel.Mesh, error) {
	switch shape := s.(type) {
	case kernel.Arrow:
		return Arrow(shape), nil
	case kernel.Ring:
		return Ring(shape), nil
	case kernel.Box:
		return Box(shape), nil
	case kernel.Sphere:
		return Sphere(shape), nil
	case kernel.ScaleHandle:
		return ScaleHandle(shape), nil
	default:
		return nil, fmt.Errorf("procedural: unsupported shape %T", s)
	}
}

// profilePoint is a point of a lathe profile: x along the axis, r the radius.
type profilePoint struct {
	x, r float32
}

// lathe revolves a profile around +X. Every profile edge gets its own
// vertex rings so creases stay sharp.
func lathe(m *kernel.Mesh, profile []profilePoint, segments int) {
	if segments < minSegments {
		segments = minSegments
	}
	for e := 0; e+1 < len(profile); e++ {
		p0, p1 := profile[e], profile[e+1]
		dx, dr := p1.x-p0.x, p1.r-p0.r
		l := float32(math.Hypot(float64(dx), float64(dr)))
		if l == 0 {
			continue
		}
		nx, nr := -dr/l, dx/l

		base := uint32(m.VertexCount())
		for i := 0; i <= segments; i++ {
			theta := 2 * math.Pi * float64(i) / float64(segments)
			c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
			n := mgl32.Vec3{nx, nr * c, nr * s}
			m.AddVertex(mgl32.Vec3{p0.x, p0.r * c, p0.r * s}, n)
			m.AddVertex(mgl32.Vec3{p1.x, p1.r * c, p1.r * s}, n)
		}
		for i := uint32(0); i < uint32(segments); i++ {
			a, b := base+i*2, base+i*2+1
			d, c := base+(i+1)*2, base+(i+1)*2+1
			m.AddTriangle(a, c, b)
			m.AddTriangle(a, d, c)
		}
	}
}

// Arrow builds a capped cylinder shaft followed by a cone head.
func Arrow(a kernel.Arrow) *kernel.Mesh {
	shaftEnd := a.Length - a.HeadLength
	m := &kernel.Mesh{}
	lathe(m, []profilePoint{
		{0, 0},
		{0, a.ShaftRadius},
		{shaftEnd, a.ShaftRadius},
		{shaftEnd, a.HeadRadius},
		{a.Length, 0},
	}, a.Segments)
	return m
}

// ScaleHandle builds a capped cylinder shaft followed by a cube.
func ScaleHandle(s kernel.ScaleHandle) *kernel.Mesh {
	shaftEnd := s.Length - s.TipSize
	m := &kernel.Mesh{}
	lathe(m, []profilePoint{
		{0, 0},
		{0, s.ShaftRadius},
		{shaftEnd, s.ShaftRadius},
		{shaftEnd, 0},
	}, s.Segments)
	m.Merge(Box(s.Tip()))
	return m
}

// Ring builds a torus (or an open arc of one) around +X.
func Ring(r kernel.Ring) *kernel.Mesh {
	segments, tube := r.Segments, r.TubeSegments
	if segments < minSegments {
		segments = minSegments
	}
	if tube < minSegments {
		tube = minSegments
	}
	arc := float64(r.ArcDegrees)
	if arc <= 0 || arc > 360 {
		arc = 360
	}
	arc *= math.Pi / 180

	m := &kernel.Mesh{}
	for i := 0; i <= segments; i++ {
		phi := arc * float64(i) / float64(segments)
		u := mgl32.Vec3{0, float32(math.Cos(phi)), float32(math.Sin(phi))}
		center := u.Mul(r.Radius)
		for j := 0; j <= tube; j++ {
			psi := 2 * math.Pi * float64(j) / float64(tube)
			n := u.Mul(float32(math.Cos(psi))).Add(mgl32.Vec3{float32(math.Sin(psi)), 0, 0})
			m.AddVertex(center.Add(n.Mul(r.TubeRadius)), n)
		}
	}
	stride := uint32(tube + 1)
	for i := uint32(0); i < uint32(segments); i++ {
		for j := uint32(0); j < uint32(tube); j++ {
			a := i*stride + j
			b := (i+1)*stride + j
			c := (i+1)*stride + j + 1
			d := i*stride + j + 1
			m.AddTriangle(a, b, c)
			m.AddTriangle(a, c, d)
		}
	}
	return m
}

// boxFaces lists each face as normal, u, v with u x v == normal.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// Box builds an axis-aligned box with flat-shaded faces.
func Box(b kernel.Box) *kernel.Mesh {
	center := b.Center()
	half := b.Max.Sub(b.Min).Mul(0.5)
	m := &kernel.Mesh{}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		fc := center.Add(mul3(n, half))
		hu, hv := mul3(u, half), mul3(v, half)
		base := uint32(m.VertexCount())
		m.AddVertex(fc.Sub(hu).Sub(hv), n)
		m.AddVertex(fc.Add(hu).Sub(hv), n)
		m.AddVertex(fc.Add(hu).Add(hv), n)
		m.AddVertex(fc.Sub(hu).Add(hv), n)
		m.AddTriangle(base, base+1, base+2)
		m.AddTriangle(base, base+2, base+3)
	}
	return m
}

// Sphere builds a UV sphere with +Y poles.
func Sphere(s kernel.Sphere) *kernel.Mesh {
	slices, stacks := s.Slices, s.Stacks
	if slices < minSegments {
		slices = minSegments
	}
	if stacks < 2 {
		stacks = 2
	}
	m := &kernel.Mesh{}
	for i := 0; i <= stacks; i++ {
		lat := math.Pi*float64(i)/float64(stacks) - math.Pi/2
		for j := 0; j <= slices; j++ {
			lon := 2 * math.Pi * float64(j) / float64(slices)
			n := mgl32.Vec3{
				float32(math.Cos(lat) * math.Cos(lon)),
				float32(math.Sin(lat)),
				float32(-math.Cos(lat) * math.Sin(lon)),
			}
			m.AddVertex(n.Mul(s.Radius), n)
		}
	}
	stride := uint32(slices + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			a := i*stride + j
			b := i*stride + j + 1
			c := (i+1)*stride + j + 1
			d := (i+1)*stride + j
			m.AddTriangle(a, b, c)
			m.AddTriangle(a, c, d)
		}
	}
	return m
}

func mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
