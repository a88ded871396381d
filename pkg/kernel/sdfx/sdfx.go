// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Shapes are built as signed
// distance fields and meshed with marching cubes, which is too slow for
// per-frame use but fine behind a kernel.Cache or for exports.
package sdfx

import (
	"fmt"

	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution.
const DefaultMeshCells = 200

// Kernel implements kernel.Kernel using sdfx.
//
// sdfx builds revolved solids around its Z axis while gizmo shapes point
// along +X, so solids are modelled in sdfx space and the cyclic permutation
// (x, y, z) -> (z, x, y) maps them back. The permutation is a proper
// rotation and keeps triangle winding intact.
type Kernel struct {
	Cells int
}

// New returns a new Kernel with the given marching cubes resolution.
// cells <= 0 selects DefaultMeshCells.
func New(cells int) *Kernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &Kernel{Cells: cells}
}

// toSDF converts a gizmo-frame vector into sdfx space.
func toSDF(v mgl32.Vec3) v3.Vec {
	return v3.Vec{X: float64(v[1]), Y: float64(v[2]), Z: float64(v[0])}
}

// fromSDF converts an sdfx-space vector into the gizmo frame.
func fromSDF(v v3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.Z), float32(v.X), float32(v.Y)}
}

// Mesh converts a shape to a triangle mesh using marching cubes.
func (k *Kernel) Mesh(s kernel.Shape) (*kernel.Mesh, error) {
	solid, err := k.solid(s)
	if err != nil {
		return nil, err
	}
	return k.toMesh(solid), nil
}

// solid builds the SDF for a shape.
func (k *Kernel) solid(s kernel.Shape) (sdf.SDF3, error) {
	switch shape := s.(type) {
	case kernel.Arrow:
		return arrow(shape)
	case kernel.Ring:
		return ring(shape)
	case kernel.Box:
		return box(shape)
	case kernel.Sphere:
		s3, err := sdf.Sphere3D(float64(shape.Radius))
		if err != nil {
			return nil, fmt.Errorf("sdfx: sphere: %w", err)
		}
		return s3, nil
	case kernel.ScaleHandle:
		return scaleHandle(shape)
	default:
		return nil, fmt.Errorf("sdfx: unsupported shape %T", s)
	}
}

// shaft returns a cylinder from z=0 to z=length.
func shaft(length, radius float32) (sdf.SDF3, error) {
	cyl, err := sdf.Cylinder3D(float64(length), float64(radius), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: shaft: %w", err)
	}
	return sdf.Transform3D(cyl, sdf.Translate3d(v3.Vec{Z: float64(length) / 2})), nil
}

func arrow(a kernel.Arrow) (sdf.SDF3, error) {
	shaftLen := a.Length - a.HeadLength
	body, err := shaft(shaftLen, a.ShaftRadius)
	if err != nil {
		return nil, err
	}
	cone, err := sdf.Cone3D(float64(a.HeadLength), float64(a.HeadRadius), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: arrow head: %w", err)
	}
	head := sdf.Transform3D(cone, sdf.Translate3d(v3.Vec{Z: float64(shaftLen + a.HeadLength/2)}))
	return sdf.Union3D(body, head), nil
}

func ring(r kernel.Ring) (sdf.SDF3, error) {
	if r.ArcDegrees > 0 && r.ArcDegrees < 360 {
		return nil, fmt.Errorf("sdfx: ring arcs of %.0f degrees are not supported", r.ArcDegrees)
	}
	tube, err := sdf.Circle2D(float64(r.TubeRadius))
	if err != nil {
		return nil, fmt.Errorf("sdfx: ring tube: %w", err)
	}
	tube = sdf.Transform2D(tube, sdf.Translate2d(v2.Vec{X: float64(r.Radius)}))
	torus, err := sdf.Revolve3D(tube)
	if err != nil {
		return nil, fmt.Errorf("sdfx: ring: %w", err)
	}
	return torus, nil
}

func box(b kernel.Box) (sdf.SDF3, error) {
	s3, err := sdf.Box3D(toSDF(b.Max.Sub(b.Min)), 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	return sdf.Transform3D(s3, sdf.Translate3d(toSDF(b.Center()))), nil
}

func scaleHandle(s kernel.ScaleHandle) (sdf.SDF3, error) {
	body, err := shaft(s.Length-s.TipSize, s.ShaftRadius)
	if err != nil {
		return nil, err
	}
	tip, err := box(s.Tip())
	if err != nil {
		return nil, err
	}
	return sdf.Union3D(body, tip), nil
}

// toMesh runs marching cubes and converts the triangles into the gizmo frame.
func (k *Kernel) toMesh(s sdf.SDF3) *kernel.Mesh {
	renderer := render.NewMarchingCubesUniform(k.Cells)
	triangles := render.ToTriangles(s, renderer)

	numVerts := len(triangles) * 3
	m := &kernel.Mesh{
		Positions: make([]float32, 0, numVerts*3),
		Normals:   make([]float32, 0, numVerts*3),
		Indices:   make([]uint32, 0, numVerts),
	}

	for _, tri := range triangles {
		// Face normal, shared by the three corners.
		n := fromSDF(tri.Normal())
		a := m.AddVertex(fromSDF(tri[0]), n)
		b := m.AddVertex(fromSDF(tri[1]), n)
		c := m.AddVertex(fromSDF(tri[2]), n)
		m.AddTriangle(a, b, c)
	}
	return m
}
