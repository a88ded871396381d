// Package kernel defines the geometry kernel used to build gizmo handle
// meshes. Implementations (procedural, sdfx) turn a Shape description into
// triangles behind this interface, so hit-testing and drawing do not care
// which backend produced them.
package kernel

import "github.com/go-gl/mathgl/mgl32"

// Shape describes one primitive in its canonical local frame. Every shape
// is a comparable value so it can key a cache.
type Shape interface {
	// Bounds returns the axis-aligned bounding box in the local frame.
	Bounds() (min, max mgl32.Vec3)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Mesh returns the triangles of s. The mesh must not be mutated by callers.
	Mesh(s Shape) (*Mesh, error)
}

// Arrow is a cylinder shaft capped by a cone, pointing along +X from the origin.
type Arrow struct {
	Length      float32 // total length including the head
	ShaftRadius float32
	HeadLength  float32
	HeadRadius  float32
	Segments    int
}

func (a Arrow) Bounds() (min, max mgl32.Vec3) {
	r := a.HeadRadius
	if a.ShaftRadius > r {
		r = a.ShaftRadius
	}
	return mgl32.Vec3{0, -r, -r}, mgl32.Vec3{a.Length, r, r}
}

// Ring is a torus around the +X axis, lying in the YZ plane. ArcDegrees
// below 360 produces an open arc starting at +Y.
type Ring struct {
	Radius       float32
	TubeRadius   float32
	Segments     int
	TubeSegments int
	ArcDegrees   float32
}

func (r Ring) Bounds() (min, max mgl32.Vec3) {
	o := r.Radius + r.TubeRadius
	return mgl32.Vec3{-r.TubeRadius, -o, -o}, mgl32.Vec3{r.TubeRadius, o, o}
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max mgl32.Vec3
}

func (b Box) Bounds() (min, max mgl32.Vec3) {
	return b.Min, b.Max
}

// Center returns the middle of the box.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Sphere is centered at the origin.
type Sphere struct {
	Radius float32
	Slices int
	Stacks int
}

func (s Sphere) Bounds() (min, max mgl32.Vec3) {
	return mgl32.Vec3{-s.Radius, -s.Radius, -s.Radius}, mgl32.Vec3{s.Radius, s.Radius, s.Radius}
}

// ScaleHandle is a cylinder shaft ending in a cube, along +X from the origin.
type ScaleHandle struct {
	Length      float32 // total length including the cube
	ShaftRadius float32
	TipSize     float32 // cube edge length
	Segments    int
}

func (s ScaleHandle) Bounds() (min, max mgl32.Vec3) {
	h := s.TipSize / 2
	if s.ShaftRadius > h {
		h = s.ShaftRadius
	}
	return mgl32.Vec3{0, -h, -h}, mgl32.Vec3{s.Length, h, h}
}

// Tip returns the box of the cube at the end of the handle.
func (s ScaleHandle) Tip() Box {
	h := s.TipSize / 2
	return Box{
		Min: mgl32.Vec3{s.Length - s.TipSize, -h, -h},
		Max: mgl32.Vec3{s.Length, h, h},
	}
}
