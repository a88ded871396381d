package gizmo

import (
	"math"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/go-gl/mathgl/mgl32"
)

// Rotation draws a rotate handle at t and rotates *r while it is dragged.
// The rings turn about the handle axes: world axes, or the axes of *r when
// local. The inner arcball rotates freely and is only available with every
// axis enabled. It returns true while dragging.
func Rotation(s *System, id ID, local bool, axes Axes, t mgl32.Vec3, r *mgl32.Quat) bool {
	rec := s.Record(id)
	frame := handleFrame(t, *r, local)
	size := s.handleSize(t)
	start := falg.TRS{Translation: t, Rotation: *r, Scale: mgl32.Vec3{1, 1, 1}}

	dragging := s.interact(id, rec, frame, size, start, func(ray falg.Ray) (Part, bool) {
		return s.pickRotation(ray, axes)
	})
	if dragging {
		if q, ok := rotate(rec, s.cur.Ray, s.style.ArcballRadius*size); ok {
			*r = q
		}
		frame = handleFrame(t, *r, local)
	}
	s.drawRotation(rec, frame, size, axes)
	return dragging
}

func (s *System) pickRotation(ray falg.Ray, axes Axes) (Part, bool) {
	st := s.style
	h := newHits()
	ring := s.mesh(st.ringPick())
	for i := 0; i < 3; i++ {
		if !axes.Has(i) {
			continue
		}
		t, ok := rayMesh(orientRay(ray, i), ring)
		h.offer(axisPart(i), t, ok)
	}
	if axes.All() {
		t, ok := raySphere(ray, st.ArcballRadius)
		h.offer(PartArcball, t, ok)
	}
	return h.result()
}

// rotate returns the dragged rotation for ray. The delta is applied after
// the starting rotation, about a world-space axis.
func rotate(rec *Record, ray falg.Ray, arcballRadius float32) (mgl32.Quat, bool) {
	frame := rec.DragStartFrame
	c := frame.Translation
	var delta mgl32.Quat
	switch rec.Part {
	case PartX, PartY, PartZ:
		n := frame.ApplyDirection(unitAxis(rec.Part.axis()))
		p0, ok0 := rayPlane(rec.DragStartRay, c, n)
		p1, ok1 := rayPlane(ray, c, n)
		if !ok0 || !ok1 {
			return mgl32.Quat{}, false
		}
		v0, v1 := p0.Sub(c), p1.Sub(c)
		if v0.Len() < falg.DefaultEpsilon || v1.Len() < falg.DefaultEpsilon {
			return mgl32.Quat{}, false
		}
		angle := float32(math.Atan2(float64(n.Dot(v0.Cross(v1))), float64(v0.Dot(v1))))
		delta = falg.QuatAxisAngle(n, angle)
	case PartArcball:
		v0, ok0 := arcballVector(rec.DragStartRay, c, arcballRadius)
		v1, ok1 := arcballVector(ray, c, arcballRadius)
		if !ok0 || !ok1 {
			return mgl32.Quat{}, false
		}
		delta = mgl32.QuatBetweenVectors(v0, v1)
	default:
		return mgl32.Quat{}, false
	}
	return falg.QuatMul(rec.DragStart.Rotation, delta).Normalize(), true
}

// arcballVector returns the unit direction from c to where ray grabs the
// virtual sphere. A ray that misses grabs the silhouette point nearest to it.
func arcballVector(ray falg.Ray, c mgl32.Vec3, radius float32) (mgl32.Vec3, bool) {
	local := falg.Ray{Origin: ray.Origin.Sub(c), Direction: ray.Direction}
	var v mgl32.Vec3
	if t, ok := raySphere(local, radius); ok {
		v = local.At(t)
	} else {
		v = closestToPoint(ray, c).Sub(c)
	}
	if v.Len() < falg.DefaultEpsilon {
		return mgl32.Vec3{}, false
	}
	return v.Normalize(), true
}

func (s *System) drawRotation(rec *Record, frame falg.Transform, size float32, axes Axes) {
	st := s.style
	for i := 0; i < 3; i++ {
		if axes.Has(i) {
			s.emit(st.ring(), axisRotations[i], frame, size, s.color(rec, axisPart(i), st.AxisColors[i]))
		}
	}
	if axes.All() {
		s.emit(st.arcball(), mgl32.QuatIdent(), frame, size, s.color(rec, PartArcball, st.ArcballColor))
	}
}
