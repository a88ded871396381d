package gizmo

import (
	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/go-gl/mathgl/mgl32"
)

// Translation draws a move handle at *t and moves *t while it is dragged.
// With local the handle follows r, otherwise it is world aligned. Disabled
// axes are neither drawn nor pickable; the plane handles need both of their
// axes and the screen handle needs all three. It returns true while dragging.
func Translation(s *System, id ID, local bool, axes Axes, t *mgl32.Vec3, r mgl32.Quat) bool {
	rec := s.Record(id)
	frame := handleFrame(*t, r, local)
	size := s.handleSize(*t)
	start := falg.TRS{Translation: *t, Rotation: r, Scale: mgl32.Vec3{1, 1, 1}}

	dragging := s.interact(id, rec, frame, size, start, func(ray falg.Ray) (Part, bool) {
		return s.pickTranslation(ray, axes)
	})
	if dragging {
		if p, ok := translate(rec, s.cur.Ray); ok {
			*t = p
		}
		frame = handleFrame(*t, r, local)
		size = s.handleSize(*t)
	}
	s.drawTranslation(rec, frame, size, axes)
	return dragging
}

// planeEnabled reports whether both in-plane axes of plane part i are on.
func planeEnabled(axes Axes, i int) bool {
	return axes.Has((i+1)%3) && axes.Has((i+2)%3)
}

func (s *System) pickTranslation(ray falg.Ray, axes Axes) (Part, bool) {
	st := s.style
	h := newHits()
	shaft := max32(st.ShaftRadius, st.PickRadius)
	headStart := st.AxisLength - st.HeadLength
	for i := 0; i < 3; i++ {
		if !axes.Has(i) {
			continue
		}
		local := orientRay(ray, i)
		t0, ok0 := rayCylinder(local, 0, headStart, shaft)
		t1, ok1 := rayCone(local, headStart, st.AxisLength, max32(st.HeadRadius, st.PickRadius))
		t, ok := minHit(t0, ok0, t1, ok1)
		h.offer(axisPart(i), t, ok)
	}
	for i := 0; i < 3; i++ {
		if !planeEnabled(axes, i) {
			continue
		}
		t, ok := rayBox(ray, st.planeBox(planePart(i)))
		h.offer(planePart(i), t, ok)
	}
	if axes.All() {
		t, ok := raySphere(ray, st.CenterRadius)
		h.offer(PartScreen, t, ok)
	}
	return h.result()
}

// translate returns the dragged position for ray, measured from the drag
// snapshot so that repeated frames never accumulate error.
func translate(rec *Record, ray falg.Ray) (mgl32.Vec3, bool) {
	frame := rec.DragStartFrame
	c := frame.Translation
	var delta mgl32.Vec3
	switch rec.Part {
	case PartX, PartY, PartZ:
		d := frame.ApplyDirection(unitAxis(rec.Part.axis()))
		s0, ok0 := closestOnLine(rec.DragStartRay, c, d)
		s1, ok1 := closestOnLine(ray, c, d)
		if !ok0 || !ok1 {
			return mgl32.Vec3{}, false
		}
		delta = d.Mul(s1 - s0)
	case PartYZ, PartZX, PartXY, PartScreen:
		var n mgl32.Vec3
		if rec.Part == PartScreen {
			n = rec.DragStartRay.Direction.Normalize()
		} else {
			n = frame.ApplyDirection(unitAxis(rec.Part.axis()))
		}
		p0, ok0 := rayPlane(rec.DragStartRay, c, n)
		p1, ok1 := rayPlane(ray, c, n)
		if !ok0 || !ok1 {
			return mgl32.Vec3{}, false
		}
		delta = p1.Sub(p0)
	default:
		return mgl32.Vec3{}, false
	}
	return rec.DragStart.Translation.Add(delta), true
}

func (s *System) drawTranslation(rec *Record, frame falg.Transform, size float32, axes Axes) {
	st := s.style
	ident := mgl32.QuatIdent()
	for i := 0; i < 3; i++ {
		if axes.Has(i) {
			s.emit(st.arrow(), axisRotations[i], frame, size, s.color(rec, axisPart(i), st.AxisColors[i]))
		}
	}
	for i := 0; i < 3; i++ {
		if planeEnabled(axes, i) {
			s.emit(st.planeBox(planePart(i)), ident, frame, size, s.color(rec, planePart(i), st.AxisColors[i]))
		}
	}
	if axes.All() {
		s.emit(st.centerSphere(), ident, frame, size, s.color(rec, PartScreen, st.CenterColor))
	}
}
