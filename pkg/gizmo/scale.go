package gizmo

import (
	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/go-gl/mathgl/mgl32"
)

// Scale draws a scale handle aligned with r at t and changes *sc while it
// is dragged. With uniform every part scales all three components. It
// returns true while dragging.
func Scale(s *System, id ID, uniform bool, t mgl32.Vec3, r mgl32.Quat, sc *mgl32.Vec3) bool {
	rec := s.Record(id)
	frame := handleFrame(t, r, true)
	size := s.handleSize(t)
	start := falg.TRS{Translation: t, Rotation: r, Scale: *sc}

	dragging := s.interact(id, rec, frame, size, start, s.pickScale)
	if dragging {
		if v, ok := scale(rec, s.cur.Ray, uniform, s.style.MinScaleRatio); ok {
			*sc = v
		}
	}
	s.drawScale(rec, frame, size)
	return dragging
}

func (s *System) pickScale(ray falg.Ray) (Part, bool) {
	st := s.style
	h := newHits()
	sh := st.scaleHandle()
	tip := sh.Tip()
	for i := 0; i < 3; i++ {
		local := orientRay(ray, i)
		t0, ok0 := rayCylinder(local, 0, sh.Length-sh.TipSize, max32(st.ShaftRadius, st.PickRadius))
		t1, ok1 := rayBox(local, tip)
		t, ok := minHit(t0, ok0, t1, ok1)
		h.offer(axisPart(i), t, ok)
	}
	t, ok := rayBox(ray, st.uniformBox())
	h.offer(PartUniform, t, ok)
	return h.result()
}

// scale returns the dragged scale for ray as the starting scale times the
// ratio of the current to the starting grab distance.
func scale(rec *Record, ray falg.Ray, uniform bool, minRatio float32) (mgl32.Vec3, bool) {
	frame := rec.DragStartFrame
	c := frame.Translation
	var ratio float32
	switch rec.Part {
	case PartX, PartY, PartZ:
		d := frame.ApplyDirection(unitAxis(rec.Part.axis()))
		d0, ok0 := closestOnLine(rec.DragStartRay, c, d)
		d1, ok1 := closestOnLine(ray, c, d)
		if !ok0 || !ok1 || d0*d0 < falg.DefaultEpsilon*falg.DefaultEpsilon {
			return mgl32.Vec3{}, false
		}
		ratio = d1 / d0
	case PartUniform:
		n := rec.DragStartRay.Direction.Normalize()
		p0, ok0 := rayPlane(rec.DragStartRay, c, n)
		p1, ok1 := rayPlane(ray, c, n)
		if !ok0 || !ok1 {
			return mgl32.Vec3{}, false
		}
		r0 := p0.Sub(c).Len()
		if r0 < falg.DefaultEpsilon {
			return mgl32.Vec3{}, false
		}
		ratio = p1.Sub(c).Len() / r0
		uniform = true
	default:
		return mgl32.Vec3{}, false
	}
	if ratio < minRatio {
		ratio = minRatio
	}

	out := rec.DragStart.Scale
	if uniform {
		return out.Mul(ratio), true
	}
	i := rec.Part.axis()
	out[i] *= ratio
	return out, true
}

func (s *System) drawScale(rec *Record, frame falg.Transform, size float32) {
	st := s.style
	for i := 0; i < 3; i++ {
		s.emit(st.scaleHandle(), axisRotations[i], frame, size, s.color(rec, axisPart(i), st.AxisColors[i]))
	}
	s.emit(st.uniformBox(), mgl32.QuatIdent(), frame, size, s.color(rec, PartUniform, st.CenterColor))
}
