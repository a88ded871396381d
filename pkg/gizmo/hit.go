package gizmo

import (
	"math"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon is the smallest denominator treated as non-parallel.
const parallelEpsilon = 1e-6

var noHit = float32(math.Inf(1))

// hits tracks the nearest hit of one pick pass. Parts must be offered in
// canonical order; equal distances keep the earlier part.
type hits struct {
	part Part
	t    float32
}

func newHits() hits {
	return hits{part: PartNone, t: noHit}
}

func (h *hits) offer(p Part, t float32, ok bool) {
	if ok && t < h.t {
		h.part, h.t = p, t
	}
}

func (h hits) result() (Part, bool) {
	return h.part, h.part != PartNone
}

// orientRay maps a handle-frame ray into the canonical +X frame of axis i.
func orientRay(r falg.Ray, i int) falg.Ray {
	inv := axisRotations[i].Conjugate()
	return falg.Ray{Origin: inv.Rotate(r.Origin), Direction: inv.Rotate(r.Direction)}
}

// nearestRoot returns the smallest non-negative root of a*t^2 + b*t + c
// accepted by keep.
func nearestRoot(a, b, c float32, keep func(t float32) bool) (float32, bool) {
	if math.Abs(float64(a)) < parallelEpsilon {
		if math.Abs(float64(b)) < parallelEpsilon {
			return 0, false
		}
		t := -c / b
		return t, t >= 0 && keep(t)
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t0, t1 := (-b-sq)/(2*a), (-b+sq)/(2*a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	for _, t := range [2]float32{t0, t1} {
		if t >= 0 && keep(t) {
			return t, true
		}
	}
	return 0, false
}

// capHit intersects the disk of radius r at x = x0, facing the X axis.
func capHit(ray falg.Ray, x0, r float32) (float32, bool) {
	if math.Abs(float64(ray.Direction[0])) < parallelEpsilon {
		return 0, false
	}
	t := (x0 - ray.Origin[0]) / ray.Direction[0]
	if t < 0 {
		return 0, false
	}
	p := ray.At(t)
	return t, p[1]*p[1]+p[2]*p[2] <= r*r
}

func minHit(t0 float32, ok0 bool, t1 float32, ok1 bool) (float32, bool) {
	switch {
	case ok0 && ok1:
		if t1 < t0 {
			return t1, true
		}
		return t0, true
	case ok0:
		return t0, true
	case ok1:
		return t1, true
	}
	return 0, false
}

// rayCylinder intersects a closed cylinder of radius r along +X from x0 to x1.
func rayCylinder(ray falg.Ray, x0, x1, r float32) (float32, bool) {
	o, d := ray.Origin, ray.Direction
	a := d[1]*d[1] + d[2]*d[2]
	b := 2 * (o[1]*d[1] + o[2]*d[2])
	c := o[1]*o[1] + o[2]*o[2] - r*r
	t, ok := nearestRoot(a, b, c, func(t float32) bool {
		x := o[0] + t*d[0]
		return x >= x0 && x <= x1
	})
	t0, ok0 := capHit(ray, x0, r)
	t, ok = minHit(t, ok, t0, ok0)
	t1, ok1 := capHit(ray, x1, r)
	return minHit(t, ok, t1, ok1)
}

// rayCone intersects a cone along +X with a base of radius r at x0 and the
// apex at x1.
func rayCone(ray falg.Ray, x0, x1, r float32) (float32, bool) {
	h := x1 - x0
	if h <= 0 {
		return 0, false
	}
	k := r / h
	k2 := k * k
	o, d := ray.Origin, ray.Direction
	// u measures distance from the apex back towards the base.
	ou, du := x1-o[0], -d[0]
	a := d[1]*d[1] + d[2]*d[2] - k2*du*du
	b := 2 * (o[1]*d[1] + o[2]*d[2] - k2*ou*du)
	c := o[1]*o[1] + o[2]*o[2] - k2*ou*ou
	t, ok := nearestRoot(a, b, c, func(t float32) bool {
		u := ou + t*du
		return u >= 0 && u <= h
	})
	tb, okb := capHit(ray, x0, r)
	return minHit(t, ok, tb, okb)
}

// raySphere intersects a sphere of radius r centered at the origin.
func raySphere(ray falg.Ray, r float32) (float32, bool) {
	o, d := ray.Origin, ray.Direction
	return nearestRoot(d.Dot(d), 2*o.Dot(d), o.Dot(o)-r*r, func(float32) bool { return true })
}

// rayBox intersects an axis-aligned box with the slab method. A ray that
// starts inside hits at 0.
func rayBox(ray falg.Ray, b kernel.Box) (float32, bool) {
	tmin, tmax := float32(0), noHit
	for i := 0; i < 3; i++ {
		o, d := ray.Origin[i], ray.Direction[i]
		if math.Abs(float64(d)) < parallelEpsilon {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, false
			}
			continue
		}
		t0, t1 := (b.Min[i]-o)/d, (b.Max[i]-o)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// rayTriangle is the Moller-Trumbore test, accepting both windings.
func rayTriangle(ray falg.Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1, e2 := b.Sub(a), c.Sub(a)
	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(float64(det)) < 1e-9 {
		return 0, false
	}
	inv := 1 / det
	s := ray.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := ray.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	return t, t >= 0
}

// rayMesh returns the nearest triangle hit of m.
func rayMesh(ray falg.Ray, m *kernel.Mesh) (float32, bool) {
	if m == nil {
		return 0, false
	}
	best, found := noHit, false
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		if t, ok := rayTriangle(ray, a, b, c); ok && t < best {
			best, found = t, true
		}
	}
	return best, found
}

// closestOnLine returns the parameter along the unit direction d from c of
// the point on that line closest to the ray. ok is false when the ray is
// parallel to the line.
func closestOnLine(ray falg.Ray, c, d mgl32.Vec3) (float32, bool) {
	u := ray.Direction
	w := ray.Origin.Sub(c)
	uu, uv, vv := u.Dot(u), u.Dot(d), d.Dot(d)
	uw, vw := u.Dot(w), d.Dot(w)
	denom := uu*vv - uv*uv
	if denom < parallelEpsilon*uu*vv {
		return 0, false
	}
	return (uu*vw - uv*uw) / denom, true
}

// rayPlane returns where the ray meets the plane through p with normal n.
// Hits behind the ray origin and rays parallel to the plane fail.
func rayPlane(ray falg.Ray, p, n mgl32.Vec3) (mgl32.Vec3, bool) {
	denom := ray.Direction.Dot(n)
	if math.Abs(float64(denom)) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := p.Sub(ray.Origin).Dot(n) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return ray.At(t), true
}

// closestToPoint returns the point of the ray's line closest to p.
func closestToPoint(ray falg.Ray, p mgl32.Vec3) mgl32.Vec3 {
	dd := ray.Direction.Dot(ray.Direction)
	if dd == 0 {
		return ray.Origin
	}
	return ray.At(p.Sub(ray.Origin).Dot(ray.Direction) / dd)
}
