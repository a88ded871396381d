package falg

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func sampleTransforms() []Transform {
	return []Transform{
		Identity(),
		{Translation: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent()},
		{Translation: mgl32.Vec3{-4, 0.5, 9}, Rotation: QuatAxisAngle(mgl32.Vec3{1, 0, 0}, 1)},
		{Translation: mgl32.Vec3{0, -7, 2}, Rotation: QuatAxisAngle(mgl32.Vec3{1, 1, 1}, 2.5)},
		{Translation: mgl32.Vec3{3, 3, 3}, Rotation: QuatAxisAngle(mgl32.Vec3{0, 0, 1}, -0.75)},
	}
}

func TestApplyPositionOrder(t *testing.T) {
	a := Transform{Translation: mgl32.Vec3{1, 0, 0}, Rotation: QuatAxisAngle(mgl32.Vec3{1, 0, 0}, 90*ToRadians)}
	if got := a.ApplyPosition(mgl32.Vec3{1, 2, 3}); !NearlyVec3(got, mgl32.Vec3{2, -3, 2}, eps) {
		t.Errorf("a.ApplyPosition = %v, want [2 -3 2]", got)
	}

	b := Transform{Translation: mgl32.Vec3{1, 0, 0}, Rotation: QuatAxisAngle(mgl32.Vec3{0, 1, 0}, 90*ToRadians)}
	if got := Mul(a, b).ApplyPosition(mgl32.Vec3{1, 0, 0}); !NearlyVec3(got, mgl32.Vec3{1, 0, -2}, eps) {
		t.Errorf("Mul(a, b).ApplyPosition = %v, want [1 0 -2]", got)
	}
}

func TestMulMatchesSequentialApply(t *testing.T) {
	xs := sampleTransforms()
	p := mgl32.Vec3{0.3, -1.2, 4}
	for i, a := range xs {
		for j, b := range xs {
			want := b.ApplyPosition(a.ApplyPosition(p))
			if got := Mul(a, b).ApplyPosition(p); !NearlyVec3(got, want, 1e-4) {
				t.Errorf("Mul(%d, %d).ApplyPosition = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestQuatMulOrder(t *testing.T) {
	a := QuatAxisAngle(mgl32.Vec3{1, 0, 0}, 90*ToRadians)
	b := QuatAxisAngle(mgl32.Vec3{0, 1, 0}, 90*ToRadians)
	v := mgl32.Vec3{0, 1, 0}
	want := b.Rotate(a.Rotate(v))
	if got := QuatMul(a, b).Rotate(v); !NearlyVec3(got, want, eps) {
		t.Errorf("QuatMul(a, b).Rotate = %v, want %v", got, want)
	}
}

func TestComposeWithInverseIsIdentity(t *testing.T) {
	for i, x := range sampleTransforms() {
		if got := Mul(x, x.Inverse()); !NearlyTransform(got, Identity(), eps) {
			t.Errorf("transform %d: Mul(t, t^-1) = %+v, want identity", i, got)
		}
		if got := Mul(x.Inverse(), x); !NearlyTransform(got, Identity(), eps) {
			t.Errorf("transform %d: Mul(t^-1, t) = %+v, want identity", i, got)
		}
	}
}

func TestConjugationRoundTrip(t *testing.T) {
	xs := sampleTransforms()
	b := xs[3]
	p := mgl32.Vec3{1, 2, 3}
	for i, a := range xs {
		c := Mul(Mul(a, b), a.Inverse())
		want := a.Inverse().ApplyPosition(b.ApplyPosition(a.ApplyPosition(p)))
		if got := c.ApplyPosition(p); !NearlyVec3(got, want, 1e-4) {
			t.Errorf("transform %d: a*b*a^-1 = %v, want %v", i, got, want)
		}
	}
}

func TestApplyRayRoundTrip(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0.5, -2, 10}, Direction: mgl32.Vec3{0.1, 0.2, -1}}
	for i, x := range sampleTransforms() {
		back := x.Inverse().ApplyRay(x.ApplyRay(r))
		if !NearlyVec3(back.Origin, r.Origin, 1e-4) || !NearlyVec3(back.Direction, r.Direction, 1e-5) {
			t.Errorf("transform %d: ray round trip = %+v, want %+v", i, back, r)
		}
	}
}

func TestApplyDirectionIgnoresTranslation(t *testing.T) {
	x := Transform{Translation: mgl32.Vec3{5, 5, 5}, Rotation: mgl32.QuatIdent()}
	if got := x.ApplyDirection(mgl32.Vec3{0, 0, -1}); got != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("ApplyDirection = %v, want [0 0 -1]", got)
	}
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		trs  TRS
	}{
		{"identity", NewTRS()},
		{"translation only", TRS{Translation: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}},
		{"rotation and translation", TRS{
			Translation: mgl32.Vec3{1, 2, 3},
			Rotation:    QuatAxisAngle(mgl32.Vec3{1, 0, 0}, 1),
			Scale:       mgl32.Vec3{1, 1, 1},
		}},
		{"scale rotation translation", TRS{
			Translation: mgl32.Vec3{1, 2, 3},
			Rotation:    QuatAxisAngle(mgl32.Vec3{1, 0, 0}, 1),
			Scale:       mgl32.Vec3{1, 2, 3},
		}},
		{"oblique axis", TRS{
			Translation: mgl32.Vec3{-5, 0, 0.25},
			Rotation:    QuatAxisAngle(mgl32.Vec3{0.3, -1, 0.5}, 2.2),
			Scale:       mgl32.Vec3{0.5, 4, 0.01},
		}},
		{"near half turn", TRS{
			Translation: mgl32.Vec3{0, 0, 0},
			Rotation:    QuatAxisAngle(mgl32.Vec3{0, 1, 0}, 3.1),
			Scale:       mgl32.Vec3{2, 2, 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Decompose(tt.trs.Matrix())
			if !ok {
				t.Fatal("Decompose reported degenerate scale")
			}
			if !NearlyVec3(got.Translation, tt.trs.Translation, eps) {
				t.Errorf("translation = %v, want %v", got.Translation, tt.trs.Translation)
			}
			if !NearlyVec3(got.Scale, tt.trs.Scale, eps) {
				t.Errorf("scale = %v, want %v", got.Scale, tt.trs.Scale)
			}
			if !NearlyQuat(got.Rotation, tt.trs.Rotation, eps) {
				t.Errorf("rotation = %v, want %v", got.Rotation, tt.trs.Rotation)
			}
		})
	}
}

func TestDecomposeMatrixLayout(t *testing.T) {
	trs := TRS{Translation: mgl32.Vec3{7, 8, 9}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
	m := trs.Matrix()
	if m[12] != 7 || m[13] != 8 || m[14] != 9 {
		t.Errorf("translation elements = %v %v %v, want 7 8 9", m[12], m[13], m[14])
	}
}

func TestDecomposeDegenerate(t *testing.T) {
	trs := TRS{Translation: mgl32.Vec3{1, 1, 1}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 0, 1}}
	got, ok := Decompose(trs.Matrix())
	if ok {
		t.Fatal("expected degenerate result for zero scale axis")
	}
	if !NearlyVec3(got.Translation, trs.Translation, eps) {
		t.Errorf("translation = %v, want %v", got.Translation, trs.Translation)
	}
	if got.Scale[1] != 0 {
		t.Errorf("scale.y = %v, want 0", got.Scale[1])
	}
}

func TestNearlyQuatDoubleCover(t *testing.T) {
	q := QuatAxisAngle(mgl32.Vec3{0, 0, 1}, 0.5)
	neg := mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	if !NearlyQuat(q, neg, eps) {
		t.Error("NearlyQuat(q, -q) = false, want true")
	}
	if NearlyQuat(q, mgl32.QuatIdent(), eps) {
		t.Error("NearlyQuat(q, identity) = true, want false")
	}
}

func TestRayScaled(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{2, 4, 6}, Direction: mgl32.Vec3{1, 1, 1}}
	got := r.Scaled(mgl32.Vec3{2, 4, 0.5})
	if got.Origin != (mgl32.Vec3{1, 1, 12}) || got.Direction != (mgl32.Vec3{0.5, 0.25, 2}) {
		t.Errorf("Scaled = %+v", got)
	}
	if p := r.At(2); p != (mgl32.Vec3{4, 6, 8}) {
		t.Errorf("At(2) = %v, want [4 6 8]", p)
	}
}
