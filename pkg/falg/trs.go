package falg

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DegenerateScale is the basis length below which Decompose reports failure.
const DegenerateScale = 1e-6

// TRS is a transform with a per-axis scale: scale, then rotate, then translate.
type TRS struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTRS returns the identity TRS (unit scale).
func NewTRS() TRS {
	return TRS{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// Transform drops the scale.
func (t TRS) Transform() Transform {
	return Transform{Translation: t.Translation, Rotation: t.Rotation}
}

// ApplyPosition scales, rotates and translates p.
func (t TRS) ApplyPosition(p mgl32.Vec3) mgl32.Vec3 {
	s := mgl32.Vec3{p[0] * t.Scale[0], p[1] * t.Scale[1], p[2] * t.Scale[2]}
	return t.Rotation.Rotate(s).Add(t.Translation)
}

// Matrix returns S*R*T in row-vector form, which is the column-major
// mgl32 matrix T*R*S.
func (t TRS) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Decompose splits an affine matrix into translation, rotation and scale.
//
// The translation is read from elements 12..14, the scale is the length of
// each basis vector and the rotation is built from the normalized basis. ok is
// false when any basis length is below DegenerateScale; in that case the
// translation and scale are still filled in and the rotation is identity.
// Negative scale (mirroring) cannot be recovered and is not supported.
func Decompose(m mgl32.Mat4) (trs TRS, ok bool) {
	trs.Translation = mgl32.Vec3{m[12], m[13], m[14]}
	trs.Rotation = mgl32.QuatIdent()

	var axes [3]mgl32.Vec3
	for i := range axes {
		axes[i] = mgl32.Vec3{m[i*4], m[i*4+1], m[i*4+2]}
		trs.Scale[i] = axes[i].Len()
	}
	for i := range axes {
		if trs.Scale[i] < DegenerateScale {
			return trs, false
		}
		axes[i] = axes[i].Mul(1 / trs.Scale[i])
	}

	rot := mgl32.Mat4{
		axes[0][0], axes[0][1], axes[0][2], 0,
		axes[1][0], axes[1][1], axes[1][2], 0,
		axes[2][0], axes[2][1], axes[2][2], 0,
		0, 0, 0, 1,
	}
	q := mgl32.Mat4ToQuat(rot).Normalize()
	if q.W < 0 {
		q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	trs.Rotation = q
	return trs, true
}
