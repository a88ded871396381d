package falg

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ToRadians converts degrees to radians.
	ToRadians = float32(math.Pi / 180)
	// ToDegrees converts radians to degrees.
	ToDegrees = float32(180 / math.Pi)
)

// Transform is a rigid transform: rotate, then translate.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// QuatAxisAngle returns the rotation of angle radians about axis.
// The axis does not have to be normalized but must be non-zero.
func QuatAxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	return mgl32.QuatRotate(angle, axis.Normalize())
}

// QuatMul returns the rotation that applies a first and then b.
func QuatMul(a, b mgl32.Quat) mgl32.Quat {
	return b.Mul(a)
}

// Mul composes two transforms. The result applies a first and then b.
func Mul(a, b Transform) Transform {
	return Transform{
		Translation: b.Rotation.Rotate(a.Translation).Add(b.Translation),
		Rotation:    QuatMul(a.Rotation, b.Rotation),
	}
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Conjugate()
	return Transform{
		Translation: inv.Rotate(t.Translation).Mul(-1),
		Rotation:    inv,
	}
}

// ApplyPosition transforms a point.
func (t Transform) ApplyPosition(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// ApplyDirection rotates a direction; translation is ignored.
func (t Transform) ApplyDirection(d mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(d)
}

// ApplyRay transforms both the origin and the direction of r.
func (t Transform) ApplyRay(r Ray) Ray {
	return Ray{
		Origin:    t.ApplyPosition(r.Origin),
		Direction: t.ApplyDirection(r.Direction),
	}
}

// Matrix returns the rigid transform as a matrix (see TRS.Matrix for the layout).
func (t Transform) Matrix() mgl32.Mat4 {
	return TRS{Translation: t.Translation, Rotation: t.Rotation, Scale: mgl32.Vec3{1, 1, 1}}.Matrix()
}

// Ray is a half line. Direction need not be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter d along the ray.
func (r Ray) At(d float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(d))
}

// Scaled returns a ray with origin and direction divided component-wise by s.
// It maps a ray into the unit frame of a scaled shape.
func (r Ray) Scaled(s mgl32.Vec3) Ray {
	return Ray{
		Origin:    mgl32.Vec3{r.Origin[0] / s[0], r.Origin[1] / s[1], r.Origin[2] / s[2]},
		Direction: mgl32.Vec3{r.Direction[0] / s[0], r.Direction[1] / s[1], r.Direction[2] / s[2]},
	}
}
