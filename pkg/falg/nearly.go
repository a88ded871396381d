package falg

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEpsilon is the tolerance used by the engine's own comparisons.
const DefaultEpsilon = 1e-5

// Nearly reports whether a and b differ by at most eps.
func Nearly(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// NearlyVec3 compares component-wise.
func NearlyVec3(a, b mgl32.Vec3, eps float32) bool {
	return Nearly(a[0], b[0], eps) && Nearly(a[1], b[1], eps) && Nearly(a[2], b[2], eps)
}

// NearlyQuat reports whether a and b describe the same orientation.
// q and -q are treated as equal.
func NearlyQuat(a, b mgl32.Quat, eps float32) bool {
	same := Nearly(a.W, b.W, eps) && NearlyVec3(a.V, b.V, eps)
	flipped := Nearly(a.W, -b.W, eps) && NearlyVec3(a.V, b.V.Mul(-1), eps)
	return same || flipped
}

// NearlyTransform compares translation and orientation.
func NearlyTransform(a, b Transform, eps float32) bool {
	return NearlyVec3(a.Translation, b.Translation, eps) && NearlyQuat(a.Rotation, b.Rotation, eps)
}

// NearlyTRS compares all three components.
func NearlyTRS(a, b TRS, eps float32) bool {
	return NearlyVec3(a.Translation, b.Translation, eps) &&
		NearlyQuat(a.Rotation, b.Rotation, eps) &&
		NearlyVec3(a.Scale, b.Scale, eps)
}
