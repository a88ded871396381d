// Package falg is the rigid and scaled transform algebra used by the gizmo
// engine. It wraps mathgl's mgl32 vectors and quaternions with a single,
// fixed composition convention.
//
// Composition is row-vector style: Mul(a, b) applies a first and then b, so
//
//	Mul(a, b).ApplyPosition(p) == b.ApplyPosition(a.ApplyPosition(p))
//
// Quaternion products follow the same order (QuatMul(a, b) rotates by a,
// then by b). Matrices produced by TRS.Matrix are the row-vector product
// S*R*T; stored flat they are identical to the column-major mgl32.Mat4
// T*R*S, so the translation lives in elements 12, 13 and 14.
package falg
