package meshmath

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// Array returns q as the wire representation (x, y, z, w).
func (q Quat) Array() [4]float32 {
	return [4]float32{q.X, q.Y, q.Z, q.W}
}

// QuatFromArray builds a Quat from its wire representation.
func QuatFromArray(a [4]float32) Quat {
	return Quat{a[0], a[1], a[2], a[3]}
}

// Length returns the quaternion's magnitude.
func (q Quat) Length() float32 {
	return float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

// Normalize returns a unit quaternion, falling back to identity when q is
// degenerate (near-zero length).
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l < 1e-8 {
		return QuatIdentity()
	}
	inv := 1.0 / l
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Conjugate returns the conjugate (x, y, z negated).
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the inverse rotation. For a unit quaternion this equals
// the conjugate; Inverse normalizes first so it is safe for any non-zero q.
func (q Quat) Inverse() Quat {
	q = q.Normalize()
	return q.Conjugate()
}

// Mul returns the Hamilton product q*other; as a rotation it applies
// other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// RotateVec3 rotates v by q (assumes q is, or will be normalized first).
func (q Quat) RotateVec3(v Vec3) Vec3 {
	m := q.ToMat3()
	return m.TransformVec3(v)
}

// ToMat3 converts the quaternion to a 3x3 rotation matrix.
func (q Quat) ToMat3() Mat3 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - zw), 2 * (xz + yw),
		2 * (xy + zw), 1 - 2*(xx+zz), 2 * (yz - xw),
		2 * (xz - yw), 2 * (yz + xw), 1 - 2*(xx+yy),
	}
}

// QuatFromMat3 extracts a unit quaternion from a rotation matrix using the
// standard trace-based construction.
func QuatFromMat3(m Mat3) Quat {
	trace := m[0] + m[4] + m[8]

	var q Quat
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		q.W = 0.25 * s
		q.X = (m[7] - m[5]) / s
		q.Y = (m[2] - m[6]) / s
		q.Z = (m[3] - m[1]) / s
	case m[0] > m[4] && m[0] > m[8]:
		s := float32(math.Sqrt(float64(1+m[0]-m[4]-m[8]))) * 2
		q.W = (m[7] - m[5]) / s
		q.X = 0.25 * s
		q.Y = (m[1] + m[3]) / s
		q.Z = (m[2] + m[6]) / s
	case m[4] > m[8]:
		s := float32(math.Sqrt(float64(1+m[4]-m[0]-m[8]))) * 2
		q.W = (m[2] - m[6]) / s
		q.X = (m[1] + m[3]) / s
		q.Y = 0.25 * s
		q.Z = (m[5] + m[7]) / s
	default:
		s := float32(math.Sqrt(float64(1+m[8]-m[0]-m[4]))) * 2
		q.W = (m[3] - m[1]) / s
		q.X = (m[2] + m[6]) / s
		q.Y = (m[5] + m[7]) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}
