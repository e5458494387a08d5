package meshmath

import (
	"gonum.org/v1/gonum/mat"
)

// Mat3 is a 3x3 matrix in row-major order: [m0 m1 m2 / m3 m4 m5 / m6 m7 m8].
type Mat3 [9]float32

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// TransformVec3 applies m to v (m * v).
func (m Mat3) TransformVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[row*3+0]*other[0*3+col] +
				m[row*3+1]*other[1*3+col] +
				m[row*3+2]*other[2*3+col]
		}
	}
	return r
}

// Determinant returns the determinant of m.
func (m Mat3) Determinant() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// SymmetricEigen holds the eigenvalues (ascending) and corresponding unit
// eigenvectors (as matrix columns, packed row-major like Mat3) of a
// symmetric 3x3 matrix.
type SymmetricEigen struct {
	Values  [3]float32
	Vectors Mat3 // column i is the eigenvector for Values[i]
}

// EigenSymmetric3 diagonalizes a symmetric 3x3 matrix given its six
// independent entries (the inertia tensor convention used throughout this
// module): Ixx, Iyy, Izz, Ixy, Ixz, Iyz.
//
// It delegates to gonum's dense symmetric eigensolver rather than a
// hand-rolled Jacobi sweep — the reference corpus carries no eigensolver
// of its own for anything larger than a 4x4 rigid transform.
func EigenSymmetric3(ixx, iyy, izz, ixy, ixz, iyz float64) SymmetricEigen {
	sym := mat.NewSymDense(3, []float64{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	})

	var eig mat.EigenSym
	ok := eig.Factorize(sym, true)
	if !ok {
		// Degenerate tensor (e.g. all-zero). Report zero eigenvalues and
		// the identity frame; callers treat this as a validity failure.
		return SymmetricEigen{Vectors: Identity3()}
	}

	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	var out SymmetricEigen
	for i := 0; i < 3; i++ {
		out.Values[i] = float32(values[i])
	}
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out.Vectors[row*3+col] = float32(vecs.At(row, col))
		}
	}

	// gonum makes no handedness guarantee; a reflection is a valid
	// eigenbasis but not a valid rotation, so flip the last column when
	// needed to keep Vectors a proper (det = +1) rotation matrix.
	if out.Vectors.Determinant() < 0 {
		out.Vectors[2] = -out.Vectors[2]
		out.Vectors[5] = -out.Vectors[5]
		out.Vectors[8] = -out.Vectors[8]
	}
	return out
}
