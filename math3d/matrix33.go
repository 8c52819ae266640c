package math3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix33 is a 3x3 rotation (or general linear) matrix, stored row-major and
// applied to column vectors: MultiplyVector(v) computes M·v. This is the
// convention of joint global matrices in skeleton documents, unlike Matrix44
// which follows the row-vector convention.
type Matrix33 struct {
	data [9]float64
}

var (
	IdentityMatrix33 = MakeMatrix33(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	)
)

// MakeMatrix33 returns a matrix from its nine elements, in row-major order.
func MakeMatrix33(m11, m12, m13, m21, m22, m23, m31, m32, m33 float64) Matrix33 {
	return Matrix33{[9]float64{m11, m12, m13, m21, m22, m23, m31, m32, m33}}
}

// MakeMatrix33FromColumns returns the matrix whose columns are the given
// vectors. For a rotation, these are the images of the canonical X, Y and Z.
func MakeMatrix33FromColumns(x, y, z Vector3) Matrix33 {
	return MakeMatrix33(
		x.X, y.X, z.X,
		x.Y, y.Y, z.Y,
		x.Z, y.Z, z.Z,
	)
}

func matrix33FromDense(d mat.Matrix) Matrix33 {
	m := Matrix33{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.data[r*3+c] = d.At(r, c)
		}
	}
	return m
}

func (m Matrix33) dense() *mat.Dense {
	d := m.data
	return mat.NewDense(3, 3, d[:])
}

func (m Matrix33) String() string {
	return fmt.Sprintf(
		"&M33{%+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f}",
		m.data[0], m.data[1], m.data[2],
		m.data[3], m.data[4], m.data[5],
		m.data[6], m.data[7], m.data[8])
}

// At returns the element at row r, column c (both zero-based).
func (m Matrix33) At(r, c int) float64 {
	return m.data[r*3+c]
}

// Elements returns the matrix as a 3x3 array.
func (m Matrix33) Elements() [3][3]float64 {
	return [3][3]float64{
		{m.data[0], m.data[1], m.data[2]},
		{m.data[3], m.data[4], m.data[5]},
		{m.data[6], m.data[7], m.data[8]},
	}
}

// IsFinite returns false if any element is NaN or infinite.
func (m Matrix33) IsFinite() bool {
	for _, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MultiplyVector returns M·v.
func (m Matrix33) MultiplyVector(v Vector3) Vector3 {
	var out mat.VecDense
	out.MulVec(m.dense(), mat.NewVecDense(3, v.Elements()))
	return Vector3{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// Multiply returns m·n, i.e. the matrix which applies n first, then m.
func (m Matrix33) Multiply(n Matrix33) Matrix33 {
	var out mat.Dense
	out.Mul(m.dense(), n.dense())
	return matrix33FromDense(&out)
}

func (m Matrix33) Transpose() Matrix33 {
	return matrix33FromDense(m.dense().T())
}

func (m Matrix33) Determinant() float64 {
	return mat.Det(m.dense())
}

// IsRotation returns true if the matrix is orthonormal with a determinant of
// +1, within the given tolerance.
func (m Matrix33) IsRotation(tol float64) bool {
	if math.Abs(m.Determinant()-1) > tol {
		return false
	}
	var mmt mat.Dense
	mmt.Mul(m.dense(), m.dense().T())
	return mat.EqualApprox(&mmt, IdentityMatrix33.dense(), tol)
}

// Quaternion converts a rotation matrix to a unit quaternion.
func (m Matrix33) Quaternion() Quaternion {
	e := m.Elements()
	trace := e[0][0] + e[1][1] + e[2][2]

	var w, x, y, z float64
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		w = 0.25 / s
		x = (e[2][1] - e[1][2]) * s
		y = (e[0][2] - e[2][0]) * s
		z = (e[1][0] - e[0][1]) * s

	case e[0][0] > e[1][1] && e[0][0] > e[2][2]:
		s := 2 * math.Sqrt(1+e[0][0]-e[1][1]-e[2][2])
		w = (e[2][1] - e[1][2]) / s
		x = 0.25 * s
		y = (e[0][1] + e[1][0]) / s
		z = (e[0][2] + e[2][0]) / s

	case e[1][1] > e[2][2]:
		s := 2 * math.Sqrt(1+e[1][1]-e[0][0]-e[2][2])
		w = (e[0][2] - e[2][0]) / s
		x = (e[0][1] + e[1][0]) / s
		y = 0.25 * s
		z = (e[1][2] + e[2][1]) / s

	default:
		s := 2 * math.Sqrt(1+e[2][2]-e[0][0]-e[1][1])
		w = (e[1][0] - e[0][1]) / s
		x = (e[0][2] + e[2][0]) / s
		y = (e[1][2] + e[2][1]) / s
		z = 0.25 * s
	}

	return MakeQuaternion(w, x, y, z).Unit()
}
