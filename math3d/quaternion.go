package math3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion is a rotation stored as w + xi + yj + zk. Real is w, and Imag,
// Jmag, Kmag are x, y, z.
type Quaternion quat.Number

var (
	IdentityQuaternion = Quaternion{Real: 1}
)

// quaternionEpsilon is the norm below which a quaternion is treated as having
// no rotation at all.
const quaternionEpsilon = 1e-12

// MakeQuaternion returns the quaternion (w, x, y, z).
func MakeQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// QuaternionAboutAxis returns the rotation of angle radians around axis. The
// axis needn't be unit length. A zero axis yields the identity.
func QuaternionAboutAxis(angle float64, axis Vector3) Quaternion {
	u := axis.Unit()
	if u.Zero() {
		return IdentityQuaternion
	}
	s := math.Sin(angle / 2)
	return MakeQuaternion(math.Cos(angle/2), u.X*s, u.Y*s, u.Z*s)
}

func (q Quaternion) W() float64 { return q.Real }
func (q Quaternion) X() float64 { return q.Imag }
func (q Quaternion) Y() float64 { return q.Jmag }
func (q Quaternion) Z() float64 { return q.Kmag }

// Vector returns the imaginary part.
func (q Quaternion) Vector() Vector3 {
	return Vector3{q.Imag, q.Jmag, q.Kmag}
}

// Elements returns the components in w, x, y, z order.
func (q Quaternion) Elements() [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}

func (q Quaternion) String() string {
	return fmt.Sprintf("&Quat{w=%+.4f x=%+.4f y=%+.4f z=%+.4f}", q.Real, q.Imag, q.Jmag, q.Kmag)
}

func (q Quaternion) IsFinite() bool {
	return !quat.IsNaN(quat.Number(q)) && !quat.IsInf(quat.Number(q))
}

// Multiply returns the Hamilton product q·r, which applies r first and then q.
func (q Quaternion) Multiply(r Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(q), quat.Number(r)))
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion(quat.Conj(quat.Number(q)))
}

// Dot returns the four dimensional dot product of two quaternions.
func (q Quaternion) Dot(r Quaternion) float64 {
	return q.Real*r.Real + q.Imag*r.Imag + q.Jmag*r.Jmag + q.Kmag*r.Kmag
}

func (q Quaternion) Norm() float64 {
	return quat.Abs(quat.Number(q))
}

// Unit returns the quaternion scaled to unit norm. A zero quaternion is returned
// unchanged, because it signals a rotation which couldn't be constructed.
func (q Quaternion) Unit() Quaternion {
	n := q.Norm()
	if n == 0 {
		return q
	}
	return Quaternion(quat.Scale(1/n, quat.Number(q)))
}

// Rotate applies the rotation to v. The quaternion is normalized first; one too
// close to zero leaves v alone.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	if q.Norm() < quaternionEpsilon {
		return v
	}
	n := quat.Number(q.Unit())
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(n, p), quat.Conj(n))
	return Vector3{r.Imag, r.Jmag, r.Kmag}
}

// Matrix33 returns the column-vector rotation matrix of the normalized
// quaternion.
func (q Quaternion) Matrix33() Matrix33 {
	if q.Norm() < quaternionEpsilon {
		return IdentityMatrix33
	}
	u := q.Unit()
	w, x, y, z := u.Real, u.Imag, u.Jmag, u.Kmag
	return MakeMatrix33(
		1-2*(y*y+z*z), 2*(x*y-z*w), 2*(x*z+y*w),
		2*(x*y+z*w), 1-2*(x*x+z*z), 2*(y*z-x*w),
		2*(x*z-y*w), 2*(y*z+x*w), 1-2*(x*x+y*y),
	)
}

// Angle returns the rotation angle in radians, in [0, 2π].
func (q Quaternion) Angle() float64 {
	w := q.Unit().Real
	w = math.Max(-1, math.Min(1, w))
	return 2 * math.Acos(w)
}

// ApproxEqual returns true if both quaternions describe the same rotation,
// within tol per component. q and -q are considered equal.
func (q Quaternion) ApproxEqual(r Quaternion, tol float64) bool {
	a, b := q.Elements(), r.Elements()
	same, opposite := true, true
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			same = false
		}
		if math.Abs(a[i]+b[i]) > tol {
			opposite = false
		}
	}
	return same || opposite
}
