package math3d

import (
	"errors"
	"fmt"
	"math"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	ZeroVector3 = Vector3{}

	// The canonical basis. A joint's swing axis is mapped onto UnitX and its
	// twist axis onto UnitY.
	UnitX = Vector3{1, 0, 0}
	UnitY = Vector3{0, 1, 0}
	UnitZ = Vector3{0, 0, 1}
)

var (
	// ErrZeroLength is returned when a vector with no direction is normalized.
	ErrZeroLength = errors.New("zero-length vector")

	// ErrNotFinite is returned when a vector with a NaN or Inf component is
	// normalized.
	ErrNotFinite = errors.New("non-finite vector")
)

// MakeVector3FromSlice builds a vector from a three element slice, as found in
// JSON documents.
func MakeVector3FromSlice(s []float64) (Vector3, error) {
	if len(s) != 3 {
		return ZeroVector3, fmt.Errorf("expected 3 components, got %d", len(s))
	}
	return Vector3{s[0], s[1], s[2]}, nil
}

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.2f y=%0.2f z=%0.2f}", v.X, v.Y, v.Z)
}

// Elements returns the components as a slice, in x,y,z order.
func (v Vector3) Elements() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Zero returns true if the vector is at 0,0,0.
func (v Vector3) Zero() bool {
	return (v.X == 0) && (v.Y == 0) && (v.Z == 0)
}

// IsFinite returns false if any component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	for _, c := range v.Elements() {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// FirstNonZero returns the index (0=x, 1=y, 2=z) of the first component which
// isn't zero, or -1 for the zero vector.
func (v Vector3) FirstNonZero() int {
	for i, c := range v.Elements() {
		if c != 0 {
			return i
		}
	}
	return -1
}

// Add adds two vectors, and returns the result.
func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3{
		(v.X + vv.X),
		(v.Y + vv.Y),
		(v.Z + vv.Z),
	}
}

// Subtract returns a new vector of vv subtracted from v.
func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3{
		(v.X - vv.X),
		(v.Y - vv.Y),
		(v.Z - vv.Z),
	}
}

// MultiplyByScalar returns a new vector with each component multiplied by s.
func (v Vector3) MultiplyByScalar(s float64) Vector3 {
	return Vector3{
		(v.X * s),
		(v.Y * s),
		(v.Z * s),
	}
}

// Negate returns the vector pointing the other way.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

func (v Vector3) Dot(vv Vector3) float64 {
	return (v.X * vv.X) + (v.Y * vv.Y) + (v.Z * vv.Z)
}

func (v Vector3) Cross(vv Vector3) Vector3 {
	return Vector3{
		(v.Y * vv.Z) - (v.Z * vv.Y),
		(v.Z * vv.X) - (v.X * vv.Z),
		(v.X * vv.Y) - (v.Y * vv.X),
	}
}

// maxAbs returns the largest absolute component. NaN and Inf pass through.
func (v Vector3) maxAbs() float64 {
	return math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
}

// scaled divides every component by s, which leaves the largest at +/-1.
func (v Vector3) scaled(s float64) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// Magnitude returns the length of the vector. Components are scaled down by
// the largest of them first, so that squaring doesn't overflow.
func (v Vector3) Magnitude() float64 {
	s := v.maxAbs()
	if s == 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		return s
	}
	u := v.scaled(s)
	return s * math.Sqrt(u.Dot(u))
}

// Unit returns the vector scaled to length one. The zero vector is returned
// unchanged.
func (v Vector3) Unit() Vector3 {
	s := v.maxAbs()
	if s == 0 {
		return ZeroVector3
	}
	u := v.scaled(s)
	return u.MultiplyByScalar(1 / math.Sqrt(u.Dot(u)))
}

// Normalize is like Unit, but fails with ErrZeroLength instead of quietly
// returning the zero vector, and with ErrNotFinite when a component is NaN or
// Inf.
func (v Vector3) Normalize() (Vector3, error) {
	if v.Zero() {
		return ZeroVector3, ErrZeroLength
	}
	if !v.IsFinite() {
		return ZeroVector3, ErrNotFinite
	}
	return v.Unit(), nil
}

// Distance returns the distance between this vector and another.
func (v Vector3) Distance(vv Vector3) float64 {
	return v.Subtract(vv).Magnitude()
}

// MultiplyByMatrix44 returns a new Vector3, by multiplying this vector my a 4x4
// matrix.
func (v Vector3) MultiplyByMatrix44(m Matrix44) Vector3 {
	return Vector3{
		(v.X * m.m11) + (v.Y * m.m21) + (v.Z * m.m31) + m.m41,
		(v.X * m.m12) + (v.Y * m.m22) + (v.Z * m.m32) + m.m42,
		(v.X * m.m13) + (v.Y * m.m23) + (v.Z * m.m33) + m.m43,
	}
}
