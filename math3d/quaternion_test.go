package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVectorInDelta(t *testing.T, exp, act Vector3, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, exp.X, act.X, delta, msgAndArgs...)
	assert.InDelta(t, exp.Y, act.Y, delta, msgAndArgs...)
	assert.InDelta(t, exp.Z, act.Z, delta, msgAndArgs...)
}

func TestQuaternionRotate(t *testing.T) {
	type eg struct {
		q   Quaternion
		in  Vector3
		out Vector3
	}

	examples := []eg{
		{IdentityQuaternion, Vector3{1, 2, 3}, Vector3{1, 2, 3}},
		{QuaternionAboutAxis(math.Pi/2, UnitZ), UnitX, UnitY},
		{QuaternionAboutAxis(math.Pi/2, UnitX), UnitY, UnitZ},
		{QuaternionAboutAxis(math.Pi/2, UnitY), UnitZ, UnitX},
		{QuaternionAboutAxis(math.Pi, UnitY), UnitX, Vector3{-1, 0, 0}},

		// Not normalized, but still a rotation.
		{MakeQuaternion(2, 0, 0, 0), Vector3{4, 5, 6}, Vector3{4, 5, 6}},

		// Zero leaves the vector alone.
		{Quaternion{}, Vector3{4, 5, 6}, Vector3{4, 5, 6}},
	}

	for i, x := range examples {
		assertVectorInDelta(t, x.out, x.q.Rotate(x.in), 1e-9, "example %d", i+1)
	}
}

func TestQuaternionMultiplyOrder(t *testing.T) {
	qz := QuaternionAboutAxis(math.Pi/2, UnitZ)
	qx := QuaternionAboutAxis(math.Pi/2, UnitX)

	// qx·qz applies qz first: X -> Y -> Z.
	assertVectorInDelta(t, UnitZ, qx.Multiply(qz).Rotate(UnitX), 1e-9)

	// qz·qx applies qx first: X stays X, then goes to Y.
	assertVectorInDelta(t, UnitY, qz.Multiply(qx).Rotate(UnitX), 1e-9)
}

func TestQuaternionMatrixAgreesWithRotate(t *testing.T) {
	q := QuaternionAboutAxis(0.7, Vector3{1, 2, -0.5})
	m := q.Matrix33()
	for _, v := range []Vector3{UnitX, UnitY, UnitZ, {0.3, -2, 1}} {
		assertVectorInDelta(t, q.Rotate(v), m.MultiplyVector(v), 1e-12)
	}
	assert.True(t, m.IsRotation(1e-9))
}

func TestQuaternionMatrixRoundTrip(t *testing.T) {
	examples := []Quaternion{
		IdentityQuaternion,
		QuaternionAboutAxis(math.Pi, UnitX),
		QuaternionAboutAxis(math.Pi, UnitY),
		QuaternionAboutAxis(math.Pi, UnitZ),
		QuaternionAboutAxis(2.5, Vector3{1, 1, 0}),
		QuaternionAboutAxis(-0.3, Vector3{0.2, -1, 3}),
	}

	for i, q := range examples {
		act := q.Matrix33().Quaternion()
		assert.True(t, q.ApproxEqual(act, 1e-9), "example %d: got %s, expected %s", i+1, act, q)
	}
}

func TestQuaternionUnit(t *testing.T) {
	q := MakeQuaternion(0, 3, 0, 4).Unit()
	assert.InDelta(t, 1, q.Norm(), 1e-12)
	assert.InDelta(t, 0.6, q.X(), 1e-12)
	assert.InDelta(t, 0.8, q.Z(), 1e-12)

	assert.Equal(t, Quaternion{}, Quaternion{}.Unit())
}

func TestQuaternionAngle(t *testing.T) {
	assert.InDelta(t, 0, IdentityQuaternion.Angle(), 1e-12)
	assert.InDelta(t, math.Pi, QuaternionAboutAxis(math.Pi, UnitZ).Angle(), 1e-9)
	assert.InDelta(t, 0.5, QuaternionAboutAxis(0.5, UnitX).Angle(), 1e-9)
}

func TestQuaternionApproxEqualIgnoresSign(t *testing.T) {
	q := QuaternionAboutAxis(1, UnitY)
	neg := MakeQuaternion(-q.W(), -q.X(), -q.Y(), -q.Z())
	assert.True(t, q.ApproxEqual(neg, 1e-12))
	assert.False(t, q.ApproxEqual(IdentityQuaternion, 1e-3))
}

func TestQuaternionIsFinite(t *testing.T) {
	assert.True(t, IdentityQuaternion.IsFinite())
	assert.False(t, MakeQuaternion(math.NaN(), 0, 0, 0).IsFinite())
	assert.False(t, MakeQuaternion(1, math.Inf(1), 0, 0).IsFinite())
}
