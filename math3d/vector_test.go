package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitude(t *testing.T) {
	type eg struct {
		input Vector3
		exp   float64
	}

	examples := []eg{
		{Vector3{X: 0, Y: 0, Z: 0}, 0},
		{Vector3{X: 1, Y: 1, Z: 1}, 1.732050808},
		{Vector3{X: 1, Y: 2, Z: 3}, 3.741657387},
		{Vector3{X: 4, Y: 5, Z: 6}, 8.774964387},
	}

	for _, x := range examples {
		assert.InDelta(t, x.exp, x.input.Magnitude(), 0.01)
	}
}

func TestMagnitudeLargeComponents(t *testing.T) {
	v := Vector3{X: 3e200, Y: 4e200, Z: 0}
	assert.InEpsilon(t, 5e200, v.Magnitude(), 1e-12)
	assert.InEpsilon(t, 5e-200, Vector3{X: 0, Y: 3e-200, Z: 4e-200}.Magnitude(), 1e-12)
	assert.True(t, math.IsInf(Vector3{X: math.Inf(-1)}.Magnitude(), 1))
}

func TestDistance(t *testing.T) {
	type eg struct {
		recv Vector3
		arg  Vector3
		out  float64
	}

	examples := []eg{
		{Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 1, Y: 1, Z: 1}, 0},
		{Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 2, Y: 2, Z: 2}, 1.732050808},
		{Vector3{X: 0, Y: 50, Z: 0}, Vector3{X: 0, Y: 20, Z: 40}, 50},
	}

	for _, x := range examples {
		assert.InDelta(t, x.out, x.recv.Distance(x.arg), 0.01)
	}
}

func TestUnit(t *testing.T) {
	type eg struct {
		in  Vector3
		out Vector3
	}

	examples := []eg{
		{Vector3{X: 0, Y: 0, Z: 0}, ZeroVector3},
		{Vector3{X: 1, Y: 1, Z: 1}, Vector3{X: 0.5773502691896258, Y: 0.5773502691896258, Z: 0.5773502691896258}},
		{Vector3{X: 2, Y: 2, Z: 2}, Vector3{X: 0.5773502691896258, Y: 0.5773502691896258, Z: 0.5773502691896258}},
	}

	for _, x := range examples {
		act := x.in.Unit()
		assert.InDelta(t, x.out.X, act.X, 1e-12)
		assert.InDelta(t, x.out.Y, act.Y, 1e-12)
		assert.InDelta(t, x.out.Z, act.Z, 1e-12)
	}
}

func TestNormalize(t *testing.T) {
	_, err := ZeroVector3.Normalize()
	assert.ErrorIs(t, err, ErrZeroLength)

	v, err := Vector3{0, 0, -4}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Vector3{0, 0, -1}, v)

	_, err = Vector3{0, math.NaN(), 1}.Normalize()
	assert.ErrorIs(t, err, ErrNotFinite)

	_, err = Vector3{math.Inf(1), 0, 0}.Normalize()
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestNormalizeLargeComponents(t *testing.T) {
	v, err := Vector3{1e200, 0, 0}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, UnitX, v)

	v, err = Vector3{0, 0, 1e200}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, UnitZ, v)

	v, err = Vector3{1e300, 1e300, 1e300}.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 0.5773502691896258, v.X, 1e-12)
	assert.InDelta(t, 1, v.Magnitude(), 1e-12)

	v, err = Vector3{5e-320, 0, 0}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, UnitX, v)
}

func TestSubtract(t *testing.T) {
	v1 := Vector3{X: 1, Y: 2, Z: 3}
	v2 := Vector3{X: 4, Y: 5, Z: 6}

	vAct := v2.Subtract(v1)
	vExp := Vector3{X: 3, Y: 3, Z: 3}
	assert.Equal(t, vExp, vAct)
}

func TestMultiplyByScalar(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}

	vAct := v.MultiplyByScalar(0.5)
	vExp := Vector3{X: 0.5, Y: 1, Z: 1.5}
	assert.Equal(t, vExp, vAct)

	vAct = v.MultiplyByScalar(2)
	vExp = Vector3{X: 2, Y: 4, Z: 6}
	assert.Equal(t, vExp, vAct)
}

func TestCross(t *testing.T) {
	assert.Equal(t, UnitZ, UnitX.Cross(UnitY))
	assert.Equal(t, UnitX, UnitY.Cross(UnitZ))
	assert.Equal(t, UnitY, UnitZ.Cross(UnitX))
	assert.Equal(t, ZeroVector3, UnitX.Cross(UnitX.MultiplyByScalar(3)))
}

func TestFirstNonZero(t *testing.T) {
	assert.Equal(t, -1, ZeroVector3.FirstNonZero())
	assert.Equal(t, 0, Vector3{-1, 0, 0}.FirstNonZero())
	assert.Equal(t, 1, Vector3{0, 2, 3}.FirstNonZero())
	assert.Equal(t, 2, UnitZ.FirstNonZero())
}

func TestIsFinite(t *testing.T) {
	assert.True(t, Vector3{1, 2, 3}.IsFinite())
	assert.False(t, Vector3{math.NaN(), 0, 0}.IsFinite())
	assert.False(t, Vector3{0, math.Inf(-1), 0}.IsFinite())
}

func TestMakeVector3FromSlice(t *testing.T) {
	v, err := MakeVector3FromSlice([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Vector3{1, 2, 3}, v)

	_, err = MakeVector3FromSlice([]float64{1, 2})
	assert.Error(t, err)
}
