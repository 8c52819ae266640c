package axes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrthogonalizeTwistNearOrthogonal(t *testing.T) {
	swing := math3d.UnitX
	twist := math3d.Vector3{X: 0.1, Y: 0.995, Z: 0}

	act, err := OrthogonalizeTwist(swing, twist)
	require.NoError(t, err)
	assert.InDelta(t, 0, act.Dot(swing), 1e-12)
	assert.InDelta(t, 1, act.Magnitude(), 1e-12)
	assertVectorInDelta(t, math3d.UnitY, act, 1e-12)

	angle := math.Acos(act.Dot(twist.Unit()))
	assert.Less(t, angle, math3d.Rad(10))
}

func TestOrthogonalizeIsOrthogonal(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 500; i++ {
		fixed := randomUnit(r).MultiplyByScalar(0.5 + r.Float64()*3)
		v := randomUnit(r).MultiplyByScalar(0.5 + r.Float64()*3)
		if math.Abs(fixed.Unit().Dot(v.Unit())) > 0.9999 {
			continue
		}

		twist, err := OrthogonalizeTwist(fixed, v)
		require.NoError(t, err)
		assert.InDelta(t, 0, twist.Dot(fixed), 1e-9, "example %d", i)
		assert.InDelta(t, 1, twist.Magnitude(), 1e-9, "example %d", i)

		swing, err := OrthogonalizeSwing(fixed, v)
		require.NoError(t, err)
		assert.Equal(t, twist, swing, "roles are symmetric")
	}
}

func TestOrthogonalizeSwing(t *testing.T) {
	twist := math3d.UnitY
	swing := math3d.Vector3{X: 1, Y: 1, Z: 0}

	act, err := OrthogonalizeSwing(twist, swing)
	require.NoError(t, err)
	assertVectorInDelta(t, math3d.UnitX, act, 1e-12)
}

func TestOrthogonalizeParallelFails(t *testing.T) {
	_, err := OrthogonalizeTwist(math3d.UnitX, math3d.Vector3{X: -3})
	assert.ErrorIs(t, err, ErrZeroLength)

	_, err = OrthogonalizeSwing(math3d.UnitY, math3d.UnitY)
	assert.ErrorIs(t, err, ErrZeroLength)

	_, err = OrthogonalizeTwist(math3d.ZeroVector3, math3d.UnitY)
	assert.ErrorIs(t, err, ErrZeroLength)

	_, err = OrthogonalizeTwist(math3d.UnitX, math3d.ZeroVector3)
	assert.ErrorIs(t, err, ErrZeroLength)

	_, err = OrthogonalizeTwist(math3d.UnitX, math3d.Vector3{Y: math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFlip(t *testing.T) {
	examples := []math3d.Vector3{
		math3d.ZeroVector3,
		math3d.UnitX,
		{X: 1, Y: -2, Z: 3.5},
		{X: -0.25, Y: 0, Z: 1e-9},
	}

	for _, v := range examples {
		assert.Equal(t, v, Flip(Flip(v)))
		assert.Equal(t, v.Magnitude(), Flip(v).Magnitude())
		assert.Equal(t, v.Negate(), Flip(v))
	}
}

func TestSwap(t *testing.T) {
	swing, twist := math3d.UnitX, math3d.UnitY

	s, tw := Swap(swing, twist)
	assert.Equal(t, math3d.UnitY, s)
	assert.Equal(t, math3d.UnitX, tw)

	// The implied Z axis flips.
	assert.Equal(t, swing.Cross(twist).Negate(), s.Cross(tw))

	s, tw = Swap(s, tw)
	assert.Equal(t, swing, s)
	assert.Equal(t, twist, tw)
}
