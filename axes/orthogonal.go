package axes

import (
	"fmt"
	"math"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// OrthogonalizeTwist removes the component of twist which lies along swing,
// and returns what's left as a unit vector. It fails with ErrZeroLength when
// twist is parallel to swing, since nothing is left.
func OrthogonalizeTwist(swing, twist math3d.Vector3) (math3d.Vector3, error) {
	return orthogonalize(swing, twist)
}

// OrthogonalizeSwing is OrthogonalizeTwist with the roles reversed: swing is
// made orthogonal to twist.
func OrthogonalizeSwing(twist, swing math3d.Vector3) (math3d.Vector3, error) {
	return orthogonalize(twist, swing)
}

func orthogonalize(fixed, v math3d.Vector3) (math3d.Vector3, error) {
	if err := checkFinite("orthogonalize", fixed, v); err != nil {
		return v, err
	}
	f, err := normalize("reference axis", fixed)
	if err != nil {
		return v, err
	}

	rest := v.Subtract(f.MultiplyByScalar(v.Dot(f)))
	if rest.Magnitude() <= parallelEpsilon*math.Max(1, v.Magnitude()) {
		return v, fmt.Errorf("%s is parallel to %s: %w", v, fixed, ErrZeroLength)
	}

	return rest.Unit(), nil
}

// Flip returns the axis pointing the other way. Negation preserves length, so
// a unit axis stays unit.
func Flip(axis math3d.Vector3) math3d.Vector3 {
	return axis.Negate()
}

// Swap exchanges the swing and twist axes. This is what flipping a joint's Z
// axis amounts to: the cross product of the pair changes sign.
func Swap(swing, twist math3d.Vector3) (newSwing, newTwist math3d.Vector3) {
	return twist, swing
}
