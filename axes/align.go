package axes

import (
	"fmt"
	"math"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// vectorToVector returns the shortest-arc rotation which carries a onto the
// direction of b. Both should be unit length; the products below overflow for
// very long vectors.
//
// When a and b point in exactly opposite directions there's no unique shortest
// arc, and the construction collapses to zero. In that case a half turn is
// returned about an axis picked from the first nonzero component of a: Y when
// a leads with x or z, X when it leads with y. That axis is only perpendicular
// to a when a lies along a canonical axis. For any other antiparallel pair the
// result is a valid unit quaternion, but doesn't carry a onto b.
func vectorToVector(a, b math3d.Vector3) math3d.Quaternion {
	v := a.Cross(b)
	w := math.Sqrt(a.Dot(a)*b.Dot(b)) + a.Dot(b)
	q := math3d.MakeQuaternion(w, v.X, v.Y, v.Z)

	if q.Dot(q) != 0 {
		return q.Unit()
	}

	var e [3]float64
	e[(a.FirstNonZero()+1)%2] = 1
	return math3d.MakeQuaternion(0, e[0], e[1], e[2])
}

// Align returns the unit quaternion which rotates a to be parallel to b.
//
// Opposite vectors yield a half turn which is exact for a along a canonical
// axis and only approximate otherwise; see vectorToVector.
func Align(a, b math3d.Vector3) (math3d.Quaternion, error) {
	if err := checkFinite("align", a, b); err != nil {
		return math3d.IdentityQuaternion, err
	}
	ua, err := a.Normalize()
	if err != nil {
		return math3d.IdentityQuaternion, fmt.Errorf("align %s to %s: %w", a, b, err)
	}
	ub, err := b.Normalize()
	if err != nil {
		return math3d.IdentityQuaternion, fmt.Errorf("align %s to %s: %w", a, b, err)
	}

	q := vectorToVector(ua, ub)
	if !q.IsFinite() {
		return math3d.IdentityQuaternion, fmt.Errorf("align %s to %s: %w", a, b, ErrInvalidInput)
	}
	return q, nil
}
