package axes

import (
	"fmt"
	"math"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// reversedEpsilon is how close to -1 the dot product of the rotated Y and twist
// must be for Y to count as pointing exactly away from twist.
const reversedEpsilon = 1e-9

// ToQuaternion returns the rotation which carries canonical Y onto twist and
// canonical X onto swing. Both are given in global space.
//
// The rotation is built in two stages: Y is aligned to twist, then the rotated
// X is aligned to swing. That second stage only leaves twist in place when
// swing is already orthogonal to it, so callers should orthogonalize the pair
// first. If the second stage leaves Y pointing exactly away from twist, a half
// turn about swing brings it back.
func ToQuaternion(twist, swing math3d.Vector3) (math3d.Quaternion, error) {
	twist, swing, err := checkPair(twist, swing)
	if err != nil {
		return math3d.IdentityQuaternion, err
	}

	qy := vectorToVector(math3d.UnitY, twist)
	xp := qy.Rotate(math3d.UnitX).Unit()
	qx := vectorToVector(xp, swing)
	q := qx.Multiply(qy).Unit()

	yp := q.Rotate(math3d.UnitY)
	if clamp(yp.Dot(twist)) <= -1+reversedEpsilon {
		q180 := math3d.QuaternionAboutAxis(math.Pi, swing)
		q = q180.Multiply(q).Unit()
	}

	if !q.IsFinite() {
		return math3d.IdentityQuaternion, fmt.Errorf("axes %s, %s: %w", twist, swing, ErrInvalidInput)
	}
	return q, nil
}

// IterativeOptions bound the fixed-point solver.
type IterativeOptions struct {
	// MaxIterations is the most alignment rounds to run. Must be at least one.
	MaxIterations int

	// Tolerance is the largest angle, in radians, that either axis may be off
	// by for the solver to stop early. Must be positive.
	Tolerance float64
}

var DefaultIterativeOptions = IterativeOptions{
	MaxIterations: 10,
	Tolerance:     0.1,
}

func (o IterativeOptions) validate() error {
	if o.MaxIterations < 1 {
		return fmt.Errorf("max iterations %d: %w", o.MaxIterations, ErrInvalidInput)
	}
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("tolerance %v: %w", o.Tolerance, ErrInvalidInput)
	}
	return nil
}

// IterativeResult is the best rotation the iterative solver found, and how far
// it is from the target.
type IterativeResult struct {
	Rotation math3d.Quaternion

	// Iterations is the number of rounds which were run.
	Iterations int

	// Angles, in radians, between the rotated canonical axes and their targets.
	TwistResidual float64
	SwingResidual float64

	// Converged is true when both residuals are within the tolerance.
	Converged bool
}

// ToQuaternionIterative solves the same problem as ToQuaternion by alternately
// aligning the rotated Y to twist and the rotated X to swing, until both are
// within the tolerance or the iteration cap is reached. It always returns
// after at most opts.MaxIterations rounds; running out of rounds isn't an
// error, so callers which need an exact answer must check Converged.
func ToQuaternionIterative(twist, swing math3d.Vector3, opts IterativeOptions) (IterativeResult, error) {
	if err := opts.validate(); err != nil {
		return IterativeResult{Rotation: math3d.IdentityQuaternion}, err
	}
	twist, swing, err := checkPair(twist, swing)
	if err != nil {
		return IterativeResult{Rotation: math3d.IdentityQuaternion}, err
	}

	res := IterativeResult{Rotation: math3d.IdentityQuaternion}
	xp, yp := math3d.UnitX, math3d.UnitY

	for {
		qy := vectorToVector(yp, twist)
		res.Rotation = qy.Multiply(res.Rotation).Unit()
		xp, yp = qy.Rotate(xp).Unit(), qy.Rotate(yp).Unit()

		qx := vectorToVector(xp, swing)
		res.Rotation = qx.Multiply(res.Rotation).Unit()
		xp, yp = qx.Rotate(xp).Unit(), qx.Rotate(yp).Unit()

		res.TwistResidual = angleBetween(yp, twist)
		res.SwingResidual = angleBetween(xp, swing)
		res.Iterations++

		notAligned := res.TwistResidual > opts.Tolerance || res.SwingResidual > opts.Tolerance
		if !(notAligned && res.Iterations < opts.MaxIterations) {
			break
		}
	}

	res.Converged = res.TwistResidual <= opts.Tolerance && res.SwingResidual <= opts.Tolerance
	return res, nil
}

func checkPair(twist, swing math3d.Vector3) (math3d.Vector3, math3d.Vector3, error) {
	if err := checkFinite("axes", twist, swing); err != nil {
		return twist, swing, err
	}
	t, err := normalize("twist", twist)
	if err != nil {
		return twist, swing, err
	}
	s, err := normalize("swing", swing)
	if err != nil {
		return twist, swing, err
	}
	return t, s, nil
}
