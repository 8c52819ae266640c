package axes

import (
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// rotationTolerance is how far a joint's global rotation may drift from
// orthonormal before it's rejected.
const rotationTolerance = 1e-6

// SpineCorrection returns the rotation which carries a joint's up direction,
// as it actually points in global space, onto canonicalUp. globalRotation is
// the joint's rest-pose global rotation and localUp is the up direction in the
// joint's own frame.
func SpineCorrection(globalRotation math3d.Matrix33, localUp, canonicalUp math3d.Vector3) (math3d.Quaternion, error) {
	if !globalRotation.IsFinite() {
		return math3d.IdentityQuaternion, fmt.Errorf("global rotation %s: %w", globalRotation, ErrInvalidInput)
	}
	if !globalRotation.IsRotation(rotationTolerance) {
		return math3d.IdentityQuaternion, fmt.Errorf("global rotation %s is not a rotation: %w", globalRotation, ErrInvalidInput)
	}
	if err := checkFinite("spine correction", localUp, canonicalUp); err != nil {
		return math3d.IdentityQuaternion, err
	}

	global, err := normalize("global up", globalRotation.MultiplyVector(localUp))
	if err != nil {
		return math3d.IdentityQuaternion, err
	}
	up, err := normalize("canonical up", canonicalUp)
	if err != nil {
		return math3d.IdentityQuaternion, err
	}

	return vectorToVector(global, up), nil
}
