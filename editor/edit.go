package editor

import (
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/cosmap"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// apply runs op on the selected joint and returns its refreshed info.
func (s *Session) apply(name string, op func(joint string) error) (JointInfo, error) {
	if err := s.checkOpen(); err != nil {
		return JointInfo{}, err
	}
	if s.selected == "" {
		return JointInfo{}, ErrNoSelection
	}

	if err := op(s.selected); err != nil {
		s.log.Warnf("%s on %s failed: %s", name, s.selected, err)
		return JointInfo{}, err
	}

	s.log.Debugf("%s on %s", name, s.selected)
	return s.Info()
}

func pairOp(f func(string) (cosmap.AxisPair, error)) func(string) error {
	return func(joint string) error {
		_, err := f(joint)
		return err
	}
}

// SetAxes replaces both axes of the selected joint, as typed in: each
// component is rounded to the configured precision, then each axis is scaled
// to unit length. Zero axes are kept as they are.
//
// The axes are stored before the rotation is solved. When an axis rounds to
// zero the write stays in the model even though the returned error (wrapping
// ErrZeroLength from the solve) reports that no rotation could be found.
func (s *Session) SetAxes(swing, twist math3d.Vector3) (JointInfo, error) {
	p := cosmap.AxisPair{Swing: swing, Twist: twist}.Round(s.cfg.GetPrecision())

	return s.apply("set axes", func(joint string) error {
		if !p.IsFinite() {
			return fmt.Errorf("%s: %w", p, cosmap.ErrMalformedAxis)
		}
		if _, err := s.model.SetSwing(joint, p.Swing); err != nil {
			return err
		}
		_, err := s.model.SetTwist(joint, p.Twist)
		return err
	})
}

func (s *Session) OrthogonalTwist() (JointInfo, error) {
	return s.apply("orthogonal twist", pairOp(s.model.OrthogonalizeTwist))
}

func (s *Session) OrthogonalSwing() (JointInfo, error) {
	return s.apply("orthogonal swing", pairOp(s.model.OrthogonalizeSwing))
}

func (s *Session) FlipTwist() (JointInfo, error) {
	return s.apply("flip twist", pairOp(s.model.FlipTwist))
}

func (s *Session) FlipSwing() (JointInfo, error) {
	return s.apply("flip swing", pairOp(s.model.FlipSwing))
}

// FlipZAxis swaps the swing and twist axes of the selected joint.
func (s *Session) FlipZAxis() (JointInfo, error) {
	return s.apply("flip z axis", pairOp(s.model.Swap))
}

// AlignToUpAxis turns the selected joint's twist axis so that it points along
// the configured canonical up axis in the rest pose.
func (s *Session) AlignToUpAxis() (JointInfo, error) {
	up := s.cfg.GetCanonicalUp()
	return s.apply("align to up axis", func(joint string) error {
		_, err := s.model.AlignTwistToUp(s.skel, joint, up)
		return err
	})
}

// Guess fills in guessed axes for every joint which has none, and replaces
// those of the selected joint with its guess.
func (s *Session) Guess() (JointInfo, error) {
	return s.apply("guess", func(joint string) error {
		return s.model.MergeGuess(s.skel, joint)
	})
}

// SetRole maps a standard role onto the selected joint. An empty role removes
// the joint's roles.
func (s *Session) SetRole(role string) (JointInfo, error) {
	return s.apply("set role", func(joint string) error {
		if !cosmap.IsStandardJoint(role) {
			return fmt.Errorf("unknown role %q", role)
		}
		s.model.SetRole(role, joint)
		return nil
	})
}
