package cosmap

import (
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/axes"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/gemlongman/motion-preprocessing-tool/skeleton"
)

// Pair returns the axes of a joint.
func (m *Model) Pair(joint string) (AxisPair, error) {
	p, ok := m.Axes[joint]
	if !ok {
		return AxisPair{}, fmt.Errorf("%q: %w", joint, ErrUnknownJoint)
	}
	return p, nil
}

// SetPair replaces the axes of a joint as given, without normalizing.
func (m *Model) SetPair(joint string, p AxisPair) error {
	if !p.IsFinite() {
		return fmt.Errorf("%s for %q: %w", p, joint, ErrMalformedAxis)
	}
	m.Axes[joint] = p
	return nil
}

// SetSwing replaces the swing axis of a joint, scaled to unit length. A zero
// vector is stored as it is. A joint which has no axes yet starts from the
// canonical ones.
func (m *Model) SetSwing(joint string, swing math3d.Vector3) (AxisPair, error) {
	p := m.pairOrDefault(joint)
	p.Swing = swing.Unit()
	if err := m.SetPair(joint, p); err != nil {
		return AxisPair{}, err
	}
	log.Debugf("%s: swing=%s", joint, p.Swing)
	return p, nil
}

// SetTwist is SetSwing for the twist axis.
func (m *Model) SetTwist(joint string, twist math3d.Vector3) (AxisPair, error) {
	p := m.pairOrDefault(joint)
	p.Twist = twist.Unit()
	if err := m.SetPair(joint, p); err != nil {
		return AxisPair{}, err
	}
	log.Debugf("%s: twist=%s", joint, p.Twist)
	return p, nil
}

func (m *Model) pairOrDefault(joint string) AxisPair {
	if p, ok := m.Axes[joint]; ok {
		return p
	}
	return DefaultAxisPair
}

// update applies f to the axes of an existing joint, and stores the result if
// f succeeds.
func (m *Model) update(joint, op string, f func(AxisPair) (AxisPair, error)) (AxisPair, error) {
	p, err := m.Pair(joint)
	if err != nil {
		return AxisPair{}, err
	}
	p, err = f(p)
	if err != nil {
		return AxisPair{}, fmt.Errorf("%s %q: %w", op, joint, err)
	}
	m.Axes[joint] = p
	log.Debugf("%s %s: %s", op, joint, p)
	return p, nil
}

// OrthogonalizeTwist makes a joint's twist axis orthogonal to its swing axis.
func (m *Model) OrthogonalizeTwist(joint string) (AxisPair, error) {
	return m.update(joint, "orthogonalize twist", func(p AxisPair) (AxisPair, error) {
		t, err := axes.OrthogonalizeTwist(p.Swing, p.Twist)
		p.Twist = t
		return p, err
	})
}

// OrthogonalizeSwing makes a joint's swing axis orthogonal to its twist axis.
func (m *Model) OrthogonalizeSwing(joint string) (AxisPair, error) {
	return m.update(joint, "orthogonalize swing", func(p AxisPair) (AxisPair, error) {
		s, err := axes.OrthogonalizeSwing(p.Twist, p.Swing)
		p.Swing = s
		return p, err
	})
}

func (m *Model) FlipTwist(joint string) (AxisPair, error) {
	return m.update(joint, "flip twist", func(p AxisPair) (AxisPair, error) {
		p.Twist = axes.Flip(p.Twist)
		return p, nil
	})
}

func (m *Model) FlipSwing(joint string) (AxisPair, error) {
	return m.update(joint, "flip swing", func(p AxisPair) (AxisPair, error) {
		p.Swing = axes.Flip(p.Swing)
		return p, nil
	})
}

// Swap exchanges a joint's swing and twist axes, which flips its Z axis.
func (m *Model) Swap(joint string) (AxisPair, error) {
	return m.update(joint, "swap", func(p AxisPair) (AxisPair, error) {
		p.Swing, p.Twist = axes.Swap(p.Swing, p.Twist)
		return p, nil
	})
}

// AlignTwistToUp rewrites a joint's twist axis so that, in the rest pose, it
// points along up in global space. The swing axis is left alone, so it may
// need orthogonalizing afterwards.
func (m *Model) AlignTwistToUp(skel *skeleton.Skeleton, joint string, up math3d.Vector3) (AxisPair, error) {
	j, err := skel.Joint(joint)
	if err != nil {
		return AxisPair{}, err
	}
	rot := j.GlobalRotation()

	return m.update(joint, "align twist to up", func(p AxisPair) (AxisPair, error) {
		q, err := axes.SpineCorrection(rot, p.Twist, up)
		if err != nil {
			return p, err
		}

		// The correction is in global space; bring the corrected direction back
		// into the joint's frame.
		global := q.Rotate(rot.MultiplyVector(p.Twist))
		twist, err := rot.Transpose().MultiplyVector(global).Normalize()
		if err != nil {
			return p, err
		}
		p.Twist = twist
		return p, nil
	})
}
