package cosmap

import (
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/axes"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/gemlongman/motion-preprocessing-tool/skeleton"
)

// Guess derives axes for every joint with a bone, from the rest pose alone.
// The twist axis points along the bone towards the first child. The swing
// axis is the global X axis, brought into the joint's frame and made
// orthogonal to the twist; when the bone itself runs along global X, global Z
// is used instead.
func Guess(skel *skeleton.Skeleton) map[string]AxisPair {
	out := map[string]AxisPair{}

	for _, name := range skel.EditableJoints() {
		j, err := skel.Joint(name)
		if err != nil {
			continue
		}

		twist, err := j.Unproject(j.End()).Normalize()
		if err != nil {
			continue
		}

		toLocal := j.GlobalRotation().Transpose()
		var swing math3d.Vector3
		for _, candidate := range []math3d.Vector3{math3d.UnitX, math3d.UnitZ} {
			swing, err = axes.OrthogonalizeSwing(twist, toLocal.MultiplyVector(candidate))
			if err == nil {
				break
			}
		}
		if err != nil {
			log.Warnf("no swing axis for %s, skipping", name)
			continue
		}

		out[name] = AxisPair{Swing: swing, Twist: twist}
	}

	return out
}

// MergeGuess replaces the axes with a guessed set, except that joints which
// already have axes keep them. The selected joint, if not empty, always takes
// the guess.
func (m *Model) MergeGuess(skel *skeleton.Skeleton, selected string) error {
	guess := Guess(skel)

	var fresh AxisPair
	if selected != "" {
		p, ok := guess[selected]
		if !ok {
			return fmt.Errorf("no guess for %q: %w", selected, ErrUnknownJoint)
		}
		fresh = p
	}

	merged := make(map[string]AxisPair, len(guess)+len(m.Axes))
	for k, v := range guess {
		merged[k] = v
	}
	for k, v := range m.Axes {
		merged[k] = v
	}
	if selected != "" {
		merged[selected] = fresh
	}

	m.Axes = merged
	log.Debugf("guessed %d axes, selected=%q", len(guess), selected)
	return nil
}
