// Package skeleton holds the joint hierarchy of a character in its rest pose,
// and answers where each joint is and how it's rotated.
package skeleton

import (
	"errors"
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownJoint = errors.New("unknown joint")
	ErrDuplicate    = errors.New("duplicate joint")
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "skeleton",
})

type Skeleton struct {
	Name string
	Root *Joint

	// AligningRoot is the joint used to align the whole skeleton when
	// retargeting. It defaults to the root.
	AligningRoot string

	joints map[string]*Joint
	order  []*Joint
	scale  float64
}

// New returns a skeleton containing only a root joint at the given offset.
func New(rootName string, offset math3d.Vector3) *Skeleton {
	s := &Skeleton{
		AligningRoot: rootName,
		joints:       map[string]*Joint{},
		scale:        1,
	}

	s.Root = &Joint{Name: rootName, Offset: offset, skel: s}
	s.joints[rootName] = s.Root
	s.order = append(s.order, s.Root)

	return s
}

func (s *Skeleton) String() string {
	return fmt.Sprintf("&Skeleton{%s: root=%s joints=%d scale=%.3f}", s.Name, s.Root.Name, len(s.order), s.scale)
}

// Add attaches a new joint to an existing parent.
func (s *Skeleton) Add(name, parent string, offset math3d.Vector3, rest math3d.EulerAngles) (*Joint, error) {
	if _, ok := s.joints[name]; ok {
		return nil, fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	p, err := s.Joint(parent)
	if err != nil {
		return nil, fmt.Errorf("parent of %s: %w", name, err)
	}

	j := &Joint{
		Name:   name,
		Offset: offset,
		Rest:   rest,
		parent: p,
		skel:   s,
	}
	p.Children = append(p.Children, j)
	s.joints[name] = j
	s.order = append(s.order, j)

	return j, nil
}

// Joint looks up a joint by name.
func (s *Skeleton) Joint(name string) (*Joint, error) {
	j, ok := s.joints[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownJoint)
	}
	return j, nil
}

// Joints returns every joint, parents before children, in the order they were
// added.
func (s *Skeleton) Joints() []*Joint {
	out := make([]*Joint, len(s.order))
	copy(out, s.order)
	return out
}

// JointNames returns the names of Joints.
func (s *Skeleton) JointNames() []string {
	names := make([]string, len(s.order))
	for i, j := range s.order {
		names[i] = j.Name
	}
	return names
}

// EditableJoints returns the names of joints which have a bone, i.e. those
// whose axes can meaningfully be edited.
func (s *Skeleton) EditableJoints() []string {
	names := []string{}
	for _, j := range s.order {
		if !j.IsEndSite() {
			names = append(names, j.Name)
		}
	}
	return names
}

func (s *Skeleton) Scale() float64 {
	return s.scale
}

// SetScale multiplies every offset by f when computing positions. Rotations
// are unaffected.
func (s *Skeleton) SetScale(f float64) error {
	if !(f > 0) {
		return fmt.Errorf("invalid scale %v", f)
	}
	s.scale = f
	log.Debugf("%s: scale=%.3f", s.Name, f)
	return nil
}

// SetAligningRoot picks the joint used to align the skeleton.
func (s *Skeleton) SetAligningRoot(name string) error {
	if _, err := s.Joint(name); err != nil {
		return err
	}
	s.AligningRoot = name
	return nil
}

// ReferenceFrame returns the rest rotation of every joint.
func (s *Skeleton) ReferenceFrame() map[string]math3d.EulerAngles {
	frame := make(map[string]math3d.EulerAngles, len(s.order))
	for _, j := range s.order {
		frame[j.Name] = j.Rest
	}
	return frame
}

// SetReferenceFrame replaces the rest rotations of the joints named in frame.
// Joints which aren't mentioned keep theirs. Nothing is changed if any name is
// unknown.
func (s *Skeleton) SetReferenceFrame(frame map[string]math3d.EulerAngles) error {
	for name := range frame {
		if _, err := s.Joint(name); err != nil {
			return err
		}
	}
	for name, ea := range frame {
		s.joints[name].Rest = ea
	}
	log.Debugf("%s: replaced %d rest rotations", s.Name, len(frame))
	return nil
}
