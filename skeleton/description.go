package skeleton

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// Description is the JSON form of a skeleton: a flat list of joints, each
// naming its parent, with parents listed before their children. Rotations are
// heading, pitch and bank in degrees.
type Description struct {
	Name         string             `json:"name"`
	AligningRoot string             `json:"aligning_root,omitempty"`
	Scale        float64            `json:"scale,omitempty"`
	Joints       []JointDescription `json:"joints"`
}

type JointDescription struct {
	Name     string     `json:"name"`
	Parent   string     `json:"parent,omitempty"`
	Offset   [3]float64 `json:"offset"`
	Rotation [3]float64 `json:"rotation"`
}

// Load reads a skeleton description from a JSON file.
func Load(path string) (*Skeleton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skeleton: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a skeleton description from r.
func Decode(r io.Reader) (*Skeleton, error) {
	var d Description
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse skeleton: %w", err)
	}
	return d.Build()
}

// Build creates the skeleton. The first joint must be the root, and be the
// only one without a parent.
func (d Description) Build() (*Skeleton, error) {
	if len(d.Joints) == 0 {
		return nil, fmt.Errorf("skeleton %q has no joints", d.Name)
	}

	root := d.Joints[0]
	if root.Parent != "" {
		return nil, fmt.Errorf("first joint %q must be the root, but has parent %q", root.Name, root.Parent)
	}

	s := New(root.Name, vec(root.Offset))
	s.Name = d.Name
	s.Root.Rest = rot(root.Rotation)

	for _, jd := range d.Joints[1:] {
		if jd.Parent == "" {
			return nil, fmt.Errorf("joint %q has no parent; only the first joint can be the root", jd.Name)
		}
		if _, err := s.Add(jd.Name, jd.Parent, vec(jd.Offset), rot(jd.Rotation)); err != nil {
			return nil, err
		}
	}

	if d.AligningRoot != "" {
		if err := s.SetAligningRoot(d.AligningRoot); err != nil {
			return nil, fmt.Errorf("aligning root: %w", err)
		}
	}
	if d.Scale != 0 {
		if err := s.SetScale(d.Scale); err != nil {
			return nil, err
		}
	}

	log.Debugf("built skeleton %q with %d joints", s.Name, len(s.order))
	return s, nil
}

// Describe returns the description which would build this skeleton.
func (s *Skeleton) Describe() Description {
	d := Description{
		Name:         s.Name,
		AligningRoot: s.AligningRoot,
		Joints:       make([]JointDescription, 0, len(s.order)),
	}
	if s.scale != 1 {
		d.Scale = s.scale
	}

	for _, j := range s.order {
		jd := JointDescription{
			Name:     j.Name,
			Offset:   [3]float64{j.Offset.X, j.Offset.Y, j.Offset.Z},
			Rotation: j.Rest.Degrees(),
		}
		if j.parent != nil {
			jd.Parent = j.parent.Name
		}
		d.Joints = append(d.Joints, jd)
	}

	return d
}

func vec(a [3]float64) math3d.Vector3 {
	return math3d.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

func rot(a [3]float64) math3d.EulerAngles {
	return math3d.MakeEulerAnglesDegrees(a[0], a[1], a[2])
}
