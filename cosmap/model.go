// Package cosmap holds the per-joint coordinate system map of a skeleton: the
// swing and twist axes of each joint, which joint plays which standard role,
// and opaque per-joint constraint data. Together these make up the skeleton
// model document which retargeting reads.
package cosmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownJoint  = errors.New("joint has no axes")
	ErrMalformedAxis = errors.New("malformed axis")
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "cosmap",
})

const (
	keyCosMap      = "cos_map"
	keyJoints      = "joints"
	keyConstraints = "joint_constraints"
)

// Model is a skeleton model document.
type Model struct {
	// Axes maps a joint name to its coordinate system.
	Axes map[string]AxisPair

	// Joints maps a standard role (see StandardJoints) to a joint name.
	Joints map[string]string

	// Constraints maps a joint name to constraint settings, which are carried
	// along untouched.
	Constraints map[string]json.RawMessage

	// Extra holds any other top level keys of the document, so that saving
	// doesn't drop them.
	Extra map[string]json.RawMessage
}

// New returns an empty model.
func New() *Model {
	return &Model{
		Axes:        map[string]AxisPair{},
		Joints:      map[string]string{},
		Constraints: map[string]json.RawMessage{},
		Extra:       map[string]json.RawMessage{},
	}
}

// Load reads a model from a JSON file.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skeleton model: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Infof("loaded %s: %d axes, %d roles", path, len(m.Axes), len(m.Joints))
	return m, nil
}

// Decode reads a model from r. Every axis pair is validated here, once, so the
// rest of the package can rely on their shape. Missing sections are created
// empty.
func Decode(r io.Reader) (*Model, error) {
	m := New()
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse skeleton model: %w", err)
	}

	*m = *New()
	for k, v := range doc {
		var err error
		switch k {
		case keyCosMap:
			err = decodeSection(v, &m.Axes)
		case keyJoints:
			err = decodeSection(v, &m.Joints)
		case keyConstraints:
			err = decodeSection(v, &m.Constraints)
		default:
			m.Extra[k] = v
		}
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	return nil
}

// decodeSection unmarshals a map section, leaving dst as it is when the
// section is null.
func decodeSection[T any](raw json.RawMessage, dst *map[string]T) error {
	var section map[string]T
	if err := json.Unmarshal(raw, &section); err != nil {
		return err
	}
	if section != nil {
		*dst = section
	}
	return nil
}

func (m *Model) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(m.Extra)+3)
	for k, v := range m.Extra {
		doc[k] = v
	}
	doc[keyCosMap] = nonNil(m.Axes)
	doc[keyJoints] = nonNil(m.Joints)
	doc[keyConstraints] = nonNil(m.Constraints)
	return json.Marshal(doc)
}

func nonNil[T any](mm map[string]T) map[string]T {
	if mm == nil {
		return map[string]T{}
	}
	return mm
}

// Encode writes the model as indented JSON.
func (m *Model) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Save writes the model to a JSON file.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create skeleton model: %w", err)
	}

	if err := m.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write skeleton model: %w", err)
	}

	log.Infof("saved %s: %d axes, %d roles", path, len(m.Axes), len(m.Joints))
	return f.Close()
}

// Clone returns a deep copy.
func (m *Model) Clone() *Model {
	c := New()
	for k, v := range m.Axes {
		c.Axes[k] = v
	}
	for k, v := range m.Joints {
		c.Joints[k] = v
	}
	for k, v := range m.Constraints {
		c.Constraints[k] = append(json.RawMessage(nil), v...)
	}
	for k, v := range m.Extra {
		c.Extra[k] = append(json.RawMessage(nil), v...)
	}
	return c
}

// RoleOf returns the standard role assigned to a joint. If several roles point
// at the same joint, the alphabetically first wins.
func (m *Model) RoleOf(joint string) (string, bool) {
	roles := make([]string, 0, len(m.Joints))
	for role, j := range m.Joints {
		if j == joint {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return "", false
	}
	sort.Strings(roles)
	return roles[0], true
}

// JointFor returns the joint assigned to a role.
func (m *Model) JointFor(role string) (string, bool) {
	j, ok := m.Joints[role]
	if !ok || j == "" {
		return "", false
	}
	return j, true
}

// SetRole assigns a role to a joint. An empty role unassigns every role which
// currently points at the joint.
func (m *Model) SetRole(role, joint string) {
	if role == "" {
		for r, j := range m.Joints {
			if j == joint {
				delete(m.Joints, r)
			}
		}
		log.Debugf("unassigned roles of %s", joint)
		return
	}

	m.Joints[role] = joint
	log.Debugf("assigned %s to %s", role, joint)
}

// Roles returns the assigned roles in alphabetical order.
func (m *Model) Roles() []string {
	roles := make([]string, 0, len(m.Joints))
	for r := range m.Joints {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}
