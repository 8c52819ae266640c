// Package editor is the editing session behind the skeleton editor: a joint is
// selected, its axes are edited through the cosmap operations, and the result
// is either accepted into a document or thrown away.
package editor

import (
	"errors"
	"fmt"
	"math"

	"github.com/gemlongman/motion-preprocessing-tool/axes"
	"github.com/gemlongman/motion-preprocessing-tool/config"
	"github.com/gemlongman/motion-preprocessing-tool/cosmap"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/gemlongman/motion-preprocessing-tool/skeleton"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoSelection  = errors.New("no joint selected")
	ErrNameRequired = errors.New("a name is required")
	ErrNotEditable  = errors.New("joint has no bone")
	ErrClosed       = errors.New("session is closed")
)

type State string

const (
	sOpen     State = "open"
	sAccepted State = "accepted"
	sRejected State = "rejected"
)

// Session edits the axes of one skeleton. It isn't safe for concurrent use.
type Session struct {
	ID uuid.UUID

	skel  *skeleton.Skeleton
	model *cosmap.Model
	cfg   *config.SolverConfig

	selected string
	state    State
	log      *logrus.Entry

	// The skeleton is edited in place, so its original settings are kept to be
	// restored by Reject.
	origScale        float64
	origFrame        map[string]math3d.EulerAngles
	origAligningRoot string
}

// JointInfo is what's shown for the selected joint.
type JointInfo struct {
	Joint string
	Role  string

	// Length is the bone length in world space, zero for end sites.
	Length float64

	// HasAxes is false when the model has no entry for the joint yet. The
	// fields below are then zero.
	HasAxes bool

	// Swing and Twist are rounded to the configured precision.
	Swing math3d.Vector3
	Twist math3d.Vector3

	// Rotation carries the canonical axes onto the joint's axes in global
	// space, in the rest pose.
	Rotation math3d.Quaternion

	// Residual is the larger of the angles, in radians, left between the
	// rotated canonical axes and the joint's axes.
	Residual float64
}

// New starts a session. The model is copied, so nothing reaches it until the
// session is accepted; a nil model starts an empty one. A nil cfg uses the
// defaults.
func New(skel *skeleton.Skeleton, model *cosmap.Model, cfg *config.SolverConfig) (*Session, error) {
	if skel == nil {
		return nil, errors.New("skeleton is required")
	}

	if cfg == nil {
		cfg = config.DefaultSolverConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid solver config: %w", err)
	}

	id := uuid.New()
	s := &Session{
		ID:               id,
		skel:             skel,
		cfg:              cfg,
		state:            sOpen,
		origScale:        skel.Scale(),
		origFrame:        skel.ReferenceFrame(),
		origAligningRoot: skel.AligningRoot,
		log: logrus.WithFields(logrus.Fields{
			"pkg":     "editor",
			"session": id.String(),
		}),
	}

	if model == nil {
		s.log.Info("no skeleton model given, starting an empty one")
		s.model = cosmap.New()
	} else {
		s.model = model.Clone()
	}

	s.log.Infof("editing %s with %d axes", skel, len(s.model.Axes))
	return s, nil
}

func (s *Session) String() string {
	return fmt.Sprintf("&Session{%s: %s selected=%q}", s.ID, s.state, s.selected)
}

// Model returns the working copy of the model.
func (s *Session) Model() *cosmap.Model {
	return s.model
}

func (s *Session) Skeleton() *skeleton.Skeleton {
	return s.skel
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) checkOpen() error {
	if s.state != sOpen {
		return fmt.Errorf("%s: %w", s.state, ErrClosed)
	}
	return nil
}

// Select picks the joint which the edit operations apply to. Only joints with
// a bone can be selected. An empty name clears the selection.
func (s *Session) Select(joint string) (JointInfo, error) {
	if err := s.checkOpen(); err != nil {
		return JointInfo{}, err
	}

	if joint == "" {
		s.selected = ""
		return JointInfo{}, nil
	}

	j, err := s.skel.Joint(joint)
	if err != nil {
		return JointInfo{}, err
	}
	if j.IsEndSite() {
		return JointInfo{}, fmt.Errorf("%q: %w", joint, ErrNotEditable)
	}

	s.selected = joint
	s.log.Debugf("selected %s", joint)
	return s.Info()
}

// Selected returns the name of the selected joint, if any. A closed session
// has no selection.
func (s *Session) Selected() (string, bool) {
	if s.state != sOpen {
		return "", false
	}
	return s.selected, s.selected != ""
}

// Info describes the selected joint.
func (s *Session) Info() (JointInfo, error) {
	if err := s.checkOpen(); err != nil {
		return JointInfo{}, err
	}
	if s.selected == "" {
		return JointInfo{}, ErrNoSelection
	}

	j, err := s.skel.Joint(s.selected)
	if err != nil {
		return JointInfo{}, err
	}

	info := JointInfo{Joint: s.selected, Length: j.Length()}
	info.Role, _ = s.model.RoleOf(s.selected)

	p, err := s.model.Pair(s.selected)
	if err != nil {
		return info, nil
	}
	p = p.Round(s.cfg.GetPrecision())
	info.HasAxes = true
	info.Swing = p.Swing
	info.Twist = p.Twist

	m := j.GlobalRotation()
	gSwing := m.MultiplyVector(p.Swing)
	gTwist := m.MultiplyVector(p.Twist)

	q, err := s.solve(gTwist, gSwing)
	if err != nil {
		return info, fmt.Errorf("%s: %w", s.selected, err)
	}
	info.Rotation = q
	info.Residual = residual(q, gTwist, gSwing)

	return info, nil
}

func (s *Session) solve(twist, swing math3d.Vector3) (math3d.Quaternion, error) {
	if s.cfg.GetSolver() != config.SolverIterative {
		return axes.ToQuaternion(twist, swing)
	}

	res, err := axes.ToQuaternionIterative(twist, swing, s.cfg.GetIterativeOptions())
	if err != nil {
		return math3d.IdentityQuaternion, err
	}
	if !res.Converged {
		s.log.Warnf("%s: iterative solver stopped after %d iterations (twist=%.3f swing=%.3f)",
			s.selected, res.Iterations, res.TwistResidual, res.SwingResidual)
	}
	return res.Rotation, nil
}

func residual(q math3d.Quaternion, twist, swing math3d.Vector3) float64 {
	return math.Max(
		angle(q.Rotate(math3d.UnitY), twist),
		angle(q.Rotate(math3d.UnitX), swing),
	)
}

// angle returns the angle between two directions, or zero if either is zero.
func angle(a, b math3d.Vector3) float64 {
	m := a.Magnitude() * b.Magnitude()
	if m == 0 {
		return 0
	}
	return math.Acos(math.Max(-1, math.Min(1, a.Dot(b)/m)))
}
