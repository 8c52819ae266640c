package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gemlongman/motion-preprocessing-tool/config"
	"github.com/gemlongman/motion-preprocessing-tool/cosmap"
	"github.com/gemlongman/motion-preprocessing-tool/editor"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/gemlongman/motion-preprocessing-tool/skeleton"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

var (
	skeletonPath = flag.String("skeleton", "", "the skeleton description (JSON)")
	modelPath    = flag.String("model", "", "the skeleton model to edit; empty starts a new one")
	configPath   = flag.String("config", "", "solver config (JSON); empty uses the defaults")
	posePath     = flag.String("pose", "", "default pose to load: joint name to [heading, pitch, bank] in degrees")
	joint        = flag.String("joint", "", "the joint to operate on")
	op           = flag.String("op", "info", "operation: info|set|ortho-twist|ortho-swing|flip-twist|flip-swing|flip-z|align-up|guess|role")
	swingText    = flag.String("swing", "", "swing axis for -op set, as x,y,z")
	twistText    = flag.String("twist", "", "twist axis for -op set, as x,y,z")
	role         = flag.String("role", "", "standard role for -op role")
	scale        = flag.Float64("scale", 0, "skeleton scale; 0 leaves it alone")
	aligningRoot = flag.String("aligning-root", "", "joint to align the skeleton by")
	outPath      = flag.String("out", "", "where to write the accepted document; empty writes nothing")
	name         = flag.String("name", "", "name of the accepted document")
	debug        = flag.Bool("debug", false, "show debug logging")
)

type options struct {
	skeleton     string
	model        string
	config       string
	pose         string
	joint        string
	op           string
	swing        string
	twist        string
	role         string
	scale        float64
	aligningRoot string
	out          string
	name         string
}

func main() {
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	err := run(os.Stdout, options{
		skeleton:     *skeletonPath,
		model:        *modelPath,
		config:       *configPath,
		pose:         *posePath,
		joint:        *joint,
		op:           *op,
		swing:        *swingText,
		twist:        *twistText,
		role:         *role,
		scale:        *scale,
		aligningRoot: *aligningRoot,
		out:          *outPath,
		name:         *name,
	})
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, o options) error {
	if o.skeleton == "" {
		return errors.New("-skeleton is required")
	}
	skel, err := skeleton.Load(o.skeleton)
	if err != nil {
		return err
	}

	var model *cosmap.Model
	if o.model != "" {
		model, err = cosmap.Load(o.model)
		if err != nil {
			return err
		}
	}

	cfg := config.DefaultSolverConfig()
	if o.config != "" {
		cfg, err = config.LoadSolverConfig(o.config)
		if err != nil {
			return err
		}
	}

	s, err := editor.New(skel, model, cfg)
	if err != nil {
		return err
	}

	if err := setUp(s, o); err != nil {
		discard(s)
		return err
	}

	info, err := apply(s, o)
	if err != nil {
		discard(s)
		return err
	}
	if info.Joint != "" {
		printInfo(w, info)
	}

	if o.out == "" {
		return s.Reject()
	}

	doc, err := s.Accept(o.name)
	if err != nil {
		discard(s)
		return err
	}
	if err := doc.Save(o.out); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s to %s\n", doc.Name, o.out)
	return nil
}

// discard rejects a session which failed part way. The original error is the
// one worth returning, so a failure to reject is only logged.
func discard(s *editor.Session) {
	if err := s.Reject(); err != nil {
		log.Warnf("failed to reject session %s: %s", s.ID, err)
	}
}

// setUp applies the skeleton settings, which don't need a joint.
func setUp(s *editor.Session, o options) error {
	if o.scale != 0 {
		if err := s.SetScale(o.scale); err != nil {
			return err
		}
	}
	if o.aligningRoot != "" {
		if err := s.SetAligningRoot(o.aligningRoot); err != nil {
			return err
		}
	}
	if o.pose != "" {
		frame, err := loadPose(o.pose)
		if err != nil {
			return err
		}
		if err := s.LoadDefaultPose(frame); err != nil {
			return err
		}
	}
	return nil
}

func apply(s *editor.Session, o options) (editor.JointInfo, error) {
	if o.joint == "" {
		if o.op != "info" {
			return editor.JointInfo{}, fmt.Errorf("-op %s needs a -joint", o.op)
		}
		return editor.JointInfo{}, nil
	}

	if _, err := s.Select(o.joint); err != nil {
		return editor.JointInfo{}, err
	}

	switch o.op {
	case "info":
		return s.Info()
	case "set":
		swing, err := parseVector(o.swing)
		if err != nil {
			return editor.JointInfo{}, fmt.Errorf("-swing: %w", err)
		}
		twist, err := parseVector(o.twist)
		if err != nil {
			return editor.JointInfo{}, fmt.Errorf("-twist: %w", err)
		}
		return s.SetAxes(swing, twist)
	case "ortho-twist":
		return s.OrthogonalTwist()
	case "ortho-swing":
		return s.OrthogonalSwing()
	case "flip-twist":
		return s.FlipTwist()
	case "flip-swing":
		return s.FlipSwing()
	case "flip-z":
		return s.FlipZAxis()
	case "align-up":
		return s.AlignToUpAxis()
	case "guess":
		return s.Guess()
	case "role":
		return s.SetRole(o.role)
	}

	return editor.JointInfo{}, fmt.Errorf("unknown op %q", o.op)
}

func printInfo(w io.Writer, info editor.JointInfo) {
	fmt.Fprintf(w, "Selected Joint: %s\n", info.Joint)
	if info.Role != "" {
		fmt.Fprintf(w, "Role: %s\n", info.Role)
	}
	fmt.Fprintf(w, "Bone Length: %.2f\n", info.Length)
	if !info.HasAxes {
		fmt.Fprintln(w, "No axes")
		return
	}
	fmt.Fprintf(w, "Swing: %v\n", info.Swing.Elements())
	fmt.Fprintf(w, "Twist: %v\n", info.Twist.Elements())
	fmt.Fprintf(w, "Rotation: %v\n", info.Rotation.Elements())
	fmt.Fprintf(w, "Residual: %.4f rad\n", info.Residual)
}

// parseVector reads three comma separated numbers.
func parseVector(s string) (math3d.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math3d.ZeroVector3, fmt.Errorf("expected x,y,z, got %q", s)
	}

	f := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return math3d.ZeroVector3, err
		}
		f[i] = v
	}

	return math3d.MakeVector3FromSlice(f)
}

func loadPose(path string) (map[string]math3d.EulerAngles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pose: %w", err)
	}

	var raw map[string][3]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pose: %w", err)
	}

	frame := make(map[string]math3d.EulerAngles, len(raw))
	for j, r := range raw {
		frame[j] = math3d.MakeEulerAnglesDegrees(r[0], r[1], r[2])
	}
	return frame, nil
}
