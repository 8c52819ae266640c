package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gemlongman/motion-preprocessing-tool/axes"
	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "config",
})

const (
	SolverClosedForm = "closed_form"
	SolverIterative  = "iterative"
)

// SolverConfig holds the numeric settings of an axis editing session. Every
// field is optional in the JSON file; missing fields take their defaults.
type SolverConfig struct {
	// Solver picks how joint rotations are derived from their axes:
	// "closed_form" or "iterative".
	Solver *string `json:"solver,omitempty"`

	// Iterative solver bounds.
	MaxIterations *int     `json:"max_iterations,omitempty"`
	ToleranceRad  *float64 `json:"tolerance_rad,omitempty"`

	// Precision is the number of decimals axis components are rounded to when
	// they're entered by hand.
	Precision *int `json:"precision,omitempty"`

	// CanonicalUp is the direction the aligning root's twist is corrected onto.
	CanonicalUp *[3]float64 `json:"canonical_up,omitempty"`
}

func ptrString(v string) *string      { return &v }
func ptrInt(v int) *int               { return &v }
func ptrFloat64(v float64) *float64   { return &v }
func ptrVec(v [3]float64) *[3]float64 { return &v }

// DefaultSolverConfig returns a config with every field set.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{
		Solver:        ptrString(SolverClosedForm),
		MaxIterations: ptrInt(axes.DefaultIterativeOptions.MaxIterations),
		ToleranceRad:  ptrFloat64(axes.DefaultIterativeOptions.Tolerance),
		Precision:     ptrInt(3),
		CanonicalUp:   ptrVec([3]float64{0, 1, 0}),
	}
}

// maxSolverConfigSize caps how much of a solver config file is read.
const maxSolverConfigSize = 1 << 20

// LoadSolverConfig reads a solver config file, which must be named *.json and
// be no bigger than maxSolverConfigSize. See DecodeSolverConfig.
func LoadSolverConfig(path string) (*SolverConfig, error) {
	if filepath.Ext(path) != ".json" {
		return nil, fmt.Errorf("solver config %s: not a .json file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open solver config: %w", err)
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.Size() > maxSolverConfigSize {
		return nil, fmt.Errorf("solver config %s is %d bytes, more than the %d allowed", path, st.Size(), maxSolverConfigSize)
	}

	cfg, err := DecodeSolverConfig(io.LimitReader(f, maxSolverConfigSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Infof("loaded %s: solver=%s precision=%d", path, cfg.GetSolver(), cfg.GetPrecision())
	return cfg, nil
}

// DecodeSolverConfig reads a solver config from r, on top of the defaults.
// Unknown keys are rejected, so that a misspelt setting isn't silently ignored.
func DecodeSolverConfig(r io.Reader) (*SolverConfig, error) {
	cfg := DefaultSolverConfig()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("bad solver config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field which is set is in range.
func (c *SolverConfig) Validate() error {
	if c.Solver != nil && *c.Solver != SolverClosedForm && *c.Solver != SolverIterative {
		return fmt.Errorf("unknown solver %q", *c.Solver)
	}
	if c.MaxIterations != nil && *c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", *c.MaxIterations)
	}
	if c.ToleranceRad != nil && !(*c.ToleranceRad > 0) {
		return fmt.Errorf("tolerance_rad must be positive, got %v", *c.ToleranceRad)
	}
	if c.Precision != nil && (*c.Precision < 0 || *c.Precision > 12) {
		return fmt.Errorf("precision must be between 0 and 12, got %d", *c.Precision)
	}
	if c.CanonicalUp != nil {
		up := math3d.Vector3{X: c.CanonicalUp[0], Y: c.CanonicalUp[1], Z: c.CanonicalUp[2]}
		if up.Zero() || !up.IsFinite() {
			return fmt.Errorf("canonical_up must be a finite non-zero vector, got %v", *c.CanonicalUp)
		}
	}
	return nil
}

// The getters below fall back to the defaults for unset fields.

func (c *SolverConfig) GetSolver() string {
	if c.Solver == nil {
		return SolverClosedForm
	}
	return *c.Solver
}

func (c *SolverConfig) GetIterativeOptions() axes.IterativeOptions {
	opts := axes.DefaultIterativeOptions
	if c.MaxIterations != nil {
		opts.MaxIterations = *c.MaxIterations
	}
	if c.ToleranceRad != nil {
		opts.Tolerance = *c.ToleranceRad
	}
	return opts
}

func (c *SolverConfig) GetPrecision() int {
	if c.Precision == nil {
		return 3
	}
	return *c.Precision
}

func (c *SolverConfig) GetCanonicalUp() math3d.Vector3 {
	if c.CanonicalUp == nil {
		return math3d.UnitY
	}
	return math3d.Vector3{X: c.CanonicalUp[0], Y: c.CanonicalUp[1], Z: c.CanonicalUp[2]}
}
