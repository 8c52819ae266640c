package cosmap

import (
	"encoding/json"
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
	"gonum.org/v1/gonum/floats/scalar"
)

// AxisPair is a joint's coordinate system, expressed in the joint's local
// frame. Swing plays the part of canonical X and Twist that of canonical Y.
// Ideally both are unit length and orthogonal, but nothing enforces that
// until one of the orthogonalize operations is applied.
type AxisPair struct {
	Swing math3d.Vector3
	Twist math3d.Vector3
}

// DefaultAxisPair is the canonical coordinate system.
var DefaultAxisPair = AxisPair{Swing: math3d.UnitX, Twist: math3d.UnitY}

type axisPairJSON struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func (p AxisPair) String() string {
	return fmt.Sprintf("&Axes{swing=%s twist=%s}", p.Swing, p.Twist)
}

// IsFinite returns false if either axis contains NaN or Inf.
func (p AxisPair) IsFinite() bool {
	return p.Swing.IsFinite() && p.Twist.IsFinite()
}

// Round returns the pair with each component rounded to prec decimals.
func (p AxisPair) Round(prec int) AxisPair {
	return AxisPair{
		Swing: roundVector(p.Swing, prec),
		Twist: roundVector(p.Twist, prec),
	}
}

func roundVector(v math3d.Vector3, prec int) math3d.Vector3 {
	return math3d.Vector3{
		X: scalar.Round(v.X, prec),
		Y: scalar.Round(v.Y, prec),
		Z: scalar.Round(v.Z, prec),
	}
}

func (p AxisPair) MarshalJSON() ([]byte, error) {
	return json.Marshal(axisPairJSON{
		X: p.Swing.Elements(),
		Y: p.Twist.Elements(),
	})
}

// UnmarshalJSON requires both axes to be present as three finite numbers.
func (p *AxisPair) UnmarshalJSON(data []byte) error {
	var raw axisPairJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedAxis, err)
	}
	if raw.X == nil || raw.Y == nil {
		return fmt.Errorf("%w: both x and y are required", ErrMalformedAxis)
	}

	swing, err := math3d.MakeVector3FromSlice(raw.X)
	if err != nil {
		return fmt.Errorf("%w: x: %v", ErrMalformedAxis, err)
	}
	twist, err := math3d.MakeVector3FromSlice(raw.Y)
	if err != nil {
		return fmt.Errorf("%w: y: %v", ErrMalformedAxis, err)
	}

	*p = AxisPair{Swing: swing, Twist: twist}
	return nil
}
