// Package axes maps a joint's swing and twist axes onto the canonical X and Y
// axes.
//
// A joint's coordinate system is described by two directions in its local
// frame: the twist axis, which plays the part of canonical Y, and the swing
// axis, which plays the part of canonical X. Retargeting needs the rotation
// which carries the canonical axes onto those directions once they have been
// transformed into global space, and this package computes it.
//
// Everything here is a pure function over small values. Nothing logs, nothing
// blocks, and nothing holds state between calls.
package axes

import (
	"errors"
	"fmt"
	"math"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

var (
	// ErrInvalidInput is returned when an argument contains NaN or Inf, or an
	// option is out of range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroLength is returned when a direction is needed but the vector has
	// no length, including when orthogonalizing one axis against a parallel one.
	ErrZeroLength = math3d.ErrZeroLength
)

// parallelEpsilon is the length, relative to the input, below which what
// remains of a vector after removing a component is considered zero.
const parallelEpsilon = 1e-9

func checkFinite(name string, vs ...math3d.Vector3) error {
	for _, v := range vs {
		if !v.IsFinite() {
			return fmt.Errorf("%s %s: %w", name, v, ErrInvalidInput)
		}
	}
	return nil
}

func normalize(name string, v math3d.Vector3) (math3d.Vector3, error) {
	u, err := v.Normalize()
	if err != nil {
		return math3d.ZeroVector3, fmt.Errorf("%s: %w", name, err)
	}
	return u, nil
}

// clamp restricts a dot product of unit vectors to [-1, 1], so that rounding
// can't push it outside the domain of acos.
func clamp(d float64) float64 {
	return math.Max(-1, math.Min(1, d))
}

// angleBetween returns the angle between two unit vectors, in radians.
func angleBetween(a, b math3d.Vector3) float64 {
	return math.Acos(clamp(a.Dot(b)))
}
