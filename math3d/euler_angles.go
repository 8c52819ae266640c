package math3d

import (
	"fmt"
	"math"
)

type EulerAngles struct {
	Heading float64 // y
	Pitch   float64 // x
	Bank    float64 // z
}

var (
	IdentityOrientation = EulerAngles{}
)

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}

func Rad(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// MakeEulerAnglesDegrees converts heading, pitch and bank in degrees, which is
// how rest poses are written down in skeleton documents.
func MakeEulerAnglesDegrees(h float64, p float64, b float64) EulerAngles {
	return EulerAngles{Rad(h), Rad(p), Rad(b)}
}

// Degrees returns heading, pitch and bank in degrees.
func (ea EulerAngles) Degrees() [3]float64 {
	return [3]float64{Deg(ea.Heading), Deg(ea.Pitch), Deg(ea.Bank)}
}

// Matrix33 returns the rotation as a column-vector 3x3 matrix.
func (ea EulerAngles) Matrix33() Matrix33 {
	return MakeMatrix44(ZeroVector3, ea).Rotation()
}

// Quaternion returns the same rotation as a unit quaternion.
func (ea EulerAngles) Quaternion() Quaternion {
	return ea.Matrix33().Quaternion()
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{h=%+.2f° p=%+.2f° b=%+.2f°}", Deg(ea.Heading), Deg(ea.Pitch), Deg(ea.Bank))
}
