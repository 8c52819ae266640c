package skeleton

import (
	"fmt"

	"github.com/gemlongman/motion-preprocessing-tool/math3d"
)

// Joint is one node of a skeleton. Its origin sits at Offset in its parent's
// coordinate space, and its rest rotation comes from the skeleton's reference
// frame.
type Joint struct {
	Name     string
	Offset   math3d.Vector3
	Rest     math3d.EulerAngles
	Children []*Joint

	parent *Joint
	skel   *Skeleton
}

func (j Joint) String() string {
	return fmt.Sprintf("&Joint{%s: %s %s children=%d}", j.Name, j.Offset, j.Rest, len(j.Children))
}

// Parent returns the parent joint, or nil for the root.
func (j *Joint) Parent() *Joint {
	return j.parent
}

// IsEndSite returns true if the joint has no children, or its first child
// sits right on top of it. Such joints have no bone to attach axes to.
func (j *Joint) IsEndSite() bool {
	return len(j.Children) == 0 || j.Children[0].Offset.Zero()
}

func (j *Joint) scaledOffset() math3d.Vector3 {
	return j.Offset.MultiplyByScalar(j.skel.scale)
}

// LocalMatrix returns the transform from this joint's space into its parent's.
func (j *Joint) LocalMatrix() *math3d.Matrix44 {
	return math3d.MakeMatrix44(j.scaledOffset(), j.Rest)
}

// WorldMatrix returns a Matrix44 which can be applied to a vector in this
// joint's coordinate space to convert it to the world space, in the rest pose.
func (j *Joint) WorldMatrix() *math3d.Matrix44 {

	// the local transform rotates into this joint's space and moves to the
	// offset; the parent's world matrix then takes over from there.
	if j.parent != nil {
		return math3d.MultiplyMatrices(*j.LocalMatrix(), *j.parent.WorldMatrix())
	}

	return j.LocalMatrix()
}

// GlobalRotation returns the rotation part of the world matrix, as a
// column-vector matrix. Directions in the joint's frame are carried into the
// world by GlobalRotation().MultiplyVector.
func (j *Joint) GlobalRotation() math3d.Matrix33 {
	return j.WorldMatrix().Rotation()
}

// LocalRotation returns the rest rotation relative to the parent.
func (j *Joint) LocalRotation() math3d.Matrix33 {
	return j.Rest.Matrix33()
}

// Start returns the world position of this joint.
func (j *Joint) Start() math3d.Vector3 {
	return j.WorldMatrix().Translation()
}

// End returns the world position of the first child, which is where the bone
// ends. End sites have no bone, so End is the same as Start for them.
func (j *Joint) End() math3d.Vector3 {
	if len(j.Children) == 0 {
		return j.Start()
	}
	return j.Project(j.Children[0].scaledOffset())
}

// Length returns the world length of the bone, from Start to End.
func (j *Joint) Length() float64 {
	return j.Start().Distance(j.End())
}

// Project transforms a point in this joint's coordinate space into the world
// space.
func (j *Joint) Project(v math3d.Vector3) math3d.Vector3 {
	return v.MultiplyByMatrix44(*j.WorldMatrix())
}

// Unproject transforms a point in the world space into this joint's
// coordinate space.
func (j *Joint) Unproject(v math3d.Vector3) math3d.Vector3 {
	return v.MultiplyByMatrix44(j.WorldMatrix().Inverse())
}
