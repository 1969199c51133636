// Package spatialmath defines the spatial mathematical operations used for kinematics.
package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Pose represents a rigid transformation in 3D space as a 4x4 homogeneous
// transform: a 3x3 rotation block plus a translation column.
type Pose struct {
	mat mgl64.Mat4
}

// NewPose returns a pose whose matrix is the identity.
func NewPose() *Pose {
	return &Pose{mgl64.Ident4()}
}

// NewPoseFromPoint returns a pure-translation pose at the given point.
func NewPoseFromPoint(pt r3.Vector) *Pose {
	return &Pose{mgl64.Translate3D(pt.X, pt.Y, pt.Z)}
}

// NewPoseFromOrientation returns a pose translated to the given point and
// rotated by the given roll/pitch/yaw angles in radians, applied in ZYX order.
func NewPoseFromOrientation(pt r3.Vector, roll, pitch, yaw float64) *Pose {
	rot := mgl64.HomogRotate3DZ(yaw).Mul4(
		mgl64.HomogRotate3DY(pitch).Mul4(
			mgl64.HomogRotate3DX(roll)))
	return &Pose{mgl64.Translate3D(pt.X, pt.Y, pt.Z).Mul4(rot)}
}

// NewPoseFromMatrix returns a pose wrapping the given homogeneous transform.
func NewPoseFromMatrix(mat mgl64.Mat4) *Pose {
	return &Pose{mat}
}

// Matrix returns the underlying 4x4 matrix.
func (p *Pose) Matrix() mgl64.Mat4 {
	return p.mat
}

// Rotation returns the top-left 3x3 rotation block.
func (p *Pose) Rotation() mgl64.Mat3 {
	return p.mat.Mat3()
}

// Point returns the translation column as a point in 3D space.
func (p *Pose) Point() r3.Vector {
	t := p.mat.Col(3).Vec3()
	return r3.Vector{X: t.X(), Y: t.Y(), Z: t.Z()}
}

// Compose returns the pose resulting from applying q within the frame of p.
func (p *Pose) Compose(q *Pose) *Pose {
	return &Pose{p.mat.Mul4(q.mat)}
}

// Clone returns a pose identical to this one.
func (p *Pose) Clone() *Pose {
	return &Pose{p.mat}
}

// PoseAlmostCoincident returns whether every matrix entry of the two poses is
// within epsilon.
func PoseAlmostCoincident(a, b *Pose, epsilon float64) bool {
	return a.mat.ApproxEqualThreshold(b.mat, epsilon)
}
