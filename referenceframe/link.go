package referenceframe

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/mechlabs/ikchain/spatialmath"
)

// Limit represents the allowed range of motion for a joint. A Min of -Inf or a
// Max of +Inf means the joint is unbounded in that direction.
type Limit struct {
	Min float64
	Max float64
}

// Unlimited is the limit of a joint with no physical bound in either direction.
var Unlimited = Limit{Min: math.Inf(-1), Max: math.Inf(1)}

// Link is one element of a serial chain: a fixed origin transform, optionally
// followed by a revolute joint rotating about an axis.
type Link struct {
	name     string
	origin   *spatialmath.Pose
	axis     mgl64.Vec3
	limit    Limit
	revolute bool
	active   bool
}

// NewRevoluteLink returns a link whose joint rotates about the given axis,
// expressed in the link's origin frame, within the given limit. The axis must
// be nonzero. Revolute links are active by default.
func NewRevoluteLink(name string, origin *spatialmath.Pose, axis r3.Vector, limit Limit) *Link {
	if origin == nil {
		origin = spatialmath.NewPose()
	}
	return &Link{
		name:     name,
		origin:   origin,
		axis:     mgl64.Vec3{axis.X, axis.Y, axis.Z}.Normalize(),
		limit:    limit,
		revolute: true,
		active:   true,
	}
}

// NewFixedLink returns a link with no joint. Its transform ignores the input
// angle, and it is never active.
func NewFixedLink(name string, origin *spatialmath.Pose) *Link {
	if origin == nil {
		origin = spatialmath.NewPose()
	}
	return &Link{name: name, origin: origin}
}

// Name returns the name of the link.
func (l *Link) Name() string {
	return l.name
}

// Limit returns the link's angle limit. Fixed links report a zero limit.
func (l *Link) Limit() Limit {
	return l.limit
}

// Active returns whether the link's joint angle is subject to optimization.
func (l *Link) Active() bool {
	return l.active
}

// Revolute returns whether the link carries a revolute joint.
func (l *Link) Revolute() bool {
	return l.revolute
}

// Transform returns the pose from this link's parent frame to its child frame
// for the given joint angle.
func (l *Link) Transform(input Input) *spatialmath.Pose {
	if !l.revolute {
		return l.origin
	}
	return l.origin.Compose(spatialmath.NewPoseFromMatrix(mgl64.HomogRotate3D(input.Value, l.axis)))
}
