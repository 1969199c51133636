package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestNewPose(t *testing.T) {
	p := NewPose()
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{})
	test.That(t, PoseAlmostCoincident(p, p.Clone(), 1e-12), test.ShouldBeTrue)
}

func TestPoseFromPoint(t *testing.T) {
	p := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, p.Point(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})

	// Translation does not disturb the rotation block.
	rot := p.Rotation()
	test.That(t, rot.Col(0).X(), test.ShouldEqual, 1)
	test.That(t, rot.Col(1).Y(), test.ShouldEqual, 1)
	test.That(t, rot.Col(2).Z(), test.ShouldEqual, 1)
}

func TestPoseFromOrientation(t *testing.T) {
	// A yaw of 90 degrees maps the x axis onto the y axis.
	p := NewPoseFromOrientation(r3.Vector{}, 0, 0, math.Pi/2)
	x := p.Rotation().Col(0)
	test.That(t, x.X(), test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, x.Y(), test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, x.Z(), test.ShouldAlmostEqual, 0, 1e-12)

	z := p.Rotation().Col(2)
	test.That(t, z.Z(), test.ShouldAlmostEqual, 1, 1e-12)
}

func TestCompose(t *testing.T) {
	a := NewPoseFromPoint(r3.Vector{X: 1})
	b := NewPoseFromPoint(r3.Vector{Y: 2})
	pt := a.Compose(b).Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 2, 1e-12)

	// Composition applies the second transform in the rotated frame of the first.
	rot := NewPoseFromOrientation(r3.Vector{}, 0, 0, math.Pi/2)
	pt = rot.Compose(a).Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 1, 1e-12)
}
