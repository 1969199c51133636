// Package referenceframe defines kinematic chains of links and the forward
// kinematics that map a full joint vector to an end effector pose.
package referenceframe

import (
	"github.com/pkg/errors"

	"github.com/mechlabs/ikchain/spatialmath"
)

// Chain represents an ordered serial linkage rooted at a world frame.
type Chain interface {
	// Name returns the name of the chain.
	Name() string

	// Links returns the ordered links of the chain, including fixed links.
	Links() []*Link

	// FirstActiveLink returns the index of the first link whose joint angle is
	// subject to optimization.
	FirstActiveLink() int

	// Transform computes the forward kinematics for a full joint vector, one
	// entry per link. Entries for fixed links are ignored.
	Transform([]Input) (*spatialmath.Pose, error)
}

// SerialChain is a Chain whose end effector pose is the left-to-right
// composition of its links' transforms. It is read-only after construction, so
// concurrent solves over one chain are safe.
type SerialChain struct {
	name        string
	links       []*Link
	firstActive int
}

// NewSerialChain creates a chain from ordered links. activeMask, if non-nil,
// must have one entry per link and overrides which links are optimizable;
// fixed links can never be made active. At least one link must end up active.
func NewSerialChain(name string, links []*Link, activeMask []bool) (*SerialChain, error) {
	if len(links) == 0 {
		return nil, errors.New("chain must have at least one link")
	}
	if activeMask != nil && len(activeMask) != len(links) {
		return nil, errors.Errorf("active mask length %d does not match link count %d", len(activeMask), len(links))
	}

	owned := make([]*Link, len(links))
	for i, l := range links {
		cp := *l
		if activeMask != nil {
			if activeMask[i] && !cp.revolute {
				return nil, errors.Errorf("link %q is fixed and cannot be active", cp.name)
			}
			cp.active = activeMask[i]
		}
		owned[i] = &cp
	}

	firstActive := -1
	for i, l := range owned {
		if l.active {
			firstActive = i
			break
		}
	}
	if firstActive == -1 {
		return nil, errors.New("chain has no active links")
	}

	return &SerialChain{name: name, links: owned, firstActive: firstActive}, nil
}

// Name returns the name of the chain.
func (c *SerialChain) Name() string {
	return c.name
}

// Links returns the ordered links of the chain.
func (c *SerialChain) Links() []*Link {
	return c.links
}

// FirstActiveLink returns the index of the first active link.
func (c *SerialChain) FirstActiveLink() int {
	return c.firstActive
}

// Transform computes the end effector pose for a full joint vector.
func (c *SerialChain) Transform(inputs []Input) (*spatialmath.Pose, error) {
	if len(inputs) != len(c.links) {
		return nil, NewIncorrectInputLengthError(len(inputs), len(c.links))
	}
	pose := spatialmath.NewPose()
	for i, l := range c.links {
		pose = pose.Compose(l.Transform(inputs[i]))
	}
	return pose, nil
}
