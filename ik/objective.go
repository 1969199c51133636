package ik

import (
	"gonum.org/v1/gonum/floats"

	"github.com/mechlabs/ikchain/referenceframe"
	"github.com/mechlabs/ikchain/spatialmath"
)

// orientationCoeff weights the orientation term of the objective relative to
// the position term. It is held at 1.0 against a squared position term so the
// optimizer closes position error before orientation error, rather than
// settling in a minimum where the orientation is perfectly reached but the
// target position is not.
const orientationCoeff = 1.0

// objective scores a candidate active joint vector against the solve target.
// It holds everything a single solve needs; Evaluate has no side effects
// beyond invoking the chain's forward kinematics.
type objective struct {
	chain      referenceframe.Chain
	target     *spatialmath.Pose
	seed       []referenceframe.Input
	mode       OrientationMode
	regWeight  float64
	seedActive []float64
}

// newObjective validates the solve arguments and builds the objective. All
// argument errors are caught here, before any optimizer or forward kinematics
// invocation.
func newObjective(
	chain referenceframe.Chain,
	target *spatialmath.Pose,
	seed []referenceframe.Input,
	opts SolveOpts,
) (*objective, error) {
	if seed == nil {
		return nil, errNoSeed
	}
	if target == nil {
		return nil, errNoTarget
	}
	if len(seed) != len(chain.Links()) {
		return nil, referenceframe.NewIncorrectInputLengthError(len(seed), len(chain.Links()))
	}
	switch opts.OrientationMode {
	case OrientationNone, OrientationX, OrientationY, OrientationZ, OrientationAll:
	default:
		return nil, newUnknownOrientationModeError(opts.OrientationMode)
	}
	return &objective{
		chain:      chain,
		target:     target,
		seed:       seed,
		mode:       opts.OrientationMode,
		regWeight:  opts.RegularizationWeight,
		seedActive: referenceframe.InputsToFloats(ActiveFromFull(chain, seed)),
	}, nil
}

// Evaluate returns the scalar cost of the active joint vector x: squared
// position error, plus the weighted squared orientation error when an
// orientation mode is set, plus the weighted distance from the starting active
// configuration when regularization is enabled.
func (o *objective) Evaluate(x []float64) (float64, error) {
	full := ActiveToFull(o.chain, referenceframe.FloatsToInputs(x), o.seed)
	pose, err := o.chain.Transform(full)
	if err != nil {
		return 0, err
	}

	posErr := pose.Point().Sub(o.target.Point()).Norm()
	cost := posErr * posErr

	if o.mode != OrientationNone {
		orientErr := orientationError(o.mode, pose, o.target)
		cost += orientationCoeff * orientErr * orientErr
	}

	// Penalize straying from the starting configuration, to discourage large
	// joint moves for small changes in target.
	if o.regWeight > 0 {
		cost += o.regWeight * floats.Distance(x, o.seedActive, 2)
	}
	return cost, nil
}
