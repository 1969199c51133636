// Package ik computes joint configurations that bring a kinematic chain's end
// effector to a target pose, by bound-constrained numerical optimization over
// the chain's active joints.
package ik

import (
	"context"
	"math"

	"github.com/curioloop/optimizer/lbfgsb"
	"github.com/curioloop/optimizer/numdiff"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mechlabs/ikchain/referenceframe"
	"github.com/mechlabs/ikchain/spatialmath"
)

var (
	errNoSeed   = errors.New("a starting joint configuration must be provided")
	errNoTarget = errors.New("a target pose must be provided")
	errNoActive = errors.New("chain has no active links to optimize")
	errNilChain = errors.New("chain cannot be nil")
)

const (
	// defaultMaxIterations matches the budget the reference L-BFGS-B driver
	// applies when the caller sets no cap.
	defaultMaxIterations = 15000
	// defaultCorrections is the number of limited-memory BFGS corrections kept.
	defaultCorrections = 10
	// The objective is a squared pose error whose gradient vanishes
	// quadratically at the optimum, so both stopping tolerances are tighter
	// than general-purpose defaults.
	epsAccuracyFactor = 1e2
	projGradTolerance = 1e-10
)

// SolveOpts configures a single solve. The zero value disables regularization,
// uses the default iteration budget, and matches position only.
type SolveOpts struct {
	// RegularizationWeight scales the penalty on deviation from the starting
	// active configuration. Zero disables regularization.
	RegularizationWeight float64
	// MaxIterations caps the optimizer's iterations. Values <= 0 use the
	// default budget of 15000. Exhausting the budget is not an error; the best
	// iterate found is returned.
	MaxIterations int
	// OrientationMode selects which axes of the target orientation to match.
	// The zero value matches position only.
	OrientationMode OrientationMode
}

// LBFGSBIK solves inverse kinematics by running a single bound-constrained
// L-BFGS-B minimization of pose error over a chain's active joints. It
// performs exactly one local optimization per call: there is no multi-start
// recovery, so a solve seeded near a poor local minimum will stay near it and
// the caller must manage reseeding.
type LBFGSBIK struct {
	chain       referenceframe.Chain
	logger      golog.Logger
	corrections int
}

// CreateLBFGSBIKSolver creates an LBFGSBIK for the given chain. The chain must
// have at least one active link.
func CreateLBFGSBIKSolver(chain referenceframe.Chain, logger golog.Logger) (*LBFGSBIK, error) {
	if chain == nil {
		return nil, errNilChain
	}
	if len(activeLimits(chain)) == 0 {
		return nil, errNoActive
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &LBFGSBIK{chain: chain, logger: logger, corrections: defaultCorrections}, nil
}

// Solve drives the optimizer toward the target pose from the given full
// starting configuration and returns the optimized configuration in full joint
// space. Entries for non-active links are returned unchanged from seed, and
// every active entry lies within its link's limit.
func (ik *LBFGSBIK) Solve(
	ctx context.Context,
	target *spatialmath.Pose,
	seed []referenceframe.Input,
	opts SolveOpts,
) ([]referenceframe.Input, error) {
	obj, err := newObjective(ik.chain, target, seed, opts)
	if err != nil {
		return nil, err
	}

	limits := activeLimits(ik.chain)
	x0 := referenceframe.InputsToFloats(ActiveFromFull(ik.chain, seed))
	n := len(x0)

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	var evalErr error
	fd := &numdiff.ApproxSpec{
		N:         n,
		M:         1,
		Method:    numdiff.Central,
		Bounds:    diffBounds(limits),
		NotChkBnd: true,
		Object: func(x, y []float64) {
			cost, err := obj.Evaluate(x)
			if err != nil {
				evalErr = multierr.Combine(evalErr, err)
				cost = math.Inf(1)
			}
			y[0] = cost
		},
	}

	// The optimizer wants a gradient alongside every function value; estimate
	// it with bounds-aware central differences.
	eval := func(x, g []float64) float64 {
		cost, err := obj.Evaluate(x)
		if err != nil {
			evalErr = multierr.Combine(evalErr, err)
			return math.Inf(1)
		}
		if err := fd.Diff(x, g); err != nil {
			evalErr = multierr.Combine(evalErr, err)
		}
		return cost
	}

	problem := &lbfgsb.Problem{
		N:    n,
		M:    ik.corrections,
		Eval: eval,
		Stop: lbfgsb.Termination{
			MaxIterations:     maxIterations,
			EpsAccuracyFactor: epsAccuracyFactor,
			ProjGradTolerance: projGradTolerance,
		},
		Bounds: optimizerBounds(limits),
	}
	opt, err := problem.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "lbfgsb setup error")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	res := opt.Fit(x0, opt.Init())
	if evalErr != nil {
		return nil, errors.Wrap(evalErr, "lbfgsb optimization error")
	}
	ik.logger.Infof("inverse kinematics optimization done in %d iterations", res.NumIter)

	return ActiveToFull(ik.chain, referenceframe.FloatsToInputs(res.X), seed), nil
}

// SolveInverseKinematics builds a solver for the chain and runs one solve.
func SolveInverseKinematics(
	ctx context.Context,
	chain referenceframe.Chain,
	target *spatialmath.Pose,
	seed []referenceframe.Input,
	opts SolveOpts,
	logger golog.Logger,
) ([]referenceframe.Input, error) {
	solver, err := CreateLBFGSBIKSolver(chain, logger)
	if err != nil {
		return nil, err
	}
	return solver.Solve(ctx, target, seed, opts)
}

// optimizerBounds converts joint limits to optimizer box constraints. The
// optimizer takes NaN as its open-bound sentinel, while limits use ±Inf.
func optimizerBounds(limits []referenceframe.Limit) []lbfgsb.Bound {
	bounds := make([]lbfgsb.Bound, len(limits))
	for i, l := range limits {
		lower, upper := l.Min, l.Max
		if math.IsInf(lower, -1) {
			lower = math.NaN()
		}
		if math.IsInf(upper, 1) {
			upper = math.NaN()
		}
		bounds[i] = lbfgsb.Bound{Lower: lower, Upper: upper}
	}
	return bounds
}

// diffBounds converts joint limits for the finite-difference estimator, which
// uses them to one-side steps taken near a boundary.
func diffBounds(limits []referenceframe.Limit) []numdiff.Bound {
	bounds := make([]numdiff.Bound, len(limits))
	for i, l := range limits {
		bounds[i] = numdiff.Bound{l.Min, l.Max}
	}
	return bounds
}
