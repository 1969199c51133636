package ik

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/mechlabs/ikchain/spatialmath"
)

// OrientationMode selects which axes of the target orientation must be matched
// by the solver, if any. A mode is fixed for the duration of a solve.
type OrientationMode int

const (
	// OrientationNone omits the orientation term from the objective entirely.
	OrientationNone OrientationMode = iota
	// OrientationX matches the X axis (first rotation column) of the target.
	OrientationX
	// OrientationY matches the Y axis (second rotation column) of the target.
	OrientationY
	// OrientationZ matches the Z axis (third rotation column) of the target.
	OrientationZ
	// OrientationAll matches the full rotation block of the target.
	OrientationAll
)

func (m OrientationMode) String() string {
	switch m {
	case OrientationNone:
		return "None"
	case OrientationX:
		return "X"
	case OrientationY:
		return "Y"
	case OrientationZ:
		return "Z"
	case OrientationAll:
		return "all"
	default:
		return fmt.Sprintf("OrientationMode(%d)", int(m))
	}
}

// OrientationModeFromString parses the mode names "X", "Y", "Z" and "all". The
// empty string parses to OrientationNone.
func OrientationModeFromString(s string) (OrientationMode, error) {
	switch s {
	case "":
		return OrientationNone, nil
	case "X":
		return OrientationX, nil
	case "Y":
		return OrientationY, nil
	case "Z":
		return OrientationZ, nil
	case "all":
		return OrientationAll, nil
	default:
		return OrientationNone, newUnknownOrientationModeError(s)
	}
}

func newUnknownOrientationModeError(mode interface{}) error {
	return errors.Errorf("unknown orientation mode: %v", mode)
}

// orientationError returns the distance between the computed and target
// orientations for the given mode: the Euclidean norm of the axis difference
// for single-axis modes, or the Frobenius norm of the rotation block
// difference for OrientationAll. The mode must already be validated.
func orientationError(mode OrientationMode, pose, target *spatialmath.Pose) float64 {
	switch mode {
	case OrientationX, OrientationY, OrientationZ:
		col := int(mode - OrientationX)
		return pose.Rotation().Col(col).Sub(target.Rotation().Col(col)).Len()
	case OrientationAll:
		pr, tr := pose.Rotation(), target.Rotation()
		diff := make([]float64, len(pr))
		for i := range pr {
			diff[i] = pr[i] - tr[i]
		}
		return floats.Norm(diff, 2)
	default:
		return 0
	}
}
