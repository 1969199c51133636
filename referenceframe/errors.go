package referenceframe

import "github.com/pkg/errors"

// NewIncorrectInputLengthError returns an error for when a joint vector does
// not have one entry per link of a chain.
func NewIncorrectInputLengthError(got, want int) error {
	return errors.Errorf("number of inputs does not match chain link count: expected %d but got %d", want, got)
}
