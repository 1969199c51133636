package ik

import (
	"github.com/mechlabs/ikchain/referenceframe"
)

// ActiveFromFull reduces a full joint vector to only the entries belonging to
// active links, preserving their relative order.
func ActiveFromFull(chain referenceframe.Chain, full []referenceframe.Input) []referenceframe.Input {
	active := make([]referenceframe.Input, 0, len(full))
	for i, link := range chain.Links() {
		if link.Active() {
			active = append(active, full[i])
		}
	}
	return active
}

// ActiveToFull merges an active joint vector back into full joint space. The
// returned vector matches full except at active-link positions, which are
// replaced in order by the entries of active. Neither input is mutated.
func ActiveToFull(chain referenceframe.Chain, active, full []referenceframe.Input) []referenceframe.Input {
	merged := make([]referenceframe.Input, len(full))
	copy(merged, full)
	j := 0
	for i, link := range chain.Links() {
		if link.Active() && j < len(active) {
			merged[i] = active[j]
			j++
		}
	}
	return merged
}

// activeLimits collects each link's limit and reduces the result to the active
// subset, in the same order as ActiveFromFull.
func activeLimits(chain referenceframe.Chain) []referenceframe.Limit {
	var limits []referenceframe.Limit
	for _, link := range chain.Links() {
		if link.Active() {
			limits = append(limits, link.Limit())
		}
	}
	return limits
}
