package sim

import (
	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Checker holds the two standing assertions of the harness: after every
// driven call, the observed reserve deltas must equal the oracle's expected
// deltas on both assets. Any mismatch is a counterexample.
type Checker struct{}

// Check compares a ghost's actual deltas against its expected deltas
func (Checker) Check(g Ghost) error {
	if !g.ActualDeltaA.Equal(g.ExpectedDeltaA) {
		return types.ErrInvariantBroken.Wrapf(
			"reserve A delta mismatch: %s", g)
	}
	if !g.ActualDeltaB.Equal(g.ExpectedDeltaB) {
		return types.ErrInvariantBroken.Wrapf(
			"reserve B delta mismatch: %s", g)
	}
	return nil
}
