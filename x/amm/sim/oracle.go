// Package sim is the property-based verification harness for the pool
// engine: an independent oracle recomputes expected reserve deltas for every
// driven call and a checker compares them against the observed deltas.
package sim

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Oracle models the pool's pricing independently of the engine. It holds
// only a copy of the engine parameters and evaluates its own rendition of
// the formulas from pre-call reserve snapshots; it never calls engine code,
// so a bug shared with the engine cannot cancel out in the comparison.
type Oracle struct {
	params types.Params
}

// NewOracle builds an oracle from the same parameters the engine was
// configured with
func NewOracle(params types.Params) *Oracle {
	return &Oracle{params: params}
}

// outputForInput is the oracle's own copy of the exact-input formula
func (o *Oracle) outputForInput(inputAmount, inputReserve, outputReserve math.Int) math.Int {
	inputWithFee := inputAmount.Mul(o.params.FeeNumerator)
	return inputWithFee.Mul(outputReserve).
		Quo(inputReserve.Mul(o.params.FeeDenominator).Add(inputWithFee))
}

// inputForOutput is the oracle's own copy of the exact-output formula
func (o *Oracle) inputForOutput(outputAmount, inputReserve, outputReserve math.Int) math.Int {
	return inputReserve.Mul(outputAmount).Mul(o.params.FeeDenominator).
		Quo(outputReserve.Sub(outputAmount).Mul(o.params.FeeNumerator))
}

// ExpectedDepositDeltas returns the reserve deltas a ratio-preserving
// deposit of desiredB should cause
func (o *Oracle) ExpectedDepositDeltas(pre types.Pool, desiredB math.Int) (deltaA, deltaB math.Int) {
	deltaA = pre.ReserveA.Mul(desiredB).Quo(pre.ReserveB)
	deltaB = desiredB
	return deltaA, deltaB
}

// ExpectedSwapExactOutputDeltas returns the signed reserve deltas an
// exact-output swap should cause: the output reserve shrinks by the
// requested amount, the input reserve grows by the inverse-formula price.
func (o *Oracle) ExpectedSwapExactOutputDeltas(pre types.Pool, direction types.SwapDirection, outputAmount math.Int) (deltaA, deltaB math.Int) {
	switch direction {
	case types.SwapAForB:
		deltaA = o.inputForOutput(outputAmount, pre.ReserveA, pre.ReserveB)
		deltaB = outputAmount.Neg()
	default:
		deltaA = outputAmount.Neg()
		deltaB = o.inputForOutput(outputAmount, pre.ReserveB, pre.ReserveA)
	}
	return deltaA, deltaB
}

// ExpectedSwapExactInputDeltas is the symmetric exact-input form
func (o *Oracle) ExpectedSwapExactInputDeltas(pre types.Pool, direction types.SwapDirection, inputAmount math.Int) (deltaA, deltaB math.Int) {
	switch direction {
	case types.SwapAForB:
		deltaA = inputAmount
		deltaB = o.outputForInput(inputAmount, pre.ReserveA, pre.ReserveB).Neg()
	default:
		deltaA = o.outputForInput(inputAmount, pre.ReserveB, pre.ReserveA).Neg()
		deltaB = inputAmount
	}
	return deltaA, deltaB
}

// Ghost is the per-call shadow record: the pre-call reserve snapshot, the
// oracle's expected deltas, and the deltas actually observed. It is owned
// exclusively by the harness and built fresh for every driven call.
type Ghost struct {
	Step   int
	Action Action

	StartingReserveA math.Int
	StartingReserveB math.Int
	ExpectedDeltaA   math.Int
	ExpectedDeltaB   math.Int
	ActualDeltaA     math.Int
	ActualDeltaB     math.Int
}

func (g Ghost) String() string {
	return fmt.Sprintf(
		"step=%d action=%s starting=(%s,%s) expected=(%s,%s) actual=(%s,%s)",
		g.Step, g.Action,
		g.StartingReserveA, g.StartingReserveB,
		g.ExpectedDeltaA, g.ExpectedDeltaB,
		g.ActualDeltaA, g.ActualDeltaB,
	)
}
