package keeper

import (
	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Fee-adjusted constant-product pricing. Pure functions, no shared state.
//
// The fee scales the input side only: the fee numerator (997) multiplies the
// input amount, the fee denominator (1000) multiplies the input reserve.
// Putting either constant on the wrong side of a formula silently changes
// the effective fee by an order of magnitude, so the numeric fixtures in
// swapmath_test.go pin both placements exactly.

// OutputForInput prices an exact-input trade:
//
//	out = floor(in*997*outReserve / (inReserve*1000 + in*997))
//
// Truncation favors the pool; the trader receives the floor.
func OutputForInput(inputAmount, inputReserve, outputReserve math.Int, params types.Params) (math.Int, error) {
	if inputAmount.IsNil() || inputAmount.IsZero() {
		return math.ZeroInt(), types.ErrZeroAmount.Wrap("input amount")
	}
	if inputAmount.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("input amount %s is negative", inputAmount)
	}
	if !inputReserve.IsPositive() || !outputReserve.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf(
			"reserves must be positive, got %s/%s", inputReserve, outputReserve)
	}

	inputWithFee := inputAmount.Mul(params.FeeNumerator)
	numerator := inputWithFee.Mul(outputReserve)
	denominator := inputReserve.Mul(params.FeeDenominator).Add(inputWithFee)

	return numerator.Quo(denominator), nil
}

// InputForOutput prices an exact-output trade with the inverse formula:
//
//	in = floor(inReserve*out*1000 / ((outReserve-out)*997))
//
// Truncation again favors the pool. Requesting the whole output reserve (or
// more) fails with ErrReserveExhausted before any subtraction happens, so the
// reserve arithmetic can never underflow.
func InputForOutput(outputAmount, inputReserve, outputReserve math.Int, params types.Params) (math.Int, error) {
	if outputAmount.IsNil() || outputAmount.IsZero() {
		return math.ZeroInt(), types.ErrZeroAmount.Wrap("output amount")
	}
	if outputAmount.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf("output amount %s is negative", outputAmount)
	}
	if outputReserve.IsNil() || outputReserve.IsZero() {
		return math.ZeroInt(), types.ErrZeroAmount.Wrap("output reserve")
	}
	if !inputReserve.IsPositive() || outputReserve.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrapf(
			"reserves must be positive, got %s/%s", inputReserve, outputReserve)
	}
	if outputAmount.GTE(outputReserve) {
		return math.ZeroInt(), types.ErrReserveExhausted.Wrapf(
			"requested %s of a %s reserve", outputAmount, outputReserve)
	}

	numerator := inputReserve.Mul(outputAmount).Mul(params.FeeDenominator)
	denominator := outputReserve.Sub(outputAmount).Mul(params.FeeNumerator)

	return numerator.Quo(denominator), nil
}
