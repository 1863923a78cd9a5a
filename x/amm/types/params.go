package types

import (
	"cosmossdk.io/math"
)

// Params is the immutable configuration handed to the pool engine at
// construction. Fee ratios and the bonus trigger are per-instance values, not
// globals, so multiple pools can run with varied parameters side by side.
type Params struct {
	// FeeNumerator over FeeDenominator is the share of each input that
	// trades; 997/1000 charges a 0.3% fee.
	FeeNumerator   math.Int
	FeeDenominator math.Int

	// MinimumSeedDeposit is the floor on the A-side amount of the first
	// deposit into a pool.
	MinimumSeedDeposit math.Int

	// BonusInterval and BonusAmount drive the periodic payout hook: every
	// BonusInterval-th swap pays BonusAmount of the output asset to the
	// trader, outside the constant-product formula, and resets the counter.
	// The payout makes the reserve product drift downward over time; it is
	// the documented hazard the verification harness exists to detect.
	BonusInterval uint64
	BonusAmount   math.Int
	BonusEnabled  bool
}

// DefaultParams returns the engine configuration of the audited system:
// a 0.3% swap fee, a 1e9 seed floor, and the bonus hook firing every ten
// swaps for one whole 18-decimal unit.
func DefaultParams() Params {
	return Params{
		FeeNumerator:       math.NewInt(997),
		FeeDenominator:     math.NewInt(1000),
		MinimumSeedDeposit: math.NewInt(1_000_000_000),
		BonusInterval:      10,
		BonusAmount:        math.NewIntWithDecimal(1, 18),
		BonusEnabled:       true,
	}
}

// Validate checks the parameter set
func (p Params) Validate() error {
	if p.FeeNumerator.IsNil() || !p.FeeNumerator.IsPositive() {
		return ErrInvalidInput.Wrap("fee numerator must be positive")
	}
	if p.FeeDenominator.IsNil() || !p.FeeDenominator.IsPositive() {
		return ErrInvalidInput.Wrap("fee denominator must be positive")
	}
	if p.FeeNumerator.GT(p.FeeDenominator) {
		return ErrInvalidInput.Wrapf(
			"fee numerator %s exceeds denominator %s", p.FeeNumerator, p.FeeDenominator)
	}
	if p.MinimumSeedDeposit.IsNil() || !p.MinimumSeedDeposit.IsPositive() {
		return ErrInvalidInput.Wrap("minimum seed deposit must be positive")
	}
	if p.BonusEnabled {
		if p.BonusInterval == 0 {
			return ErrInvalidInput.Wrap("bonus interval must be positive when the bonus is enabled")
		}
		if p.BonusAmount.IsNil() || !p.BonusAmount.IsPositive() {
			return ErrInvalidInput.Wrap("bonus amount must be positive when the bonus is enabled")
		}
	}
	return nil
}
