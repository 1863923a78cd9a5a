package types

import (
	"cosmossdk.io/math"
)

// Pool holds the reserve ledger for one asset pair: two reserve balances,
// the liquidity-token supply, and the swap counter feeding the bonus hook.
// A pool is created empty by the registry, seeded once by the first deposit
// (which fixes the initial price ratio), and never destroyed.
type Pool struct {
	Id              uint64
	AssetA          string
	AssetB          string
	ReserveA        math.Int
	ReserveB        math.Int
	LiquiditySupply math.Int
	SwapCounter     uint64
}

// NewPool returns an empty, unseeded pool for the given pair
func NewPool(id uint64, assetA, assetB string) Pool {
	return Pool{
		Id:              id,
		AssetA:          assetA,
		AssetB:          assetB,
		ReserveA:        math.ZeroInt(),
		ReserveB:        math.ZeroInt(),
		LiquiditySupply: math.ZeroInt(),
	}
}

// Seeded reports whether the pool has received its first deposit.
// LiquiditySupply is positive iff the pool is seeded.
func (p Pool) Seeded() bool {
	return !p.LiquiditySupply.IsNil() && p.LiquiditySupply.IsPositive()
}

// Product returns reserveA * reserveB, the constant-product target
func (p Pool) Product() math.Int {
	return p.ReserveA.Mul(p.ReserveB)
}

// HasAsset reports whether denom is one of the pool's two assets
func (p Pool) HasAsset(denom string) bool {
	return denom == p.AssetA || denom == p.AssetB
}

// OtherAsset returns the counterpart of denom within the pair
func (p Pool) OtherAsset(denom string) (string, error) {
	switch denom {
	case p.AssetA:
		return p.AssetB, nil
	case p.AssetB:
		return p.AssetA, nil
	default:
		return "", ErrInvalidAsset.Wrapf("pool %d holds %s/%s, not %s", p.Id, p.AssetA, p.AssetB, denom)
	}
}

// Validate checks the pool's structural invariants: a seeded pool has
// strictly positive reserves, an unseeded pool has none.
func (p Pool) Validate() error {
	if p.AssetA == "" || p.AssetB == "" {
		return ErrInvalidInput.Wrap("asset denoms cannot be empty")
	}
	if p.AssetA == p.AssetB {
		return ErrInvalidInput.Wrapf("pool assets must differ, got %s twice", p.AssetA)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.LiquiditySupply.IsNil() {
		return ErrInvalidInput.Wrap("pool amounts cannot be nil")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() || p.LiquiditySupply.IsNegative() {
		return ErrInvariantBroken.Wrapf(
			"pool %d has negative amounts: reserveA=%s reserveB=%s supply=%s",
			p.Id, p.ReserveA, p.ReserveB, p.LiquiditySupply)
	}
	if p.Seeded() {
		if !p.ReserveA.IsPositive() || !p.ReserveB.IsPositive() {
			return ErrInvariantBroken.Wrapf(
				"seeded pool %d has empty reserve: reserveA=%s reserveB=%s",
				p.Id, p.ReserveA, p.ReserveB)
		}
	} else if !p.ReserveA.IsZero() || !p.ReserveB.IsZero() {
		return ErrInvariantBroken.Wrapf(
			"unseeded pool %d holds reserves: reserveA=%s reserveB=%s",
			p.Id, p.ReserveA, p.ReserveB)
	}
	return nil
}
