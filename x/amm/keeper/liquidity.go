package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Liquidity operations. Reserve and supply updates are committed before any
// asset transfer is issued: transfers are synchronous calls that may re-enter
// the engine, and a re-entrant call must observe the post-effect state. A
// failed transfer restores the pre-call snapshot so every operation stays
// atomic.

// Seed performs the first deposit into an unseeded pool. The A-side amount
// must meet the minimum seed floor; liquidity units are minted 1:1 with it,
// which fixes the pricing ratio for every subsequent deposit.
func (k *Keeper) Seed(ctx context.Context, provider string, poolID uint64, amountA, amountB math.Int, deadline time.Time) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if amountA.IsNil() || amountA.IsZero() || amountB.IsNil() || amountB.IsZero() {
		return math.ZeroInt(), types.ErrZeroAmount.Wrap("seed amounts")
	}
	if amountA.IsNegative() || amountB.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("seed amounts must be positive")
	}

	pool, err := k.mustPool(poolID)
	if err != nil {
		return math.ZeroInt(), err
	}
	if pool.Seeded() {
		return math.ZeroInt(), types.ErrAlreadySeeded.Wrapf("pool %d", poolID)
	}
	if amountA.LT(k.params.MinimumSeedDeposit) {
		return math.ZeroInt(), types.ErrBelowMinimumSeed.Wrapf(
			"amount %s below floor %s", amountA, k.params.MinimumSeedDeposit)
	}

	// Effects before interactions
	snapshot := *pool
	liquidityMinted := amountA
	pool.ReserveA = amountA
	pool.ReserveB = amountB
	pool.LiquiditySupply = liquidityMinted
	k.setLiquidity(poolID, provider, liquidityMinted)

	if err := k.pullBoth(ctx, provider, pool.AssetA, amountA, pool.AssetB, amountB); err != nil {
		*pool = snapshot
		k.setLiquidity(poolID, provider, math.ZeroInt())
		return math.ZeroInt(), err
	}

	k.logger.Info(types.EventTypePoolSeeded,
		"pool_id", poolID,
		"provider", provider,
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"liquidity", liquidityMinted.String(),
	)

	return liquidityMinted, nil
}

// Deposit adds liquidity to a seeded pool at the current ratio. The caller
// fixes the B-side amount; the engine derives the A-side counterpart as
//
//	requiredA = reserveA * desiredB / reserveB
//
// and the minted units as liquiditySupply * desiredB / reserveB. Either the
// A-side cap or the liquidity floor failing is a slippage rejection.
func (k *Keeper) Deposit(ctx context.Context, provider string, poolID uint64, desiredB, minLiquidityOut, maxAIn math.Int, deadline time.Time) (requiredA, liquidityMinted math.Int, err error) {
	requiredA, liquidityMinted = math.ZeroInt(), math.ZeroInt()

	if err = k.checkDeadline(deadline); err != nil {
		return requiredA, liquidityMinted, err
	}
	if desiredB.IsNil() || desiredB.IsZero() {
		return requiredA, liquidityMinted, types.ErrZeroAmount.Wrap("deposit amount")
	}
	if desiredB.IsNegative() {
		return requiredA, liquidityMinted, types.ErrInvalidInput.Wrap("deposit amount must be positive")
	}
	if minLiquidityOut.IsNil() || maxAIn.IsNil() || minLiquidityOut.IsNegative() || maxAIn.IsNegative() {
		return requiredA, liquidityMinted, types.ErrInvalidInput.Wrap("bounds must be non-negative")
	}

	pool, err := k.mustPool(poolID)
	if err != nil {
		return requiredA, liquidityMinted, err
	}
	if !pool.Seeded() {
		return requiredA, liquidityMinted, types.ErrNotSeeded.Wrapf("pool %d", poolID)
	}

	requiredA = pool.ReserveA.Mul(desiredB).Quo(pool.ReserveB)
	if requiredA.GT(maxAIn) {
		err = types.ErrSlippageExceeded.Wrapf(
			"required %s of %s exceeds cap %s", requiredA, pool.AssetA, maxAIn)
		return math.ZeroInt(), math.ZeroInt(), err
	}

	liquidityMinted = pool.LiquiditySupply.Mul(desiredB).Quo(pool.ReserveB)
	if liquidityMinted.LT(minLiquidityOut) {
		err = types.ErrSlippageExceeded.Wrapf(
			"would mint %s liquidity, floor is %s", liquidityMinted, minLiquidityOut)
		return math.ZeroInt(), math.ZeroInt(), err
	}

	// Effects before interactions
	snapshot := *pool
	prevShares := k.GetLiquidity(poolID, provider)
	pool.ReserveA = pool.ReserveA.Add(requiredA)
	pool.ReserveB = pool.ReserveB.Add(desiredB)
	pool.LiquiditySupply = pool.LiquiditySupply.Add(liquidityMinted)
	k.setLiquidity(poolID, provider, prevShares.Add(liquidityMinted))

	if err = k.pullBoth(ctx, provider, pool.AssetA, requiredA, pool.AssetB, desiredB); err != nil {
		*pool = snapshot
		k.setLiquidity(poolID, provider, prevShares)
		return math.ZeroInt(), math.ZeroInt(), err
	}

	k.logger.Info(types.EventTypeLiquidityAdded,
		"pool_id", poolID,
		"provider", provider,
		"amount_a", requiredA.String(),
		"amount_b", desiredB.String(),
		"liquidity", liquidityMinted.String(),
	)

	return requiredA, liquidityMinted, nil
}

// Withdraw burns liquidity units for a proportional share of both reserves.
// Draining the pool completely is rejected: reserves stay strictly positive
// once seeded.
func (k *Keeper) Withdraw(ctx context.Context, provider string, poolID uint64, liquidityIn, minAOut, minBOut math.Int, deadline time.Time) (amountA, amountB math.Int, err error) {
	amountA, amountB = math.ZeroInt(), math.ZeroInt()

	if err = k.checkDeadline(deadline); err != nil {
		return amountA, amountB, err
	}
	if liquidityIn.IsNil() || liquidityIn.IsZero() {
		return amountA, amountB, types.ErrZeroAmount.Wrap("liquidity to burn")
	}
	if liquidityIn.IsNegative() {
		return amountA, amountB, types.ErrInvalidInput.Wrap("liquidity to burn must be positive")
	}
	if minAOut.IsNil() || minBOut.IsNil() || minAOut.IsNegative() || minBOut.IsNegative() {
		return amountA, amountB, types.ErrInvalidInput.Wrap("bounds must be non-negative")
	}

	pool, err := k.mustPool(poolID)
	if err != nil {
		return amountA, amountB, err
	}
	if !pool.Seeded() {
		return amountA, amountB, types.ErrNotSeeded.Wrapf("pool %d", poolID)
	}

	shares := k.GetLiquidity(poolID, provider)
	if liquidityIn.GT(shares) {
		return amountA, amountB, types.ErrInsufficientFunds.Wrapf(
			"have %s liquidity, burning %s", shares, liquidityIn)
	}
	if liquidityIn.GTE(pool.LiquiditySupply) {
		return amountA, amountB, types.ErrReserveExhausted.Wrapf(
			"burning %s of %s supply would empty the pool", liquidityIn, pool.LiquiditySupply)
	}

	amountA = pool.ReserveA.Mul(liquidityIn).Quo(pool.LiquiditySupply)
	amountB = pool.ReserveB.Mul(liquidityIn).Quo(pool.LiquiditySupply)
	if amountA.LT(minAOut) || amountB.LT(minBOut) {
		err = types.ErrSlippageExceeded.Wrapf(
			"redeems %s/%s, floors %s/%s", amountA, amountB, minAOut, minBOut)
		return math.ZeroInt(), math.ZeroInt(), err
	}

	// Effects before interactions
	snapshot := *pool
	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.LiquiditySupply = pool.LiquiditySupply.Sub(liquidityIn)
	k.setLiquidity(poolID, provider, shares.Sub(liquidityIn))

	if err = k.pushBoth(ctx, provider, pool.AssetA, amountA, pool.AssetB, amountB); err != nil {
		*pool = snapshot
		k.setLiquidity(poolID, provider, shares)
		return math.ZeroInt(), math.ZeroInt(), err
	}

	k.logger.Info(types.EventTypeLiquidityBurned,
		"pool_id", poolID,
		"provider", provider,
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"liquidity", liquidityIn.String(),
	)

	return amountA, amountB, nil
}

// pullBoth moves both legs of a deposit from the provider to the reserves
func (k *Keeper) pullBoth(ctx context.Context, provider, assetA string, amountA math.Int, assetB string, amountB math.Int) error {
	if err := k.bankKeeper.SendCoins(ctx, provider, k.moduleAddr, assetA, amountA); err != nil {
		return types.ErrInsufficientFunds.Wrapf("pull %s %s: %v", amountA, assetA, err)
	}
	if err := k.bankKeeper.SendCoins(ctx, provider, k.moduleAddr, assetB, amountB); err != nil {
		// Return the first leg so the failed call has no effect
		if refundErr := k.bankKeeper.SendCoins(ctx, k.moduleAddr, provider, assetA, amountA); refundErr != nil {
			k.logger.Error("failed to refund first deposit leg",
				"provider", provider,
				"asset", assetA,
				"amount", amountA.String(),
				"error", refundErr,
			)
		}
		return types.ErrInsufficientFunds.Wrapf("pull %s %s: %v", amountB, assetB, err)
	}
	return nil
}

// pushBoth moves both legs of a withdrawal from the reserves to the provider
func (k *Keeper) pushBoth(ctx context.Context, provider, assetA string, amountA math.Int, assetB string, amountB math.Int) error {
	if err := k.bankKeeper.SendCoins(ctx, k.moduleAddr, provider, assetA, amountA); err != nil {
		return types.ErrInsufficientFunds.Wrapf("push %s %s: %v", amountA, assetA, err)
	}
	if err := k.bankKeeper.SendCoins(ctx, k.moduleAddr, provider, assetB, amountB); err != nil {
		if refundErr := k.bankKeeper.SendCoins(ctx, provider, k.moduleAddr, assetA, amountA); refundErr != nil {
			k.logger.Error("failed to reclaim first withdrawal leg",
				"provider", provider,
				"asset", assetA,
				"amount", amountA.String(),
				"error", refundErr,
			)
		}
		return types.ErrInsufficientFunds.Wrapf("push %s %s: %v", amountB, assetB, err)
	}
	return nil
}
