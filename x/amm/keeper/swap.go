package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Swap operations. Both entry points share the same shape: validate, price
// via the pure formulas, commit reserve effects, run the post-swap bonus
// hook, then transfer. Every exit path assigns the returned amount; no path
// falls through to a defaulted zero.

// SwapExactInput trades a fixed input amount of assetIn for as much of the
// counterpart asset as the constant-product formula allows. Fails with
// ErrSlippageExceeded when the priced output is below minOutput.
func (k *Keeper) SwapExactInput(ctx context.Context, trader string, poolID uint64, assetIn string, inputAmount, minOutput math.Int, deadline time.Time) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if minOutput.IsNil() || minOutput.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("minimum output must be non-negative")
	}

	pool, assetOut, reserveIn, reserveOut, err := k.swapLegs(poolID, assetIn)
	if err != nil {
		return math.ZeroInt(), err
	}

	outputAmount, err := OutputForInput(inputAmount, reserveIn, reserveOut, k.params)
	if err != nil {
		return math.ZeroInt(), err
	}
	if outputAmount.LT(minOutput) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf(
			"output %s below minimum %s", outputAmount, minOutput)
	}
	if outputAmount.GTE(reserveOut) {
		return math.ZeroInt(), types.ErrReserveExhausted.Wrapf(
			"output %s of a %s reserve", outputAmount, reserveOut)
	}

	if err := k.settleSwap(ctx, trader, pool, assetIn, inputAmount, assetOut, outputAmount); err != nil {
		return math.ZeroInt(), err
	}
	return outputAmount, nil
}

// SwapExactOutput trades as little input as the inverse formula requires for
// a fixed output amount of assetOut. Fails with ErrSlippageExceeded when the
// priced input exceeds maxInput.
func (k *Keeper) SwapExactOutput(ctx context.Context, trader string, poolID uint64, assetOut string, outputAmount, maxInput math.Int, deadline time.Time) (math.Int, error) {
	if err := k.checkDeadline(deadline); err != nil {
		return math.ZeroInt(), err
	}
	if maxInput.IsNil() || maxInput.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidInput.Wrap("maximum input must be non-negative")
	}

	pool, assetIn, reserveOut, reserveIn, err := k.swapLegs(poolID, assetOut)
	if err != nil {
		return math.ZeroInt(), err
	}

	inputAmount, err := InputForOutput(outputAmount, reserveIn, reserveOut, k.params)
	if err != nil {
		return math.ZeroInt(), err
	}
	if inputAmount.GT(maxInput) {
		return math.ZeroInt(), types.ErrSlippageExceeded.Wrapf(
			"input %s above maximum %s", inputAmount, maxInput)
	}

	if err := k.settleSwap(ctx, trader, pool, assetIn, inputAmount, assetOut, outputAmount); err != nil {
		return math.ZeroInt(), err
	}
	return inputAmount, nil
}

// swapLegs resolves one named asset of a pool into the (pool, otherAsset,
// namedReserve, otherReserve) tuple used by both swap directions.
func (k *Keeper) swapLegs(poolID uint64, named string) (*types.Pool, string, math.Int, math.Int, error) {
	pool, err := k.mustPool(poolID)
	if err != nil {
		return nil, "", math.ZeroInt(), math.ZeroInt(), err
	}
	if !pool.Seeded() {
		return nil, "", math.ZeroInt(), math.ZeroInt(), types.ErrNotSeeded.Wrapf("pool %d", poolID)
	}
	other, err := pool.OtherAsset(named)
	if err != nil {
		return nil, "", math.ZeroInt(), math.ZeroInt(), err
	}
	if named == pool.AssetA {
		return pool, other, pool.ReserveA, pool.ReserveB, nil
	}
	return pool, other, pool.ReserveB, pool.ReserveA, nil
}

// settleSwap commits the reserve effects of a priced trade, applies the
// bonus hook, and only then performs the transfers. A failed transfer
// restores the pre-call snapshot.
func (k *Keeper) settleSwap(ctx context.Context, trader string, pool *types.Pool, assetIn string, inputAmount math.Int, assetOut string, outputAmount math.Int) error {
	snapshot := *pool

	if assetIn == pool.AssetA {
		pool.ReserveA = pool.ReserveA.Add(inputAmount)
		pool.ReserveB = pool.ReserveB.Sub(outputAmount)
	} else {
		pool.ReserveB = pool.ReserveB.Add(inputAmount)
		pool.ReserveA = pool.ReserveA.Sub(outputAmount)
	}

	bonus := k.afterSwap(pool, trader, assetOut)
	totalOut := outputAmount.Add(bonus)

	if err := k.bankKeeper.SendCoins(ctx, trader, k.moduleAddr, assetIn, inputAmount); err != nil {
		*pool = snapshot
		return types.ErrInsufficientFunds.Wrapf("pull %s %s: %v", inputAmount, assetIn, err)
	}
	if err := k.bankKeeper.SendCoins(ctx, k.moduleAddr, trader, assetOut, totalOut); err != nil {
		if refundErr := k.bankKeeper.SendCoins(ctx, k.moduleAddr, trader, assetIn, inputAmount); refundErr != nil {
			k.logger.Error("failed to refund swap input",
				"trader", trader,
				"asset", assetIn,
				"amount", inputAmount.String(),
				"error", refundErr,
			)
		}
		*pool = snapshot
		return types.ErrInsufficientFunds.Wrapf("push %s %s: %v", totalOut, assetOut, err)
	}

	k.logger.Info(types.EventTypeSwap,
		"pool_id", pool.Id,
		"trader", trader,
		"asset_in", assetIn,
		"amount_in", inputAmount.String(),
		"asset_out", assetOut,
		"amount_out", outputAmount.String(),
		"bonus", bonus.String(),
		"swap_counter", pool.SwapCounter,
	)

	return nil
}

// afterSwap is the post-accounting hook carrying the periodic bonus payout.
// Every BonusInterval-th swap pays BonusAmount of the output asset to the
// trader outside the constant-product formula and resets the counter. The
// payout is taken from the output reserve, so the reserve product drifts
// downward each time it fires, independent of trading fees. The hook is the
// fault-injection path the invariant harness is built to detect; it is kept
// behind Params.BonusEnabled rather than removed.
func (k *Keeper) afterSwap(pool *types.Pool, trader, assetOut string) math.Int {
	pool.SwapCounter++
	if !k.params.BonusEnabled || pool.SwapCounter < k.params.BonusInterval {
		return math.ZeroInt()
	}
	pool.SwapCounter = 0

	bonus := k.params.BonusAmount
	var reserveOut math.Int
	if assetOut == pool.AssetA {
		reserveOut = pool.ReserveA
	} else {
		reserveOut = pool.ReserveB
	}
	// The payout must leave a positive reserve behind
	if bonus.GTE(reserveOut) {
		k.logger.Info("bonus skipped",
			"pool_id", pool.Id,
			"asset", assetOut,
			"reserve", reserveOut.String(),
			"bonus", bonus.String(),
		)
		return math.ZeroInt()
	}

	if assetOut == pool.AssetA {
		pool.ReserveA = pool.ReserveA.Sub(bonus)
	} else {
		pool.ReserveB = pool.ReserveB.Sub(bonus)
	}

	k.logger.Info(types.EventTypeBonusPaid,
		"pool_id", pool.Id,
		"trader", trader,
		"asset", assetOut,
		"amount", bonus.String(),
	)

	return bonus
}
