package keeper

import (
	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// SetPoolForTest overwrites a stored pool record, bypassing the engine
// operations. Used to plant corrupted state for invariant tests.
func (k *Keeper) SetPoolForTest(pool types.Pool) {
	k.pools[pool.Id] = &pool
}

// SetLiquidityForTest overwrites a tracked position, bypassing the engine
// operations.
func (k *Keeper) SetLiquidityForTest(poolID uint64, provider string, shares math.Int) {
	k.setLiquidity(poolID, provider, shares)
}
