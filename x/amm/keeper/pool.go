package keeper

import (
	"context"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// The registry indexes pools by id and by ordered asset pair. It is a setup
// time collaborator: pools are created empty here and only ever mutated
// through the engine operations.

// CreatePool registers an empty, unseeded pool for the given pair.
// Returns ErrPoolAlreadyExists if a pool for the pair exists in either order.
func (k *Keeper) CreatePool(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	if assetA == "" || assetB == "" {
		return types.Pool{}, types.ErrInvalidInput.Wrap("asset denoms cannot be empty")
	}
	if assetA == assetB {
		return types.Pool{}, types.ErrInvalidInput.Wrapf("cannot pool %s against itself", assetA)
	}

	key := pairKey(assetA, assetB)
	if _, exists := k.poolsByPair[key]; exists {
		return types.Pool{}, types.ErrPoolAlreadyExists.Wrapf("pair %s/%s", assetA, assetB)
	}

	poolID := k.nextPoolID
	k.nextPoolID++

	pool := types.NewPool(poolID, assetA, assetB)
	if err := pool.Validate(); err != nil {
		return types.Pool{}, err
	}

	k.pools[poolID] = &pool
	k.poolsByPair[key] = poolID

	k.logger.Info(types.EventTypePoolCreated,
		"pool_id", poolID,
		"asset_a", assetA,
		"asset_b", assetB,
	)

	return pool, nil
}

// GetPool returns a snapshot of the pool by id.
// The returned value is a copy; callers never alias live engine state.
func (k *Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	pool, err := k.mustPool(poolID)
	if err != nil {
		return types.Pool{}, err
	}
	return *pool, nil
}

// GetPoolByAssets returns the pool for a pair, order-independent
func (k *Keeper) GetPoolByAssets(ctx context.Context, assetA, assetB string) (types.Pool, error) {
	poolID, ok := k.poolsByPair[pairKey(assetA, assetB)]
	if !ok {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pair %s/%s", assetA, assetB)
	}
	return k.GetPool(ctx, poolID)
}

// pairKey builds the order-independent registry key for an asset pair
func pairKey(assetA, assetB string) string {
	if assetA > assetB {
		assetA, assetB = assetB, assetA
	}
	return assetA + "/" + assetB
}
