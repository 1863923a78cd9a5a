package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

func TestCreatePool(t *testing.T) {
	f := newFixture(t, testParams())

	pool, err := f.keeper.CreatePool(f.ctx, denomA, denomB)
	require.NoError(t, err)
	require.Equal(t, uint64(1), pool.Id)
	require.Equal(t, denomA, pool.AssetA)
	require.Equal(t, denomB, pool.AssetB)
	require.False(t, pool.Seeded())
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.ReserveB.IsZero())

	t.Run("duplicate pair rejected", func(t *testing.T) {
		_, err := f.keeper.CreatePool(f.ctx, denomA, denomB)
		require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
	})

	t.Run("duplicate pair rejected in reverse order", func(t *testing.T) {
		_, err := f.keeper.CreatePool(f.ctx, denomB, denomA)
		require.ErrorIs(t, err, types.ErrPoolAlreadyExists)
	})

	t.Run("self pair rejected", func(t *testing.T) {
		_, err := f.keeper.CreatePool(f.ctx, denomA, denomA)
		require.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("empty denom rejected", func(t *testing.T) {
		_, err := f.keeper.CreatePool(f.ctx, "", denomB)
		require.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("second pair gets the next id", func(t *testing.T) {
		pool, err := f.keeper.CreatePool(f.ctx, denomA, "uatom")
		require.NoError(t, err)
		require.Equal(t, uint64(2), pool.Id)
	})
}

func TestGetPool(t *testing.T) {
	f := newFixture(t, testParams())
	seeded := f.seededPool(100000, 50000)

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.keeper.GetPool(f.ctx, 99)
		require.ErrorIs(t, err, types.ErrPoolNotFound)
	})

	t.Run("returns a copy", func(t *testing.T) {
		got, err := f.keeper.GetPool(f.ctx, seeded.Id)
		require.NoError(t, err)
		got.ReserveA = math.NewInt(1)

		again, err := f.keeper.GetPool(f.ctx, seeded.Id)
		require.NoError(t, err)
		require.Equal(t, math.NewInt(100000), again.ReserveA)
	})
}

func TestGetPoolByAssets(t *testing.T) {
	f := newFixture(t, testParams())
	seeded := f.seededPool(100000, 50000)

	got, err := f.keeper.GetPoolByAssets(f.ctx, denomA, denomB)
	require.NoError(t, err)
	require.Equal(t, seeded.Id, got.Id)

	reversed, err := f.keeper.GetPoolByAssets(f.ctx, denomB, denomA)
	require.NoError(t, err)
	require.Equal(t, seeded.Id, reversed.Id)

	_, err = f.keeper.GetPoolByAssets(f.ctx, denomA, "uatom")
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}
