package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

func TestPoolSeeded(t *testing.T) {
	pool := types.NewPool(1, "upool", "uweth")
	require.False(t, pool.Seeded())

	pool.ReserveA = math.NewInt(100)
	pool.ReserveB = math.NewInt(50)
	pool.LiquiditySupply = math.NewInt(100)
	require.True(t, pool.Seeded())
}

func TestPoolOtherAsset(t *testing.T) {
	pool := types.NewPool(1, "upool", "uweth")

	other, err := pool.OtherAsset("upool")
	require.NoError(t, err)
	require.Equal(t, "uweth", other)

	other, err = pool.OtherAsset("uweth")
	require.NoError(t, err)
	require.Equal(t, "upool", other)

	_, err = pool.OtherAsset("uatom")
	require.ErrorIs(t, err, types.ErrInvalidAsset)

	require.True(t, pool.HasAsset("upool"))
	require.False(t, pool.HasAsset("uatom"))
}

func TestPoolValidate(t *testing.T) {
	seeded := func() types.Pool {
		pool := types.NewPool(1, "upool", "uweth")
		pool.ReserveA = math.NewInt(100)
		pool.ReserveB = math.NewInt(50)
		pool.LiquiditySupply = math.NewInt(100)
		return pool
	}

	require.NoError(t, types.NewPool(1, "upool", "uweth").Validate())
	require.NoError(t, seeded().Validate())

	tests := []struct {
		name    string
		mutate  func(*types.Pool)
		wantErr error
	}{
		{
			name:    "empty denom",
			mutate:  func(p *types.Pool) { p.AssetA = "" },
			wantErr: types.ErrInvalidInput,
		},
		{
			name:    "identical denoms",
			mutate:  func(p *types.Pool) { p.AssetB = p.AssetA },
			wantErr: types.ErrInvalidInput,
		},
		{
			name:    "nil reserve",
			mutate:  func(p *types.Pool) { p.ReserveA = math.Int{} },
			wantErr: types.ErrInvalidInput,
		},
		{
			name:    "negative reserve",
			mutate:  func(p *types.Pool) { p.ReserveB = math.NewInt(-1) },
			wantErr: types.ErrInvariantBroken,
		},
		{
			name:    "seeded pool with an empty reserve",
			mutate:  func(p *types.Pool) { p.ReserveB = math.ZeroInt() },
			wantErr: types.ErrInvariantBroken,
		},
		{
			name: "unseeded pool holding reserves",
			mutate: func(p *types.Pool) {
				p.LiquiditySupply = math.ZeroInt()
			},
			wantErr: types.ErrInvariantBroken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := seeded()
			tt.mutate(&pool)
			require.ErrorIs(t, pool.Validate(), tt.wantErr)
		})
	}
}

func TestPoolProduct(t *testing.T) {
	pool := types.NewPool(1, "upool", "uweth")
	pool.ReserveA = math.NewInt(100)
	pool.ReserveB = math.NewInt(50)
	require.Equal(t, math.NewInt(5000), pool.Product())
}

func TestSwapRequestValidate(t *testing.T) {
	valid := types.SwapRequest{
		Direction: types.SwapAForB,
		Exact:     types.ExactOutput,
		Amount:    math.NewInt(100),
		Bound:     math.NewInt(250),
	}
	require.NoError(t, valid.Validate())

	zero := valid
	zero.Amount = math.ZeroInt()
	require.ErrorIs(t, zero.Validate(), types.ErrZeroAmount)

	negative := valid
	negative.Amount = math.NewInt(-1)
	require.ErrorIs(t, negative.Validate(), types.ErrInvalidInput)

	nilBound := valid
	nilBound.Bound = math.Int{}
	require.ErrorIs(t, nilBound.Validate(), types.ErrInvalidInput)

	require.Equal(t, "a_for_b", types.SwapAForB.String())
	require.Equal(t, "b_for_a", types.SwapBForA.String())
	require.Equal(t, "exact_input", types.ExactInput.String())
	require.Equal(t, "exact_output", types.ExactOutput.String())
}
