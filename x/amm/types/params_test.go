package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

func TestParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(*types.Params)
	}{
		{
			name:   "zero fee numerator",
			mutate: func(p *types.Params) { p.FeeNumerator = math.ZeroInt() },
		},
		{
			name:   "nil fee denominator",
			mutate: func(p *types.Params) { p.FeeDenominator = math.Int{} },
		},
		{
			name:   "fee above one",
			mutate: func(p *types.Params) { p.FeeNumerator = math.NewInt(1001) },
		},
		{
			name:   "zero seed floor",
			mutate: func(p *types.Params) { p.MinimumSeedDeposit = math.ZeroInt() },
		},
		{
			name:   "enabled bonus with zero interval",
			mutate: func(p *types.Params) { p.BonusInterval = 0 },
		},
		{
			name:   "enabled bonus with zero amount",
			mutate: func(p *types.Params) { p.BonusAmount = math.ZeroInt() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := types.DefaultParams()
			tt.mutate(&p)
			require.ErrorIs(t, p.Validate(), types.ErrInvalidInput)
		})
	}

	t.Run("disabled bonus skips bonus checks", func(t *testing.T) {
		p := types.DefaultParams()
		p.BonusEnabled = false
		p.BonusInterval = 0
		p.BonusAmount = math.Int{}
		require.NoError(t, p.Validate())
	})
}
