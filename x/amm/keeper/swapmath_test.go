package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/pooldrift/pooldrift/x/amm/keeper"
	"github.com/pooldrift/pooldrift/x/amm/types"
)

// TestOutputForInput pins the exact-input formula with hand-computed
// fixtures. The 493 case also guards the fee constant's placement: with the
// denominator misapplied as 10000 the same trade would price at 49.
func TestOutputForInput(t *testing.T) {
	params := types.DefaultParams()

	tests := []struct {
		name          string
		inputAmount   int64
		inputReserve  int64
		outputReserve int64
		want          int64
		wantErr       error
	}{
		{
			name:          "unit input against 100/50",
			inputAmount:   1,
			inputReserve:  100,
			outputReserve: 50,
			// floor(1*997*50 / (100*1000 + 1*997)) = floor(49850/100997)
			want: 0,
		},
		{
			name:          "thousand input against 100000/50000",
			inputAmount:   1000,
			inputReserve:  100000,
			outputReserve: 50000,
			// floor(1000*997*50000 / (100000*1000 + 1000*997)) = 493
			want: 493,
		},
		{
			name:          "balanced pool keeps fee",
			inputAmount:   10000,
			inputReserve:  1000000,
			outputReserve: 1000000,
			// floor(10000*997*1e6 / (1e6*1000 + 10000*997)) = 9871
			want: 9871,
		},
		{
			name:          "zero input",
			inputAmount:   0,
			inputReserve:  100,
			outputReserve: 50,
			wantErr:       types.ErrZeroAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keeper.OutputForInput(
				math.NewInt(tt.inputAmount),
				math.NewInt(tt.inputReserve),
				math.NewInt(tt.outputReserve),
				params,
			)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tt.want), got)
		})
	}
}

// TestInputForOutput pins the inverse formula and its guards
func TestInputForOutput(t *testing.T) {
	params := types.DefaultParams()

	tests := []struct {
		name          string
		outputAmount  int64
		inputReserve  int64
		outputReserve int64
		want          int64
		wantErr       error
	}{
		{
			name:          "unit output against 100/50",
			outputAmount:  1,
			inputReserve:  100,
			outputReserve: 50,
			// floor(100*1*1000 / ((50-1)*997)) = floor(100000/48853)
			want: 2,
		},
		{
			name:          "five hundred output against 100000/50000",
			outputAmount:  500,
			inputReserve:  100000,
			outputReserve: 50000,
			// floor(100000*500*1000 / (49500*997)) = 1013
			want: 1013,
		},
		{
			name:          "zero output",
			outputAmount:  0,
			inputReserve:  100,
			outputReserve: 50,
			wantErr:       types.ErrZeroAmount,
		},
		{
			name:          "zero output reserve",
			outputAmount:  1,
			inputReserve:  100,
			outputReserve: 0,
			wantErr:       types.ErrZeroAmount,
		},
		{
			name:          "output equals reserve",
			outputAmount:  50,
			inputReserve:  100,
			outputReserve: 50,
			wantErr:       types.ErrReserveExhausted,
		},
		{
			name:          "output above reserve",
			outputAmount:  51,
			inputReserve:  100,
			outputReserve: 50,
			wantErr:       types.ErrReserveExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keeper.InputForOutput(
				math.NewInt(tt.outputAmount),
				math.NewInt(tt.inputReserve),
				math.NewInt(tt.outputReserve),
				params,
			)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, math.NewInt(tt.want), got)
		})
	}
}

// TestRoundTripFavorsPool checks that pricing a trade in one direction and
// back never pays out more than was put in: truncation always favors the
// pool.
func TestRoundTripFavorsPool(t *testing.T) {
	params := types.DefaultParams()

	reserveIn := math.NewInt(1_000_000)
	reserveOut := math.NewInt(500_000)

	for _, amount := range []int64{1, 7, 100, 9999, 123_456} {
		out, err := keeper.OutputForInput(math.NewInt(amount), reserveIn, reserveOut, params)
		require.NoError(t, err)
		if out.IsZero() {
			continue
		}
		in, err := keeper.InputForOutput(out, reserveIn, reserveOut, params)
		require.NoError(t, err)
		require.True(t, in.LTE(math.NewInt(amount)),
			"inverse of %d priced at %s, above the original input", amount, in)
	}
}
