package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/pooldrift/pooldrift/testutil/bank"
	"github.com/pooldrift/pooldrift/x/amm/keeper"
	"github.com/pooldrift/pooldrift/x/amm/types"
)

const (
	denomA   = "upool"
	denomB   = "uweth"
	provider = "provider"
	trader   = "trader"
)

// fixture wires an engine over a fresh in-memory bank with a frozen clock,
// so deadline behavior is deterministic.
type fixture struct {
	t      *testing.T
	ctx    context.Context
	bank   *bank.Bank
	keeper *keeper.Keeper
	now    time.Time
}

func testParams() types.Params {
	p := types.DefaultParams()
	p.MinimumSeedDeposit = math.NewInt(100)
	p.BonusAmount = math.NewInt(1)
	p.BonusEnabled = false
	return p
}

func newFixture(t *testing.T, params types.Params) *fixture {
	t.Helper()
	now := time.Unix(1_700_000_000, 0).UTC()
	ledger := bank.New()
	k, err := keeper.NewKeeper(ledger, params, log.NewTestLogger(t), func() time.Time { return now })
	require.NoError(t, err)
	return &fixture{
		t:      t,
		ctx:    context.Background(),
		bank:   ledger,
		keeper: k,
		now:    now,
	}
}

func (f *fixture) fund(addr, denom string, amount int64) {
	f.t.Helper()
	require.NoError(f.t, f.bank.MintCoins(f.ctx, addr, denom, math.NewInt(amount)))
}

func (f *fixture) balance(addr, denom string) math.Int {
	return f.bank.GetBalance(f.ctx, addr, denom)
}

// seededPool creates and seeds a denomA/denomB pool with the given reserves
func (f *fixture) seededPool(reserveA, reserveB int64) types.Pool {
	f.t.Helper()
	pool, err := f.keeper.CreatePool(f.ctx, denomA, denomB)
	require.NoError(f.t, err)

	f.fund(provider, denomA, reserveA)
	f.fund(provider, denomB, reserveB)
	_, err = f.keeper.Seed(f.ctx, provider, pool.Id,
		math.NewInt(reserveA), math.NewInt(reserveB), f.deadline())
	require.NoError(f.t, err)

	pool, err = f.keeper.GetPool(f.ctx, pool.Id)
	require.NoError(f.t, err)
	return pool
}

func (f *fixture) pool(poolID uint64) types.Pool {
	f.t.Helper()
	pool, err := f.keeper.GetPool(f.ctx, poolID)
	require.NoError(f.t, err)
	return pool
}

func (f *fixture) deadline() time.Time { return f.now.Add(time.Hour) }
func (f *fixture) expired() time.Time  { return f.now.Add(-time.Second) }

// hookBank wraps the in-memory ledger with a transfer interceptor, used to
// observe engine state mid-transfer and to inject transfer failures.
type hookBank struct {
	*bank.Bank
	onSend func(from, to, denom string, amount math.Int) error
}

func (h *hookBank) SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error {
	if h.onSend != nil {
		if err := h.onSend(from, to, denom, amount); err != nil {
			return err
		}
	}
	return h.Bank.SendCoins(ctx, from, to, denom, amount)
}

func TestNewKeeper(t *testing.T) {
	t.Run("nil bank rejected", func(t *testing.T) {
		_, err := keeper.NewKeeper(nil, testParams(), nil, nil)
		require.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("invalid params rejected", func(t *testing.T) {
		params := testParams()
		params.FeeNumerator = math.NewInt(1001)
		_, err := keeper.NewKeeper(bank.New(), params, nil, nil)
		require.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("nil logger and clock default", func(t *testing.T) {
		k, err := keeper.NewKeeper(bank.New(), testParams(), nil, nil)
		require.NoError(t, err)
		require.NotNil(t, k.Logger())
	})
}
