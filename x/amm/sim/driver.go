package sim

import (
	"context"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/keeper"
	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Action is the closed enumeration of calls the driver may generate.
// Narrowing the unconstrained input space to these forms, with parameters
// clamped into their valid domains, keeps the exploration on economically
// meaningful sequences instead of rejected garbage calls.
type Action string

const (
	ActionDeposit   Action = "deposit"
	ActionSwapAForB Action = "swap_a_for_b"
	ActionSwapBForA Action = "swap_b_for_a"
)

// maxActionAmount caps clamped parameters at the largest representable
// 64-bit magnitude
var maxActionAmount = math.NewIntFromUint64(^uint64(0))

// Driver generates individually well-formed calls against the engine,
// pre-funding the acting party through the bank before each one, and records
// a ghost around every call: the pre-call snapshot, the oracle's expected
// deltas for the same logical parameters, and the observed deltas.
//
// The driver and the oracle never write reserves directly; every mutation
// goes through the engine's public operations.
type Driver struct {
	keeper *keeper.Keeper
	bank   types.BankKeeper
	oracle *Oracle
	logger log.Logger

	poolID uint64
	actor  string
	step   int
}

// NewDriver wires a driver to one pool and one acting party
func NewDriver(k *keeper.Keeper, bank types.BankKeeper, oracle *Oracle, poolID uint64, actor string, logger log.Logger) *Driver {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Driver{
		keeper: k,
		bank:   bank,
		oracle: oracle,
		logger: logger.With("component", "driver"),
		poolID: poolID,
		actor:  actor,
	}
}

// Deposit clamps rawAmount into [minimumSeedDeposit, maxActionAmount],
// pre-funds the actor with both legs, and drives a ratio-preserving deposit.
// The returned bool reports whether a call was actually made.
func (d *Driver) Deposit(ctx context.Context, rawAmount math.Int) (Ghost, bool, error) {
	pre, err := d.keeper.GetPool(ctx, d.poolID)
	if err != nil {
		return Ghost{}, false, err
	}

	desiredB := clampInt(rawAmount, d.keeper.GetParams().MinimumSeedDeposit, maxActionAmount)
	expectedA, expectedB := d.oracle.ExpectedDepositDeltas(pre, desiredB)

	if err := d.bank.MintCoins(ctx, d.actor, pre.AssetA, expectedA); err != nil {
		return Ghost{}, false, err
	}
	if err := d.bank.MintCoins(ctx, d.actor, pre.AssetB, desiredB); err != nil {
		return Ghost{}, false, err
	}

	_, _, err = d.keeper.Deposit(ctx, d.actor, d.poolID,
		desiredB, math.ZeroInt(), expectedA, d.deadline())
	if err != nil {
		return Ghost{}, false, err
	}

	ghost, err := d.finishGhost(ctx, ActionDeposit, pre, expectedA, expectedB)
	return ghost, true, err
}

// SwapExactOutput clamps rawOutput into [1, outputReserve-1], pre-funds the
// actor with the inverse-formula input, and drives an exact-output swap.
// When the clamp cannot leave the reserve positive the call is skipped as a
// no-op, not a failure.
func (d *Driver) SwapExactOutput(ctx context.Context, direction types.SwapDirection, rawOutput math.Int) (Ghost, bool, error) {
	pre, err := d.keeper.GetPool(ctx, d.poolID)
	if err != nil {
		return Ghost{}, false, err
	}

	assetOut, reserveOut := pre.AssetB, pre.ReserveB
	if direction == types.SwapBForA {
		assetOut, reserveOut = pre.AssetA, pre.ReserveA
	}

	ceiling := reserveOut.Sub(math.OneInt())
	if !ceiling.IsPositive() {
		d.logger.Debug("swap skipped, reserve too thin",
			"pool_id", d.poolID, "asset", assetOut, "reserve", reserveOut.String())
		return Ghost{}, false, nil
	}
	outputAmount := clampInt(rawOutput, math.OneInt(), ceiling)

	expectedA, expectedB := d.oracle.ExpectedSwapExactOutputDeltas(pre, direction, outputAmount)
	requiredInput, assetIn := expectedA, pre.AssetA
	if direction == types.SwapBForA {
		requiredInput, assetIn = expectedB, pre.AssetB
	}

	if err := d.bank.MintCoins(ctx, d.actor, assetIn, requiredInput); err != nil {
		return Ghost{}, false, err
	}

	action := ActionSwapAForB
	if direction == types.SwapBForA {
		action = ActionSwapBForA
	}

	_, err = d.keeper.SwapExactOutput(ctx, d.actor, d.poolID,
		assetOut, outputAmount, requiredInput, d.deadline())
	if err != nil {
		return Ghost{}, false, err
	}

	ghost, err := d.finishGhost(ctx, action, pre, expectedA, expectedB)
	return ghost, true, err
}

// finishGhost reads the post-call reserves and assembles the ghost record
func (d *Driver) finishGhost(ctx context.Context, action Action, pre types.Pool, expectedA, expectedB math.Int) (Ghost, error) {
	post, err := d.keeper.GetPool(ctx, d.poolID)
	if err != nil {
		return Ghost{}, err
	}
	d.step++
	return Ghost{
		Step:             d.step,
		Action:           action,
		StartingReserveA: pre.ReserveA,
		StartingReserveB: pre.ReserveB,
		ExpectedDeltaA:   expectedA,
		ExpectedDeltaB:   expectedB,
		ActualDeltaA:     post.ReserveA.Sub(pre.ReserveA),
		ActualDeltaB:     post.ReserveB.Sub(pre.ReserveB),
	}, nil
}

// Step returns the number of calls driven so far
func (d *Driver) Step() int {
	return d.step
}

func (d *Driver) deadline() time.Time {
	return time.Now().Add(time.Hour)
}

// clampInt forces x into [lo, hi]
func clampInt(x, lo, hi math.Int) math.Int {
	if x.IsNil() || x.LT(lo) {
		return lo
	}
	if x.GT(hi) {
		return hi
	}
	return x
}
