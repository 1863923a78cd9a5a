package keeper

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Keeper is the pool engine: it owns every pool's reserve ledger and mutates
// it only through the public operations. Execution is single-threaded and
// call-atomic; the keeper is not safe for concurrent use.
type Keeper struct {
	bankKeeper types.BankKeeper
	params     types.Params
	logger     log.Logger

	// now supplies the current time for deadline checks. Deadlines are data
	// validated inside a call, not scheduling primitives.
	now func() time.Time

	moduleAddr  string
	pools       map[uint64]*types.Pool
	poolsByPair map[string]uint64
	positions   map[uint64]map[string]math.Int
	nextPoolID  uint64
}

// NewKeeper creates a pool engine over the given bank collaborator.
// A nil clock defaults to time.Now.
func NewKeeper(bankKeeper types.BankKeeper, params types.Params, logger log.Logger, now func() time.Time) (*Keeper, error) {
	if bankKeeper == nil {
		return nil, types.ErrInvalidInput.Wrap("bank keeper is required")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if now == nil {
		now = time.Now
	}
	return &Keeper{
		bankKeeper:  bankKeeper,
		params:      params,
		logger:      logger.With("module", types.ModuleName),
		now:         now,
		moduleAddr:  types.ModuleAccount,
		pools:       make(map[uint64]*types.Pool),
		poolsByPair: make(map[string]uint64),
		positions:   make(map[uint64]map[string]math.Int),
		nextPoolID:  1,
	}, nil
}

// GetParams returns the engine's immutable configuration
func (k *Keeper) GetParams() types.Params {
	return k.params
}

// GetModuleAddress returns the account holding all pool reserves
func (k *Keeper) GetModuleAddress() string {
	return k.moduleAddr
}

// Logger returns the keeper's logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// checkDeadline rejects once the caller-supplied deadline has elapsed.
// Applied to every deadline-gated operation, seed and deposit included.
func (k *Keeper) checkDeadline(deadline time.Time) error {
	if now := k.now(); now.After(deadline) {
		return types.ErrDeadlineExpired.Wrapf("deadline %s, now %s",
			deadline.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}
	return nil
}

// mustPool returns the live pool record for internal mutation
func (k *Keeper) mustPool(poolID uint64) (*types.Pool, error) {
	pool, ok := k.pools[poolID]
	if !ok {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	return pool, nil
}

// GetLiquidity returns a holder's liquidity-token balance in a pool
func (k *Keeper) GetLiquidity(poolID uint64, provider string) math.Int {
	shares, ok := k.positions[poolID][provider]
	if !ok {
		return math.ZeroInt()
	}
	return shares
}

// reserveTotals sums recorded reserves per denom across all pools
func (k *Keeper) reserveTotals() map[string]math.Int {
	totals := make(map[string]math.Int)
	add := func(denom string, amount math.Int) {
		if existing, ok := totals[denom]; ok {
			totals[denom] = existing.Add(amount)
			return
		}
		totals[denom] = amount
	}
	for _, pool := range k.pools {
		add(pool.AssetA, pool.ReserveA)
		add(pool.AssetB, pool.ReserveB)
	}
	return totals
}

func (k *Keeper) setLiquidity(poolID uint64, provider string, shares math.Int) {
	byProvider, ok := k.positions[poolID]
	if !ok {
		byProvider = make(map[string]math.Int)
		k.positions[poolID] = byProvider
	}
	if shares.IsZero() {
		delete(byProvider, provider)
		return
	}
	byProvider[provider] = shares
}
