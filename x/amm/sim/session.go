package sim

import (
	"context"
	"math/rand"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/testutil/bank"
	"github.com/pooldrift/pooldrift/x/amm/keeper"
	"github.com/pooldrift/pooldrift/x/amm/types"
)

// SessionConfig describes one independent fuzz session: engine parameters,
// the pool's pair and seed amounts, and the random sequence to drive.
type SessionConfig struct {
	Params types.Params

	AssetA string
	AssetB string
	SeedA  math.Int
	SeedB  math.Int

	Calls int
	Seed  int64
}

// DefaultSessionConfig seeds a 100/50 pool in 18-decimal units, the
// canonical shape the drift scenario is characterized against.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Params: types.DefaultParams(),
		AssetA: "upool",
		AssetB: "uweth",
		SeedA:  math.NewIntWithDecimal(100, 18),
		SeedB:  math.NewIntWithDecimal(50, 18),
		Calls:  200,
		Seed:   1,
	}
}

// Validate checks the session configuration
func (c SessionConfig) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.AssetA == "" || c.AssetB == "" || c.AssetA == c.AssetB {
		return types.ErrInvalidInput.Wrapf("invalid session pair %q/%q", c.AssetA, c.AssetB)
	}
	if c.SeedA.IsNil() || c.SeedB.IsNil() || !c.SeedA.IsPositive() || !c.SeedB.IsPositive() {
		return types.ErrInvalidInput.Wrap("seed amounts must be positive")
	}
	if c.SeedA.LT(c.Params.MinimumSeedDeposit) {
		return types.ErrBelowMinimumSeed.Wrapf(
			"session seed %s below floor %s", c.SeedA, c.Params.MinimumSeedDeposit)
	}
	if c.Calls <= 0 {
		return types.ErrInvalidInput.Wrap("calls must be positive")
	}
	return nil
}

// Session owns one fresh engine, bank, pool, driver and checker. Sessions
// share no mutable state with one another; within a session the reserves are
// owned exclusively by the engine.
type Session struct {
	cfg     SessionConfig
	bank    *bank.Bank
	keeper  *keeper.Keeper
	driver  *Driver
	checker Checker
	logger  log.Logger
	poolID  uint64
}

const (
	sessionProvider = "provider"
	sessionTrader   = "trader"
)

// NewSession builds a session: fresh bank and engine, one pool created and
// seeded per the config.
func NewSession(ctx context.Context, cfg SessionConfig, logger log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	ledger := bank.New()
	k, err := keeper.NewKeeper(ledger, cfg.Params, logger, nil)
	if err != nil {
		return nil, err
	}

	pool, err := k.CreatePool(ctx, cfg.AssetA, cfg.AssetB)
	if err != nil {
		return nil, err
	}
	if err := ledger.MintCoins(ctx, sessionProvider, cfg.AssetA, cfg.SeedA); err != nil {
		return nil, err
	}
	if err := ledger.MintCoins(ctx, sessionProvider, cfg.AssetB, cfg.SeedB); err != nil {
		return nil, err
	}
	if _, err := k.Seed(ctx, sessionProvider, pool.Id,
		cfg.SeedA, cfg.SeedB, time.Now().Add(time.Hour)); err != nil {
		return nil, err
	}

	oracle := NewOracle(cfg.Params)
	return &Session{
		cfg:    cfg,
		bank:   ledger,
		keeper: k,
		driver: NewDriver(k, ledger, oracle, pool.Id, sessionTrader, logger),
		logger: logger.With("component", "session"),
		poolID: pool.Id,
	}, nil
}

// Keeper exposes the engine under test
func (s *Session) Keeper() *keeper.Keeper { return s.keeper }

// Driver exposes the session's action driver
func (s *Session) Driver() *Driver { return s.driver }

// PoolID returns the session's pool
func (s *Session) PoolID() uint64 { return s.poolID }

// Run drives cfg.Calls random actions and checks the ghost after each one.
// It returns the first violating ghost, or nil when the whole sequence held,
// together with the number of executed calls.
func (s *Session) Run(ctx context.Context) (*Ghost, int, error) {
	rng := rand.New(rand.NewSource(s.cfg.Seed))
	executed := 0

	for i := 0; i < s.cfg.Calls; i++ {
		ghost, ok, err := s.randomAction(ctx, rng)
		if err != nil {
			return nil, executed, err
		}
		if !ok {
			continue
		}
		executed++

		if err := s.checker.Check(ghost); err != nil {
			s.logger.Info("invariant violation found",
				"seed", s.cfg.Seed,
				"executed", executed,
				"ghost", ghost.String(),
			)
			return &ghost, executed, nil
		}
		if msg, broken := keeper.AllInvariants(s.keeper)(ctx); broken {
			return &ghost, executed, types.ErrInvariantBroken.Wrap(msg)
		}
	}
	return nil, executed, nil
}

func (s *Session) randomAction(ctx context.Context, rng *rand.Rand) (Ghost, bool, error) {
	// One deposit for roughly every five swaps
	switch rng.Intn(6) {
	case 0:
		raw := s.cfg.Params.MinimumSeedDeposit.Add(math.NewInt(rng.Int63()))
		return s.driver.Deposit(ctx, raw)
	case 1, 2, 3:
		return s.driver.SwapExactOutput(ctx, types.SwapAForB, s.randomOutput(rng, s.cfg.SeedB))
	default:
		return s.driver.SwapExactOutput(ctx, types.SwapBForA, s.randomOutput(rng, s.cfg.SeedA))
	}
}

// randomOutput draws a raw output in the magnitude of the seeded reserve so
// that most clamped trades move a meaningful fraction of the pool
func (s *Session) randomOutput(rng *rand.Rand, scale math.Int) math.Int {
	tenth := scale.Quo(math.NewInt(10))
	if !tenth.IsPositive() || !tenth.IsInt64() {
		return math.NewInt(rng.Int63())
	}
	return math.NewInt(rng.Int63n(tenth.Int64()) + 1)
}
