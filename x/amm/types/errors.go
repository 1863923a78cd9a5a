package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors. All are local, synchronous and non-retryable:
// a failed call aborts without touching pool state.
var (
	ErrZeroAmount        = errors.Register(ModuleName, 1, "amount cannot be zero")
	ErrBelowMinimumSeed  = errors.Register(ModuleName, 2, "initial deposit below minimum seed")
	ErrSlippageExceeded  = errors.Register(ModuleName, 3, "computed amount violates caller bound")
	ErrReserveExhausted  = errors.Register(ModuleName, 4, "requested output at or above available reserve")
	ErrDeadlineExpired   = errors.Register(ModuleName, 5, "deadline has elapsed")
	ErrPoolNotFound      = errors.Register(ModuleName, 6, "pool not found")
	ErrPoolAlreadyExists = errors.Register(ModuleName, 7, "pool already exists")
	ErrNotSeeded         = errors.Register(ModuleName, 8, "pool has not been seeded")
	ErrAlreadySeeded     = errors.Register(ModuleName, 9, "pool already seeded")
	ErrInvalidInput      = errors.Register(ModuleName, 10, "invalid input")
	ErrInvalidAsset      = errors.Register(ModuleName, 11, "asset does not belong to pool")
	ErrInsufficientFunds = errors.Register(ModuleName, 12, "insufficient funds")
	ErrInvariantBroken   = errors.Register(ModuleName, 13, "invariant broken")
)
