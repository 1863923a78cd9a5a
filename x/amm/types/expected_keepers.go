package types

import (
	"context"

	"cosmossdk.io/math"
)

// BankKeeper is the fungible-asset collaborator the pool engine transfers
// through. Reserves live as balances of the module account; the engine never
// holds assets itself. Transfers are synchronous and may re-enter the engine,
// which is why state effects are committed before any call into this
// interface.
//
// Non-conforming assets (fee-on-transfer, rebasing, missing failure
// signaling) are an open risk of the design and are not modeled here.
type BankKeeper interface {
	// GetBalance returns the holder's balance of denom
	GetBalance(ctx context.Context, addr, denom string) math.Int

	// SendCoins moves amount of denom between accounts, failing without
	// effect when the sender's balance is short
	SendCoins(ctx context.Context, from, to, denom string, amount math.Int) error

	// MintCoins credits freshly created units to an account. Used by the
	// harness to pre-fund acting parties; production registries restrict it.
	MintCoins(ctx context.Context, to, denom string, amount math.Int) error
}
