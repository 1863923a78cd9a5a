package keeper

import (
	"context"
	"fmt"
)

// Standing consistency checks over every registered pool. Each invariant
// returns a report string and whether it is broken, so callers can run them
// between operations the way the harness does.

// Invariant is a single named consistency check
type Invariant func(ctx context.Context) (string, bool)

// AllInvariants runs every pool invariant and stops at the first break
func AllInvariants(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		if msg, broken := PositiveReservesInvariant(k)(ctx); broken {
			return msg, broken
		}
		if msg, broken := SeededSupplyInvariant(k)(ctx); broken {
			return msg, broken
		}
		return BankBacksReservesInvariant(k)(ctx)
	}
}

// PositiveReservesInvariant checks that every seeded pool holds strictly
// positive reserves and no unseeded pool holds any
func PositiveReservesInvariant(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		for _, pool := range k.pools {
			if err := pool.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pool %d: %v\n", pool.Id, err)
			}
		}
		return fmt.Sprintf("amm: positive-reserves: found %d invalid pools\n%s", count, msg), count != 0
	}
}

// SeededSupplyInvariant checks that liquidity supply is positive iff the
// pool has been seeded, and that tracked positions never exceed the supply
func SeededSupplyInvariant(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		for _, pool := range k.pools {
			if pool.Seeded() != pool.ReserveA.IsPositive() {
				count++
				msg += fmt.Sprintf("pool %d: supply %s inconsistent with reserveA %s\n",
					pool.Id, pool.LiquiditySupply, pool.ReserveA)
			}
			for provider, shares := range k.positions[pool.Id] {
				if shares.GT(pool.LiquiditySupply) {
					count++
					msg += fmt.Sprintf("pool %d: position of %s (%s) exceeds supply %s\n",
						pool.Id, provider, shares, pool.LiquiditySupply)
				}
			}
		}
		return fmt.Sprintf("amm: seeded-supply: found %d inconsistencies\n%s", count, msg), count != 0
	}
}

// BankBacksReservesInvariant checks that the module account's balances cover
// the recorded reserves of every pool. Multiple pools may share a denom, so
// required amounts are summed per denom before comparing.
func BankBacksReservesInvariant(k *Keeper) Invariant {
	return func(ctx context.Context) (string, bool) {
		var (
			msg   string
			count int
		)
		for denom, total := range k.reserveTotals() {
			balance := k.bankKeeper.GetBalance(ctx, k.moduleAddr, denom)
			if balance.LT(total) {
				count++
				msg += fmt.Sprintf("denom %s: module balance %s below total reserves %s\n",
					denom, balance, total)
			}
		}
		return fmt.Sprintf("amm: bank-backs-reserves: found %d shortfalls\n%s", count, msg), count != 0
	}
}
