// Package bank provides an in-memory fungible-asset ledger implementing the
// collaborator interface the pool engine transfers through. It exists so the
// engine and the verification harness can run hermetically.
package bank

import (
	"context"
	"sync"

	"cosmossdk.io/math"

	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Bank is a map-backed asset ledger keyed by account then denom.
// Transfers fail without effect when the sender's balance is short.
type Bank struct {
	mu       sync.Mutex
	balances map[string]map[string]math.Int
}

var _ types.BankKeeper = (*Bank)(nil)

// New returns an empty ledger
func New() *Bank {
	return &Bank{balances: make(map[string]map[string]math.Int)}
}

// GetBalance returns the holder's balance of denom, zero when absent
func (b *Bank) GetBalance(_ context.Context, addr, denom string) math.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balanceOf(addr, denom)
}

// SendCoins moves amount of denom from one account to another
func (b *Bank) SendCoins(_ context.Context, from, to, denom string, amount math.Int) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	balance := b.balanceOf(from, denom)
	if balance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf(
			"%s holds %s %s, sending %s", from, balance, denom, amount)
	}
	b.set(from, denom, balance.Sub(amount))
	b.set(to, denom, b.balanceOf(to, denom).Add(amount))
	return nil
}

// MintCoins credits freshly created units of denom to an account
func (b *Bank) MintCoins(_ context.Context, to, denom string, amount math.Int) error {
	if err := validateAmount(denom, amount); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set(to, denom, b.balanceOf(to, denom).Add(amount))
	return nil
}

func (b *Bank) balanceOf(addr, denom string) math.Int {
	if amount, ok := b.balances[addr][denom]; ok {
		return amount
	}
	return math.ZeroInt()
}

func (b *Bank) set(addr, denom string, amount math.Int) {
	account, ok := b.balances[addr]
	if !ok {
		account = make(map[string]math.Int)
		b.balances[addr] = account
	}
	if amount.IsZero() {
		delete(account, denom)
		return
	}
	account[denom] = amount
}

func validateAmount(denom string, amount math.Int) error {
	if denom == "" {
		return types.ErrInvalidInput.Wrap("denom cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidInput.Wrapf("amount %s must be non-negative", amount)
	}
	return nil
}
