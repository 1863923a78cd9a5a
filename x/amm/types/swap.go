package types

import (
	"time"

	"cosmossdk.io/math"
)

// SwapDirection names which side of the pair enters the pool
type SwapDirection int8

const (
	// SwapAForB sends asset A in and takes asset B out
	SwapAForB SwapDirection = iota
	// SwapBForA sends asset B in and takes asset A out
	SwapBForA
)

func (d SwapDirection) String() string {
	switch d {
	case SwapAForB:
		return "a_for_b"
	case SwapBForA:
		return "b_for_a"
	default:
		return "unknown"
	}
}

// ExactSide marks which leg of the trade the caller fixed
type ExactSide int8

const (
	ExactInput ExactSide = iota
	ExactOutput
)

func (s ExactSide) String() string {
	if s == ExactOutput {
		return "exact_output"
	}
	return "exact_input"
}

// SwapRequest is the transient description of one trade: the fixed leg, its
// amount, the caller's bound on the counterpart leg, and the deadline. It is
// never persisted; the driver and CLI use it for reporting.
type SwapRequest struct {
	Direction SwapDirection
	Exact     ExactSide
	Amount    math.Int
	// Bound is the minimum acceptable output for exact-input trades and the
	// maximum acceptable input for exact-output trades.
	Bound    math.Int
	Deadline time.Time
}

// Validate checks the request is well formed
func (r SwapRequest) Validate() error {
	if r.Amount.IsNil() || r.Amount.IsZero() {
		return ErrZeroAmount.Wrap("swap amount")
	}
	if r.Amount.IsNegative() {
		return ErrInvalidInput.Wrapf("swap amount %s is negative", r.Amount)
	}
	if r.Bound.IsNil() || r.Bound.IsNegative() {
		return ErrInvalidInput.Wrap("swap bound must be non-negative")
	}
	return nil
}
