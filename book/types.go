// Package book implements a single-instrument limit order book: O(1) order
// lookup, O(log P) price-level access, strict price/time priority within a
// level, and deterministic matching of aggressive orders against resting
// liquidity. It is a pure data structure — no goroutines, no background
// work, and no I/O beyond the optional verbose trade lines on stdout and
// the package logger's diagnostics — callers drive it synchronously and supply their own
// monotonically increasing timestamp on every order.
package book

import (
	"github.com/shopspring/decimal"
)

// Side identifies which side of the book an order rests on.
type Side int8

const (
	Buy  Side = 1
	Sell Side = 2
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// OrderType selects how an incoming order behaves once it reaches the
// matching engine. Limit is the default: match what it can, rest the rest.
type OrderType int8

const (
	// Limit matches against the opposite side while the price condition
	// holds, then rests any residual quantity at order.Price.
	Limit OrderType = iota
	// IOC (Immediate-Or-Cancel) matches what it can against the opposite
	// side and discards any residue instead of resting it.
	IOC
	// FOK (Fill-Or-Kill) only matches if the order's full quantity can be
	// filled at an acceptable price; otherwise it is rejected as a no-op.
	FOK
)

// Order is the caller-visible record submitted to Add. An order is
// identified solely by ID; IDs are assumed unique for the lifetime of the
// book, and a residue whose ID is already resting is silently discarded
// (see ErrDuplicateOrder in errors.go).
type Order struct {
	ID        uint64
	Side      Side
	Type      OrderType
	Price     decimal.Decimal
	Quantity  uint64
	Timestamp int64 // caller-supplied, nanoseconds; stored, never read for ordering
}

// Trade records one match produced while processing an aggressive order.
// Price is always the resting (maker) side's price — the source of any
// price improvement the aggressor receives.
type Trade struct {
	Price        decimal.Decimal
	Quantity     uint64
	BuyOrderID   uint64
	SellOrderID  uint64
	AggressorID  uint64
	RestingID    uint64
	Timestamp    int64
}

// PriceLevelView is the (price, aggregate quantity) pair produced by
// Snapshot.
type PriceLevelView struct {
	Price    decimal.Decimal
	Quantity uint64
}
