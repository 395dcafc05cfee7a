package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillKind tells which member field a bill changed.
type BillKind string

const (
	BillKindBalance  BillKind = "balance"
	BillKindIntegral BillKind = "integral"
)

// IsValid checks the kind is known.
func (k BillKind) IsValid() bool {
	return k == BillKindBalance || k == BillKindIntegral
}

// Direction is the sign applied to a bill's non-negative amount.
type Direction string

const (
	DirectionIncrement Direction = "increment"
	DirectionDecrement Direction = "decrement"
)

// IsValid checks the direction is known.
func (d Direction) IsValid() bool {
	return d == DirectionIncrement || d == DirectionDecrement
}

// ApplyDecimal returns current moved by amount in this direction.
func (d Direction) ApplyDecimal(current, amount decimal.Decimal) decimal.Decimal {
	if d == DirectionDecrement {
		return current.Sub(amount)
	}
	return current.Add(amount)
}

// ApplyInt returns current moved by amount in this direction.
func (d Direction) ApplyInt(current, amount int64) int64 {
	if d == DirectionDecrement {
		return current - amount
	}
	return current + amount
}

// ParseDirection converts a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Bill is an immutable ledger record of one balance or integral change.
// Amount is always non-negative; Direction carries the sign.
type Bill struct {
	ID            string
	MemberID      int64
	Kind          BillKind
	Direction     Direction
	Amount        decimal.Decimal
	PreviousValue decimal.Decimal
	CurrentValue  decimal.Decimal
	CreatedAt     time.Time
}

// Signed returns the amount with the direction's sign applied.
func (b *Bill) Signed() decimal.Decimal {
	if b.Direction == DirectionDecrement {
		return b.Amount.Neg()
	}
	return b.Amount
}

// BillFilter narrows bill listings for reporting.
type BillFilter struct {
	Kind      *BillKind
	Direction *Direction
	Limit     int
	Offset    int
}

// BillSummary is the signed total of a member's bills per kind.
type BillSummary struct {
	BalanceTotal  decimal.Decimal
	IntegralTotal int64
	Count         int64
}

// Reconciliation compares a member's stored values with the totals of its bills.
type Reconciliation struct {
	MemberID        int64
	Balance         decimal.Decimal
	Integral        int64
	BillBalance     decimal.Decimal
	BillIntegral    int64
	BillCount       int64
	BalanceMatches  bool
	IntegralMatches bool
}

// Consistent reports whether both fields agree with the bills.
func (r *Reconciliation) Consistent() bool {
	return r.BalanceMatches && r.IntegralMatches
}
