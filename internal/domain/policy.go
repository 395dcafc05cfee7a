package domain

import "github.com/shopspring/decimal"

// BalancePolicy decides whether a resulting balance or integral may be persisted.
// The zero value rejects negative results.
type BalancePolicy struct {
	AllowNegativeBalance  bool
	AllowNegativeIntegral bool
}

// Check validates the values a mutation is about to write.
func (p BalancePolicy) Check(balance decimal.Decimal, integral int64) error {
	if !p.AllowNegativeBalance && balance.IsNegative() {
		return ErrNegativeBalanceNotAllowed
	}
	if !p.AllowNegativeIntegral && integral < 0 {
		return ErrNegativeIntegralNotAllowed
	}
	return nil
}
