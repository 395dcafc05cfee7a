package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBalancePolicy_Check(t *testing.T) {
	tests := []struct {
		name     string
		policy   BalancePolicy
		balance  decimal.Decimal
		integral int64
		wantErr  error
	}{
		{
			name:     "zero values are allowed",
			balance:  decimal.Zero,
			integral: 0,
		},
		{
			name:     "negative balance rejected by default",
			balance:  decimal.RequireFromString("-0.01"),
			integral: 10,
			wantErr:  ErrNegativeBalanceNotAllowed,
		},
		{
			name:     "negative integral rejected by default",
			balance:  decimal.NewFromInt(5),
			integral: -1,
			wantErr:  ErrNegativeIntegralNotAllowed,
		},
		{
			name:     "overdraft allowed",
			policy:   BalancePolicy{AllowNegativeBalance: true},
			balance:  decimal.NewFromInt(-100),
			integral: 0,
		},
		{
			name:     "overdraft allowed does not relax integral",
			policy:   BalancePolicy{AllowNegativeBalance: true},
			balance:  decimal.NewFromInt(-100),
			integral: -3,
			wantErr:  ErrNegativeIntegralNotAllowed,
		},
		{
			name:     "both relaxed",
			policy:   BalancePolicy{AllowNegativeBalance: true, AllowNegativeIntegral: true},
			balance:  decimal.NewFromInt(-1),
			integral: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Check(tt.balance, tt.integral)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrConstraintViolation) {
				t.Fatalf("expected constraint violation, got %v", err)
			}
		})
	}
}
