package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateBalanceAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  string
		wantErr error
	}{
		{name: "zero", amount: "0"},
		{name: "two decimals", amount: "25.10"},
		{name: "negative", amount: "-1", wantErr: ErrInvalidAmount},
		{name: "three decimals", amount: "0.001", wantErr: ErrInvalidAmount},
		{name: "too large", amount: "1000000000000.01", wantErr: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBalanceAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateIntegralAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateIntegralAmount(0); err != nil {
		t.Fatalf("expected zero to be accepted, got %v", err)
	}
	if err := ValidateIntegralAmount(-5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := ValidateIntegralAmount(MaxIntegralAmount + 1); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateNickname(t *testing.T) {
	t.Parallel()

	if err := ValidateNickname("alice"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateNickname("  "); !errors.Is(err, ErrInvalidNickname) {
		t.Fatalf("expected ErrInvalidNickname, got %v", err)
	}
	if err := ValidateNickname(strings.Repeat("n", MaxNicknameLength+1)); !errors.Is(err, ErrInvalidNickname) {
		t.Fatalf("expected ErrInvalidNickname, got %v", err)
	}
}

func TestValidateDict(t *testing.T) {
	t.Parallel()

	if err := ValidateDict("Gender", "member.sex"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ValidateDict("", "member.sex"); !errors.Is(err, ErrInvalidDictName) {
		t.Fatalf("expected ErrInvalidDictName, got %v", err)
	}
	if err := ValidateDict("Gender", "Member Sex"); !errors.Is(err, ErrInvalidDictSign) {
		t.Fatalf("expected ErrInvalidDictSign, got %v", err)
	}
}

func TestValidateEmailAndPassword(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("ops@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if err := ValidatePassword("Secret123"); err != nil {
		t.Fatalf("expected strong password, got %v", err)
	}
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
	if err := ValidatePassword("alllowercase1"); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
}

func TestNormalizePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		limit, offset   int
		wantLimit, want int
	}{
		{0, 0, DefaultPageSize, 0},
		{500, 10, MaxPageSize, 10},
		{10, -3, 10, 0},
	}

	for _, tt := range tests {
		limit, offset := NormalizePagination(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.want {
			t.Errorf("NormalizePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.want)
		}
	}
}

func TestRole_Satisfies(t *testing.T) {
	t.Parallel()

	if !RoleAdmin.Satisfies(RoleOperator) || !RoleOperator.Satisfies(RoleOperator) {
		t.Fatalf("admin and operator should satisfy operator")
	}
	if RoleViewer.Satisfies(RoleOperator) {
		t.Fatalf("viewer must not satisfy operator")
	}
	if RoleOperator.Satisfies(RoleAdmin) {
		t.Fatalf("operator must not satisfy admin")
	}
	if Role("guest").Satisfies(RoleViewer) {
		t.Fatalf("unknown role must not satisfy viewer")
	}
}
