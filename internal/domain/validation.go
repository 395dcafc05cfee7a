package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidNickname  = errors.New("invalid nickname")
	ErrInvalidDictName  = errors.New("invalid dictionary name")
	ErrInvalidDictSign  = errors.New("invalid dictionary sign")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooWeak  = errors.New("password does not meet requirements")
	ErrInvalidIDFormat  = errors.New("invalid ID format")
	ErrInvalidSex       = errors.New("invalid sex value")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrNothingToPersist = errors.New("no fields to update")
)

// Validation constants
const (
	MaxNicknameLength = 64
	MaxDictNameLength = 128
	MaxDictSignLength = 64
	MaxMutationAmount = "1000000000000" // 1 trillion
	BalanceScale      = 2
	MaxIntegralAmount = 1_000_000_000_000
	MinPasswordLength = 8
	MaxPasswordLength = 128
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	dictSignRegex = regexp.MustCompile(`^[a-z][a-z0-9_.:-]*$`)
)

// ValidateBalanceAmount validates the magnitude of a balance change.
func ValidateBalanceAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Round(BalanceScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount, BalanceScale)
	}

	maxAmount, _ := decimal.NewFromString(MaxMutationAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxMutationAmount)
	}

	return nil
}

// ValidateIntegralAmount validates the magnitude of an integral change.
func ValidateIntegralAmount(amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	if amount > MaxIntegralAmount {
		return fmt.Errorf("%w: maximum integral is %d", ErrAmountTooLarge, int64(MaxIntegralAmount))
	}

	return nil
}

// ValidateNickname validates a member nickname.
func ValidateNickname(nickname string) error {
	nickname = strings.TrimSpace(nickname)

	if nickname == "" {
		return fmt.Errorf("%w: nickname cannot be empty", ErrInvalidNickname)
	}

	if len(nickname) > MaxNicknameLength {
		return fmt.Errorf("%w: nickname exceeds %d characters", ErrInvalidNickname, MaxNicknameLength)
	}

	return nil
}

// ValidateSex accepts 0 (unknown), 1 (male) and 2 (female).
func ValidateSex(sex int32) error {
	if sex < 0 || sex > 2 {
		return ErrInvalidSex
	}
	return nil
}

// ValidateMemberStatus validates a member status value.
func ValidateMemberStatus(status MemberStatus) error {
	if status != MemberStatusActive && status != MemberStatusDisabled {
		return ErrInvalidStatus
	}
	return nil
}

// ValidateDict validates a dictionary name and sign.
func ValidateDict(name, sign string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxDictNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidDictName, MaxDictNameLength)
	}

	if len(sign) > MaxDictSignLength || !dictSignRegex.MatchString(sign) {
		return fmt.Errorf("%w: %q", ErrInvalidDictSign, sign)
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// NormalizePagination clamps limit and offset into the accepted range.
func NormalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
