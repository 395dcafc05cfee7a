package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConstraintViolation marks a mutation whose result breaks a business rule.
	ErrConstraintViolation = errors.New("constraint violation")

	// Member errors
	ErrMemberNotFound             = errors.New("member not found")
	ErrMemberAlreadyExists        = errors.New("member with this unique code or email already exists")
	ErrNegativeBalanceNotAllowed  = fmt.Errorf("%w: balance cannot become negative", ErrConstraintViolation)
	ErrNegativeIntegralNotAllowed = fmt.Errorf("%w: integral cannot become negative", ErrConstraintViolation)

	// Mutation errors
	ErrInvalidAmount    = errors.New("amount must be a non-negative value with at most two decimal places")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidBillKind  = errors.New("invalid bill kind")

	// Dictionary errors
	ErrDictNotFound      = errors.New("dictionary not found")
	ErrDictAlreadyExists = errors.New("dictionary with this sign already exists")
)

// StorageError wraps a failure of the backing store during a unit of work.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err, leaving nil untouched.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err carries a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
