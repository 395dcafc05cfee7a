package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// PostgreSQL error codes.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrUniqueViolation      = "23505"
)

// RetryObserver is told about every retried attempt.
type RetryObserver interface {
	TxRetried(code string)
}

// Retrier implements usecase.Retrier with exponential backoff. Only deadlocks and
// serialization failures are retried; every other error ends the loop.
type Retrier struct {
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	observer        RetryObserver
}

// RetrierOption customizes a Retrier.
type RetrierOption func(*Retrier)

// WithMaxRetries caps the number of retries after the first attempt.
func WithMaxRetries(n uint64) RetrierOption {
	return func(r *Retrier) { r.maxRetries = n }
}

// WithBackoff sets the backoff intervals and the overall time budget.
func WithBackoff(initial, max, elapsed time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = max
		r.maxElapsedTime = elapsed
	}
}

// WithRetryObserver reports retries, e.g. to metrics.
func WithRetryObserver(o RetryObserver) RetrierOption {
	return func(r *Retrier) { r.observer = o }
}

// NewRetrier creates a retrier: 3 retries, 50ms to 1s backoff, 10s budget.
func NewRetrier(opts ...RetrierOption) *Retrier {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     time.Second,
		maxElapsedTime:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retry runs operation, retrying it while it fails with a retryable error.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx)

	attempt := 0
	notify := func(err error, wait time.Duration) {
		code := retryableCode(err)
		if r.observer != nil {
			r.observer.TxRetried(code)
		}
		zerolog.Ctx(ctx).Warn().Err(err).
			Int("attempt", attempt).
			Str("sqlstate", code).
			Dur("wait", wait).
			Msg("retryable database error, retrying")
	}

	return backoff.RetryNotify(func() error {
		attempt++
		err := operation()
		if err != nil && retryableCode(err) == "" {
			return backoff.Permanent(err)
		}
		return err
	}, policy, notify)
}

// retryableCode returns the SQLSTATE of a retryable error, or "" when err is not retryable.
func retryableCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return pgErr.Code
		}
	}
	return ""
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
