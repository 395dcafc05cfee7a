package usecase

import (
	"time"

	"github.com/iho/memberledger/internal/domain"
)

const (
	// DefaultTransactionTimeout bounds a single balance or integral mutation,
	// retries included.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultDictCacheTTL is used when no TTL is configured for dictionary lookups.
	DefaultDictCacheTTL = 10 * time.Minute

	// IdempotencyInFlight marks a key whose first request has not finished yet.
	IdempotencyInFlight = "processing"
)

// Mutation outcomes reported to MutationRecorder.
const (
	OutcomeApplied   = "applied"
	OutcomeNotFound  = "not_found"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
	OutcomeStorage   = "storage_error"
	OutcomeCancelled = "cancelled"
)

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ObserveMutation(domain.Direction, string, time.Duration) {}
func (NopMetrics) BillAppended(domain.BillKind, domain.Direction)          {}
func (NopMetrics) DictCacheLookup(bool)                                    {}
func (NopMetrics) AuthAttempt(bool)                                        {}
