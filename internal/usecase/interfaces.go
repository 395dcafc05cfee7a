package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/memberledger/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// MemberRepository defines data access for members.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) (*domain.Member, error)
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Member, error)
	UpdateBalanceAndIntegral(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal, integral int64, updatedAt time.Time) (*domain.Member, error)
	UpdateProfile(ctx context.Context, member *domain.Member) (*domain.Member, error)
	SetLastLogin(ctx context.Context, id int64, ip string, at time.Time) (*domain.Member, error)
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error
	List(ctx context.Context, filter domain.MemberFilter) ([]*domain.Member, error)
	Count(ctx context.Context, filter domain.MemberFilter) (int64, error)
}

// BillWriter appends immutable bills inside a transaction.
type BillWriter interface {
	Append(ctx context.Context, tx Transaction, bill *domain.Bill) error
}

// BillReader defines read access for bill reporting.
type BillReader interface {
	ListByMember(ctx context.Context, memberID int64, filter domain.BillFilter) ([]*domain.Bill, error)
	CountByMember(ctx context.Context, memberID int64, filter domain.BillFilter) (int64, error)
	Sum(ctx context.Context, tx Transaction, memberID int64) (*domain.BillSummary, error)
}

// DictRepository defines data access for system dictionaries.
type DictRepository interface {
	Create(ctx context.Context, dict *domain.Dict) (*domain.Dict, error)
	GetByID(ctx context.Context, id int64) (*domain.Dict, error)
	GetBySign(ctx context.Context, sign string) (*domain.Dict, error)
	Update(ctx context.Context, dict *domain.Dict) (*domain.Dict, error)
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error
	List(ctx context.Context, filter domain.DictFilter) ([]*domain.Dict, error)
	Count(ctx context.Context, filter domain.DictFilter) (int64, error)
}

// UserRepository defines data access for admin users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs operation while it fails with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases the key so the request can be retried.
	Delete(ctx context.Context, key string) error
}

// TokenStore registers issued token ids; a token whose id is absent is rejected.
type TokenStore interface {
	Register(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

// TokenIssuer issues signed session tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (*domain.Session, error)
}

// MutationRecorder receives metrics about balance and integral mutations.
type MutationRecorder interface {
	ObserveMutation(direction domain.Direction, outcome string, elapsed time.Duration)
	BillAppended(kind domain.BillKind, direction domain.Direction)
}

// CacheRecorder receives dictionary cache hit and miss counts.
type CacheRecorder interface {
	DictCacheLookup(hit bool)
}

// AuthRecorder receives login outcomes.
type AuthRecorder interface {
	AuthAttempt(success bool)
}
