package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore implements usecase.TokenStore. A session token is valid only
// while its ID is registered here.
type TokenStore struct {
	client *redis.Client
	prefix string
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: "token:",
	}
}

// Register records tokenID for userID until ttl elapses.
func (s *TokenStore) Register(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+tokenID, userID, ttl).Err()
}

// Exists reports whether tokenID is registered and not revoked.
func (s *TokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Revoke removes tokenID.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.prefix+tokenID).Err()
}
