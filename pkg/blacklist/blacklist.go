package blacklist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blacklist:refresh:"

// ErrAlreadyRevoked is returned by Revoke when the token was spent before
var ErrAlreadyRevoked = errors.New("token already revoked")

// TokenBlacklist tracks revoked refresh tokens in Redis.
// Entries expire together with the token they revoke.
type TokenBlacklist struct {
	redis *redis.Client
}

// NewTokenBlacklist creates a new token blacklist
func NewTokenBlacklist(redisClient *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{
		redis: redisClient,
	}
}

// Revoke blacklists the token with the given ID until expiresAt.
// Only the first call for an ID succeeds, later ones return ErrAlreadyRevoked.
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)

	// an expired token cannot be spent anymore
	if ttl <= 0 {
		return ErrAlreadyRevoked
	}

	added, err := b.redis.SetNX(ctx, keyPrefix+tokenID, "1", ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	if !added {
		return ErrAlreadyRevoked
	}

	return nil
}

// Release takes a token back off the blacklist
func (b *TokenBlacklist) Release(ctx context.Context, tokenID string) error {
	if err := b.redis.Del(ctx, keyPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("failed to remove token from blacklist: %w", err)
	}
	return nil
}

// IsRevoked checks if a token is in the blacklist
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := b.redis.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return exists > 0, nil
}

// Clear removes all blacklisted tokens
func (b *TokenBlacklist) Clear(ctx context.Context) error {
	iter := b.redis.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan blacklist keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := b.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear blacklist: %w", err)
	}

	return nil
}

// Ping verifies the Redis connection
func (b *TokenBlacklist) Ping(ctx context.Context) error {
	return b.redis.Ping(ctx).Err()
}
