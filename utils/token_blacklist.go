package utils

import (
	"context"
	"time"
)

const blacklistKeyPrefix = "jwt:blacklist:"

// TokenBlacklist remembers revoked tokens until their natural expiration.
type TokenBlacklist struct {
	cache Cache
}

// NewTokenBlacklist stores revocations in cache.
func NewTokenBlacklist(cache Cache) *TokenBlacklist {
	return &TokenBlacklist{cache: cache}
}

// Revoke blacklists token until expiresAt.
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	b.cache.Set(ctx, blacklistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks if a token was revoked before natural expiration.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) bool {
	_, ok := b.cache.Get(ctx, blacklistKeyPrefix+tokenID)
	return ok
}
