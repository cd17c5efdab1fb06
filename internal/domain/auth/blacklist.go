package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	blacklistPrefix = "blacklist:"
	userTokensKey   = "user_tokens:"
)

// TokenStore tracks issued access tokens and revocations. Redis-backed in
// production; nil-safe so the API still runs without Redis (no revocation).
type TokenStore interface {
	Track(ctx context.Context, userID uuid.UUID, jti string, ttl time.Duration) error
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	ActiveTokens(ctx context.Context, userID uuid.UUID) ([]string, error)
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) (int, error)
	Stats(ctx context.Context) (*BlacklistStats, error)
	Cleanup(ctx context.Context) (int, error)
}

// BlacklistStats summarizes blacklist state for the admin panel
type BlacklistStats struct {
	BlacklistedTokens int `json:"blacklistedTokens"`
	TrackedUsers      int `json:"trackedUsers"`
}

// Blacklist is the Redis-backed TokenStore
type Blacklist struct {
	redis *redis.Client
}

// NewBlacklist creates a Redis-backed token store
func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{redis: rdb}
}

// Track remembers a live JTI for a user so force-logout can find it later.
// Entries carry the token TTL and expire with the token.
func (b *Blacklist) Track(ctx context.Context, userID uuid.UUID, jti string, ttl time.Duration) error {
	if b.redis == nil {
		return nil
	}
	key := userTokensKey + userID.String()
	pipe := b.redis.Pipeline()
	pipe.SAdd(ctx, key, jti)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Revoke blacklists a JTI until the token would have expired anyway
func (b *Blacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if b.redis == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return b.redis.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JTI has been revoked
func (b *Blacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	if b.redis == nil || jti == "" {
		return false, nil
	}
	n, err := b.redis.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ActiveTokens lists the tracked, not-yet-revoked JTIs for a user
func (b *Blacklist) ActiveTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if b.redis == nil {
		return nil, nil
	}
	jtis, err := b.redis.SMembers(ctx, userTokensKey+userID.String()).Result()
	if err != nil {
		return nil, err
	}

	active := make([]string, 0, len(jtis))
	for _, jti := range jtis {
		revoked, err := b.IsBlacklisted(ctx, jti)
		if err != nil {
			return nil, err
		}
		if !revoked {
			active = append(active, jti)
		}
	}
	return active, nil
}

// RevokeAllForUser blacklists every tracked token of a user (force-logout)
func (b *Blacklist) RevokeAllForUser(ctx context.Context, userID uuid.UUID, ttl time.Duration) (int, error) {
	if b.redis == nil {
		return 0, nil
	}
	jtis, err := b.ActiveTokens(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, jti := range jtis {
		if err := b.Revoke(ctx, jti, ttl); err != nil {
			return 0, err
		}
	}
	return len(jtis), nil
}

// Stats counts blacklist entries and tracked users
func (b *Blacklist) Stats(ctx context.Context) (*BlacklistStats, error) {
	if b.redis == nil {
		return &BlacklistStats{}, nil
	}
	stats := &BlacklistStats{}

	var err error
	if stats.BlacklistedTokens, err = b.countKeys(ctx, blacklistPrefix+"*"); err != nil {
		return nil, err
	}
	if stats.TrackedUsers, err = b.countKeys(ctx, userTokensKey+"*"); err != nil {
		return nil, err
	}
	return stats, nil
}

// Cleanup drops already-revoked JTIs from user token sets. Blacklist keys
// themselves expire via Redis TTL.
func (b *Blacklist) Cleanup(ctx context.Context) (int, error) {
	if b.redis == nil {
		return 0, nil
	}
	removed := 0
	iter := b.redis.Scan(ctx, 0, userTokensKey+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		jtis, err := b.redis.SMembers(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		for _, jti := range jtis {
			revoked, err := b.IsBlacklisted(ctx, jti)
			if err != nil {
				return removed, err
			}
			if revoked {
				if err := b.redis.SRem(ctx, key, jti).Err(); err != nil {
					return removed, err
				}
				removed++
			}
		}
	}
	return removed, iter.Err()
}

func (b *Blacklist) countKeys(ctx context.Context, pattern string) (int, error) {
	count := 0
	iter := b.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}
