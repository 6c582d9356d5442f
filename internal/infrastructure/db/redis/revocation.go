package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minRevocationTTL keeps a key around long enough to cover clock skew
// between the API and Redis when a token is about to expire anyway.
const minRevocationTTL = time.Minute

// RevocationList records logged-out token ids until the tokens would have
// expired on their own.
// Key format: revoked:<jti>
type RevocationList struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRevocationList(client redis.Cmdable) *RevocationList {
	return &RevocationList{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked until the given expiry.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if err := l.client.Set(ctx, revocationKey(tokenID), "1", revocationTTL(l.now(), until)).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revocationKey(tokenID string) string {
	return "revoked:" + tokenID
}

func revocationTTL(now, until time.Time) time.Duration {
	ttl := until.Sub(now)
	if ttl < minRevocationTTL {
		return minRevocationTTL
	}
	return ttl
}

// Ping reports whether Redis is reachable.
func (l *RevocationList) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
