package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker tracks signed-out token ids. Implementations must remain
// stateless beyond the denylist itself.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RevocationList is the Redis-backed Revoker. A client-held token
// stays cryptographically valid until it expires, so logout records
// the jti here and the auth middleware rejects it for the remainder
// of the token's lifetime.
type RevocationList struct {
	client *redis.Client
	prefix string
}

var _ Revoker = (*RevocationList)(nil)

func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{
		client: client,
		prefix: "revoked:",
	}
}

func (r *RevocationList) key(jti string) string {
	return r.prefix + jti
}

// Revoke denylists a token id until its natural expiry. An already
// expired token needs no entry.
func (r *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(jti), "1", ttl).Err()
}

func (r *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
