package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	maxAttempts  = 3
	retryBackoff = 100 * time.Millisecond
)

// transient reports whether a store failure is worth retrying.
// Timeouts and broken connections are; everything else (bad queries,
// constraint violations) is terminal for the request.
func transient(err error) bool {
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}

// withRetry runs a read operation with bounded retry and doubling
// backoff. Write paths call their operation directly.
func (c *Client) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	var err error
	backoff := retryBackoff

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op(ctx)
		if err == nil || !transient(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return err
}
