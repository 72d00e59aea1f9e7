package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsFirstAttempt(t *testing.T) {
	c := &Client{}
	attempts := 0

	err := c.withRetry(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_TerminalErrorIsNotRetried(t *testing.T) {
	c := &Client{}
	attempts := 0
	terminal := errors.New("malformed query")

	err := c.withRetry(context.Background(), func(context.Context) error {
		attempts++
		return terminal
	})

	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_TransientErrorIsRetriedBounded(t *testing.T) {
	c := &Client{}
	attempts := 0

	err := c.withRetry(context.Background(), func(context.Context) error {
		attempts++
		return context.DeadlineExceeded // a timeout, counted as transient
	})

	assert.Error(t, err)
	assert.Equal(t, maxAttempts, attempts)
}

func TestWithRetry_RecoversMidway(t *testing.T) {
	c := &Client{}
	attempts := 0

	err := c.withRetry(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 2 {
			return context.DeadlineExceeded
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_StopsOnCancelledContext(t *testing.T) {
	c := &Client{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.withRetry(ctx, func(context.Context) error {
		return context.DeadlineExceeded
	})

	assert.ErrorIs(t, err, context.Canceled)
}
