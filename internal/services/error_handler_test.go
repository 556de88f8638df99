package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestSafeExecute(t *testing.T) {
	handler := NewErrorHandler(newTestLogger())

	t.Run("passes results through", func(t *testing.T) {
		assert.NoError(t, handler.SafeExecute("noop", func() error { return nil }))

		boom := errors.New("boom")
		assert.Equal(t, boom, handler.SafeExecute("failing", func() error { return boom }))
	})

	t.Run("converts a panic into an error", func(t *testing.T) {
		err := handler.SafeExecute("panicking", func() error {
			panic("bad payload")
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "panicking")
		assert.Contains(t, err.Error(), "bad payload")
	})
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("transient failures retry until success", func(t *testing.T) {
		handler := NewErrorHandler(newTestLogger())
		handler.SetRetryPolicy(fastRetryPolicy())

		attempts := 0
		err := handler.ExecuteWithRetry(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return errors.New("connection refused")
			}
			return nil
		}, "flaky")

		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("permanent errors abort immediately", func(t *testing.T) {
		handler := NewErrorHandler(newTestLogger())
		handler.SetRetryPolicy(fastRetryPolicy())

		attempts := 0
		err := handler.ExecuteWithRetry(context.Background(), func() error {
			attempts++
			return errors.New("record not found")
		}, "permanent")

		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("exhausted attempts return the last error", func(t *testing.T) {
		handler := NewErrorHandler(newTestLogger())
		handler.SetRetryPolicy(fastRetryPolicy())

		attempts := 0
		err := handler.ExecuteWithRetry(context.Background(), func() error {
			attempts++
			return errors.New("connection reset")
		}, "hopeless")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, 3, attempts)
	})

	t.Run("context cancellation stops the backoff loop", func(t *testing.T) {
		handler := NewErrorHandler(newTestLogger())
		handler.SetRetryPolicy(&RetryPolicy{
			MaxAttempts:   5,
			InitialDelay:  time.Second,
			MaxDelay:      time.Second,
			BackoffFactor: 1.0,
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := handler.ExecuteWithRetry(ctx, func() error {
			return errors.New("connection timeout")
		}, "cancelled")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryable(errors.New("i/o timeout")))
	assert.True(t, isRetryable(errors.New("write: broken pipe")))
	assert.False(t, isRetryable(errors.New("record not found")))
	assert.False(t, isRetryable(errors.New("validation failed")))
}
