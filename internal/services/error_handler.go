package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
)

// RetryPolicy defines retry behavior for transient backend failures
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy returns a default retry policy
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

// ErrorHandler wraps backend calls with retry and panic containment
type ErrorHandler struct {
	logger      *logger.Logger
	retryPolicy *RetryPolicy
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger:      logger,
		retryPolicy: DefaultRetryPolicy(),
	}
}

// SetRetryPolicy overrides the default retry policy
func (eh *ErrorHandler) SetRetryPolicy(policy *RetryPolicy) {
	eh.retryPolicy = policy
}

// SafeExecute runs an operation and converts a panic into an error. Used at
// service boundaries so a single bad payload can never take the process
// down.
func (eh *ErrorHandler) SafeExecute(operationName string, operation func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operation %s panicked: %v", operationName, r)
			eh.logger.WithField("operation", operationName).
				WithField("panic", r).
				Error("Recovered from panic")
		}
	}()

	return operation()
}

// ExecuteWithRetry runs an operation with exponential backoff. Permanent
// errors abort the loop immediately.
func (eh *ErrorHandler) ExecuteWithRetry(ctx context.Context, operation func() error, operationName string) error {
	var lastErr error

	for attempt := 0; attempt < eh.retryPolicy.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryable(err) {
			eh.logger.WithError(err).
				WithField("operation", operationName).
				Error("Non-retryable error encountered")
			return err
		}

		if attempt == eh.retryPolicy.MaxAttempts-1 {
			break
		}

		delay := eh.calculateDelay(attempt)

		eh.logger.WithError(err).
			WithField("operation", operationName).
			WithField("attempt", attempt+1).
			WithField("delay_ms", delay.Milliseconds()).
			Warn("Operation failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	eh.logger.WithError(lastErr).
		WithField("operation", operationName).
		WithField("max_attempts", eh.retryPolicy.MaxAttempts).
		Error("Operation failed after all retry attempts")

	return lastErr
}

func (eh *ErrorHandler) calculateDelay(attempt int) time.Duration {
	delay := float64(eh.retryPolicy.InitialDelay)
	for i := 0; i < attempt; i++ {
		delay *= eh.retryPolicy.BackoffFactor
	}
	if delay > float64(eh.retryPolicy.MaxDelay) {
		delay = float64(eh.retryPolicy.MaxDelay)
	}
	return time.Duration(delay)
}

// isRetryable classifies errors by content; connection-level failures are
// worth retrying, everything else is not
func isRetryable(err error) bool {
	message := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "timeout", "temporarily", "refused", "reset", "broken pipe"} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
