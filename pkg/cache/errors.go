package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks failures to reach a remote backend.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is used inside backends to signal an absent key. Get
	// reports a miss as ok=false, never as this error.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff schedule for RetryWithBackoff: retryAttempts calls, waiting
// retryDelay and then doubling between them.
var (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or runs out of attempts. Waiting between attempts stops early when
// ctx is done.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	err := fn()
	for attempt := 1; attempt < retryAttempts && IsRetryable(err); attempt++ {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}
