package httputil

import (
	"context"
	"errors"
	"time"
)

// Retryable is implemented by errors that know whether the failed operation
// is worth repeating. [Retry] consults it through errors.As, so wrapped
// errors are classified by the innermost implementation.
type Retryable interface {
	Retryable() bool
}

// RetryableError wraps an error to force a retry regardless of its own
// classification.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string   { return e.Err.Error() }
func (e *RetryableError) Unwrap() error   { return e.Err }
func (e *RetryableError) Retryable() bool { return true }

// NotifyFunc is called before each retry with the 1-based number of the
// attempt that just failed and its error.
type NotifyFunc func(attempt int, err error)

// Retry executes fn and re-executes it up to retries more times while it
// fails with a retryable error, sleeping a fixed delay between attempts.
// Non-retryable errors and the error of the final attempt are returned
// unchanged. Returns ctx.Err() if ctx is cancelled while waiting.
func Retry(ctx context.Context, retries int, delay time.Duration, fn func() error) error {
	return RetryNotify(ctx, retries, delay, fn, nil)
}

// RetryNotify is [Retry] with a callback invoked before every retry.
func RetryNotify(ctx context.Context, retries int, delay time.Duration, fn func() error, notify NotifyFunc) error {
	retries = max(retries, 0)

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if retries == 0 || !IsRetryable(err) {
			return err
		}
		if notify != nil {
			notify(attempt, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		retries--
	}
}

// IsRetryable reports whether err, or an error it wraps, is retryable.
func IsRetryable(err error) bool {
	var r Retryable
	return errors.As(err, &r) && r.Retryable()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
