package httputil

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) Retryable() bool { return e >= 500 }

var errPlain = errors.New("plain")

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		retries   int
		failures  []error // returned by successive calls, then nil
		wantCalls int
		wantErr   error
	}{
		{"success first try", 3, nil, 1, nil},
		{"retry 5xx then succeed", 3, []error{statusErr(503), statusErr(503), statusErr(503)}, 4, nil},
		{"budget exhausted", 3, []error{statusErr(500), statusErr(502), statusErr(503), statusErr(504)}, 4, statusErr(504)},
		{"4xx not retried", 3, []error{statusErr(404)}, 1, statusErr(404)},
		{"timeout not retried", 3, []error{statusErr(408)}, 1, statusErr(408)},
		{"network not retried", 3, []error{statusErr(0)}, 1, statusErr(0)},
		{"plain error not retried", 3, []error{errPlain}, 1, errPlain},
		{"zero budget", 0, []error{statusErr(500)}, 1, statusErr(500)},
		{"negative budget", -2, []error{statusErr(500)}, 1, statusErr(500)},
		{"forced retry", 1, []error{&RetryableError{Err: errPlain}}, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.retries, time.Millisecond, func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Errorf("error = %v, want %v (unchanged)", err, tt.wantErr)
			}
		})
	}
}

func TestRetryDelay(t *testing.T) {
	const delay = 20 * time.Millisecond
	start := time.Now()
	calls := 0
	_ = Retry(context.Background(), 2, delay, func() error {
		calls++
		return statusErr(500)
	})

	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("elapsed = %v, want at least %v", elapsed, 2*delay)
	}
}

func TestRetryNotify(t *testing.T) {
	var attempts []int
	calls := 0
	err := RetryNotify(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return statusErr(500)
		}
		return nil
	}, func(attempt int, err error) {
		attempts = append(attempts, attempt)
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("notify attempts = %v, want [1 2]", attempts)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 3, time.Hour, func() error {
		calls++
		return statusErr(500)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errPlain, false},
		{"5xx", statusErr(500), true},
		{"4xx", statusErr(400), false},
		{"wrapped 5xx", fmt.Errorf("fetch: %w", statusErr(502)), true},
		{"forced", &RetryableError{Err: errPlain}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
