// Package httputil provides the retry policy shared by the portfolio API
// client.
//
// # Retry
//
// [Retry] re-executes an operation while it fails with an error that reports
// itself as transient through the [Retryable] interface. The delay between
// attempts is fixed and the budget counts retries, not attempts:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return client.do(ctx, req)
//	})
//
// With a budget of 3 the operation runs at most 4 times and adds at most
// 3 × delay of waiting. Errors that are not retryable end the loop on the
// first failure and are returned unchanged, as is the error of the last
// attempt once the budget is spent.
//
// The API client classifies its errors by HTTP status: only 5xx responses are
// retryable. Timeouts, network failures and 4xx responses are returned after a
// single attempt.
//
// Wrap an error in [RetryableError] to force a retry for errors that do not
// classify themselves.
package httputil
