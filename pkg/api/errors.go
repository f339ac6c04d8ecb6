package api

import (
	"context"
	"errors"
	"fmt"
)

// User-facing messages for failures without a server-provided message.
const (
	MsgNetwork = "Failed to connect to the server. Please check your internet connection."
	MsgTimeout = "Request timed out. Please try again."
	MsgUnknown = "An unexpected error occurred. Please try again."
)

// StatusTimeout is the status reported when the request deadline elapses.
// No response was received; the value mirrors 408 Request Timeout.
const StatusTimeout = 408

// Kind classifies a [RequestError].
type Kind int

const (
	// KindNetwork means no response was received (Status 0).
	KindNetwork Kind = iota
	// KindTimeout means the per-call deadline elapsed (Status 408).
	KindTimeout
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RequestError is returned by every [Client] operation.
//
// Message is safe to show to users. Data holds the decoded error body for
// HTTP errors, or the underlying cause for network failures.
type RequestError struct {
	Message string
	Status  int
	Data    any

	cause   error
	timeout bool
}

func (e *RequestError) Error() string { return e.Message }

// Unwrap returns the transport-level cause, if any.
func (e *RequestError) Unwrap() error { return e.cause }

// Retryable reports whether the server failed in a way worth repeating.
// Only 5xx responses qualify.
func (e *RequestError) Retryable() bool { return e.Status >= 500 }

// Kind classifies the error.
func (e *RequestError) Kind() Kind {
	switch {
	case e.timeout:
		return KindTimeout
	case e.Status == 0:
		return KindNetwork
	default:
		return KindHTTP
	}
}

func timeoutError(cause error) *RequestError {
	return &RequestError{Message: MsgTimeout, Status: StatusTimeout, cause: cause, timeout: true}
}

func networkError(cause error) *RequestError {
	return &RequestError{Message: MsgNetwork, Status: 0, Data: cause, cause: cause}
}

// ContextError converts the error of an ended context into a RequestError:
// a timeout for an elapsed deadline, a network error otherwise.
func ContextError(err error) *RequestError {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(err)
	}
	return networkError(err)
}

// Message returns the user-facing message for err: the RequestError message
// when err is (or wraps) one, [MsgUnknown] otherwise.
func Message(err error) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return MsgUnknown
}

// StatusOf returns the RequestError status of err, or -1 when err carries none.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return -1
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return StatusOf(err) == 404 }
