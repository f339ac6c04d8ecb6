// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks are injected into the components that emit events (the API client
// and the snapshot loader) instead of being registered globally, so two
// clients in one process can report to different backends.
//
// # Usage
//
//	client := api.New(cfg, api.WithHooks(observability.NewLogHooks(logger)))
//	l := loader.New(client, loader.WithCacheHooks(myMetrics))
//
// Components default to the no-op implementations when no hooks are given.
package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from snapshot cache lookups.
type CacheHooks interface {
	// OnCacheHit records a lookup served from cache.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a lookup that required a fetch.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response, successful or not.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a request that produced no response (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)

	// OnRetry records that a failed attempt is about to be repeated.
	OnRetry(ctx context.Context, method, path string, attempt int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}
func (NoopHTTPHooks) OnRetry(context.Context, string, string, int, error)                    {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks reports HTTP and cache events as debug log lines.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that write to logger. A nil logger uses log.Default().
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, statusCode int, duration time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", statusCode,
		"duration", duration.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "path", path, "err", err)
}

func (h *LogHooks) OnRetry(_ context.Context, method, path string, attempt int, err error) {
	h.logger.Warn("retrying request", "method", method, "path", path, "attempt", attempt, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

var (
	_ CacheHooks = NoopCacheHooks{}
	_ HTTPHooks  = NoopHTTPHooks{}
	_ CacheHooks = (*LogHooks)(nil)
	_ HTTPHooks  = (*LogHooks)(nil)
)
