package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/portfolio/pkg/httputil"
	"github.com/matzehuels/portfolio/pkg/observability"
)

// Client is a portfolio API client. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
	hooks  observability.HTTPHooks
	host   string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Deadlines are applied
// per call through the request context, so hc needs no Timeout of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHooks sets the HTTP observability hooks.
func WithHooks(h observability.HTTPHooks) Option {
	return func(c *Client) {
		if h != nil {
			c.hooks = h
		}
	}
}

// New creates a client for cfg. Unset fields fall back to [DefaultConfig].
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: log.Default(),
		hooks:  observability.NoopHTTPHooks{},
	}
	if u, err := url.Parse(cfg.BaseURL); err == nil {
		c.host = u.Host
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// withRetry runs fn under the configured retry policy.
func (c *Client) withRetry(ctx context.Context, method, path string, fn func() error) error {
	err := httputil.RetryNotify(ctx, c.cfg.RetryAttempts, c.cfg.RetryDelay, fn, func(attempt int, err error) {
		c.logger.Debug("retrying", "method", method, "path", path, "attempt", attempt,
			"status", StatusOf(err), "delay", c.cfg.RetryDelay)
		c.hooks.OnRetry(ctx, method, path, attempt, err)
	})
	// A context ending during the retry delay surfaces as ctx.Err().
	var re *RequestError
	if err != nil && !errors.As(err, &re) {
		return ContextError(err)
	}
	return err
}

// call performs one retried request and decodes the response into a T.
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.withRetry(ctx, method, path, func() error {
		out = *new(T)
		return c.request(ctx, method, path, body, &out)
	})
	return out, err
}

// resource joins path segments below the base URL, escaping each one.
func resource(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}
