package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// request performs a single HTTP exchange with a deadline of cfg.Timeout.
//
// A 2xx JSON body is decoded into out (nil out discards it). Every failure
// is a *RequestError: 408 when the deadline elapsed, 0 when no usable
// response arrived, the HTTP status otherwise.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	return c.requestTimeout(ctx, c.cfg.Timeout, method, path, body, out)
}

func (c *Client) requestTimeout(ctx context.Context, timeout time.Duration, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return networkError(fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return networkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	c.hooks.OnRequest(ctx, method, c.host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.hooks.OnError(ctx, method, c.host, path, err)
		return transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.hooks.OnResponse(ctx, method, c.host, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpError(resp, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return networkError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// transportError classifies a failure that left no usable response.
// An elapsed deadline wins over whatever error the transport reported.
func transportError(ctx context.Context, err error) *RequestError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return timeoutError(err)
	}
	return networkError(err)
}

// httpError builds the error for a non-2xx response. The message is taken
// from the body's "detail" or "message" field, falling back to "HTTP <status>".
// A body that is not JSON is reported as {"message": text}.
func httpError(resp *http.Response, raw []byte) *RequestError {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		text := string(raw)
		if text == "" {
			text = http.StatusText(resp.StatusCode)
		}
		data = map[string]any{"message": text}
	}
	return &RequestError{
		Message: errorMessage(data, resp.StatusCode),
		Status:  resp.StatusCode,
		Data:    data,
	}
}

func errorMessage(data any, status int) string {
	if m, ok := data.(map[string]any); ok {
		for _, key := range []string{"detail", "message"} {
			if s := stringify(m[key]); s != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// stringify renders a JSON value as message text. Structured values such
// as validation error lists are re-encoded.
func stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
