package api

import "time"

// Defaults used by [DefaultConfig].
const (
	DefaultBaseURL       = "http://localhost:8000/api"
	DefaultTimeout       = 10 * time.Second
	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second
	DefaultHealthTimeout = 5 * time.Second
)

// Config controls how a [Client] talks to the API.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// Timeout bounds a single HTTP attempt. Retries get a fresh deadline.
	Timeout time.Duration

	// RetryAttempts is the number of retries after the first attempt.
	// Zero disables retries.
	RetryAttempts int

	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration

	// HealthTimeout bounds [Client.HealthCheck].
	HealthTimeout time.Duration

	// Headers are sent with every request and override the defaults.
	Headers map[string]string
}

// DefaultConfig returns the configuration for a local development backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelay,
		HealthTimeout: DefaultHealthTimeout,
	}
}

// withDefaults fills unset fields. RetryAttempts and RetryDelay keep their
// zero values since both are meaningful.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HealthTimeout <= 0 {
		c.HealthTimeout = DefaultHealthTimeout
	}
	c.RetryAttempts = max(c.RetryAttempts, 0)
	c.RetryDelay = max(c.RetryDelay, 0)
	return c
}
