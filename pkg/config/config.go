// Package config loads portfolio settings.
//
// Settings are layered: built-in defaults, then an optional TOML file, then
// environment variables. The file layout:
//
//	[api]
//	url = "https://portfolio.example.com/api"
//	timeout = "10s"
//	retry_attempts = 3
//	retry_delay = "1s"
//
//	[cache]
//	ttl = "5m"
//
//	[server]
//	addr = ":8000"
//
//	[mongo]
//	url = "mongodb://localhost:27017"
//	database = "portfolio"
//
//	[redis]
//	addr = "localhost:6379"
//	tls = false
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/portfolio/pkg/api"
	"github.com/matzehuels/portfolio/pkg/buildinfo"
	"github.com/matzehuels/portfolio/pkg/errors"
	"github.com/matzehuels/portfolio/pkg/loader"
)

const appName = "portfolio"

// Config is the full configuration of the CLI and server.
type Config struct {
	API    APIConfig    `toml:"api"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
	Redis  RedisConfig  `toml:"redis"`
}

// APIConfig configures the API client.
type APIConfig struct {
	URL           string   `toml:"url"`
	Timeout       Duration `toml:"timeout"`
	RetryAttempts int      `toml:"retry_attempts"`
	RetryDelay    Duration `toml:"retry_delay"`
	HealthTimeout Duration `toml:"health_timeout"`
}

// CacheConfig configures the client-side snapshot cache.
type CacheConfig struct {
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	SnapshotTTL Duration `toml:"snapshot_ttl"`
}

// MongoConfig selects the MongoDB store. An empty URL selects the
// in-memory store.
type MongoConfig struct {
	URL      string `toml:"url"`
	Database string `toml:"database"`
}

// RedisConfig enables the shared response cache when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TLS      bool   `toml:"tls"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			URL:           api.DefaultBaseURL,
			Timeout:       Duration{api.DefaultTimeout},
			RetryAttempts: api.DefaultRetryAttempts,
			RetryDelay:    Duration{api.DefaultRetryDelay},
			HealthTimeout: Duration{api.DefaultHealthTimeout},
		},
		Cache: CacheConfig{
			TTL: Duration{loader.DefaultTTL},
		},
		Server: ServerConfig{
			Addr:        ":8000",
			SnapshotTTL: Duration{loader.DefaultTTL},
		},
		Mongo: MongoConfig{
			Database: appName,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/portfolio/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load builds the configuration from defaults, the TOML file at path and
// the process environment. An empty path reads [DefaultPath] if it exists;
// an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return cfg, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// ApplyEnv overrides fields from environment variables read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}
	dur := func(key string, dst *Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		if err := dst.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	}

	str("PORTFOLIO_API_URL", &c.API.URL)
	str("PORTFOLIO_ADDR", &c.Server.Addr)
	str("MONGO_URL", &c.Mongo.URL)
	str("DB_NAME", &c.Mongo.Database)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)

	for _, fn := range []func() error{
		func() error { return dur("PORTFOLIO_TIMEOUT", &c.API.Timeout) },
		func() error { return num("PORTFOLIO_RETRY_ATTEMPTS", &c.API.RetryAttempts) },
		func() error { return dur("PORTFOLIO_RETRY_DELAY", &c.API.RetryDelay) },
		func() error { return dur("PORTFOLIO_CACHE_TTL", &c.Cache.TTL) },
		func() error { return num("REDIS_DB", &c.Redis.DB) },
		func() error { return flag("REDIS_TLS", &c.Redis.TLS) },
	} {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.API.URL); err != nil {
		return fmt.Errorf("api.url: %w", err)
	}
	switch {
	case c.API.Timeout.Duration <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "api.timeout must be positive")
	case c.API.RetryAttempts < 0:
		return errors.New(errors.ErrCodeInvalidInput, "api.retry_attempts cannot be negative")
	case c.API.RetryDelay.Duration < 0:
		return errors.New(errors.ErrCodeInvalidInput, "api.retry_delay cannot be negative")
	case c.Cache.TTL.Duration < 0:
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	case c.Server.SnapshotTTL.Duration < 0:
		return errors.New(errors.ErrCodeInvalidInput, "server.snapshot_ttl cannot be negative")
	}
	return nil
}

// Client returns the API client configuration.
func (c Config) Client() api.Config {
	return api.Config{
		BaseURL:       c.API.URL,
		Timeout:       c.API.Timeout.Duration,
		RetryAttempts: c.API.RetryAttempts,
		RetryDelay:    c.API.RetryDelay.Duration,
		HealthTimeout: c.API.HealthTimeout.Duration,
		Headers:       map[string]string{"User-Agent": buildinfo.UserAgent()},
	}
}

// Duration is a time.Duration written as a string ("10s", "5m") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
