package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	client := cfg.Client()
	if client.BaseURL != "http://localhost:8000/api" {
		t.Errorf("BaseURL = %q", client.BaseURL)
	}
	if client.Timeout != 10*time.Second || client.RetryAttempts != 3 || client.RetryDelay != time.Second {
		t.Errorf("client defaults = %+v", client)
	}
	if cfg.Cache.TTL.Duration != 5*time.Minute {
		t.Errorf("cache ttl = %v", cfg.Cache.TTL)
	}
	if ua := client.Headers["User-Agent"]; !strings.HasPrefix(ua, "portfolio-cli/") {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORTFOLIO_API_URL", "")
	t.Setenv("PORTFOLIO_TIMEOUT", "")
	path := writeFile(t, `
[api]
url = "https://portfolio.example.com/api"
timeout = "3s"
retry_attempts = 1

[cache]
ttl = "1m"

[mongo]
url = "mongodb://db:27017"
database = "cv"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "https://portfolio.example.com/api" {
		t.Errorf("url = %q", cfg.API.URL)
	}
	if cfg.API.Timeout.Duration != 3*time.Second || cfg.API.RetryAttempts != 1 {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.API.RetryDelay.Duration != time.Second {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.Cache.TTL.Duration != time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Mongo.Database != "cv" {
		t.Errorf("database = %q", cfg.Mongo.Database)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad duration", "[api]\ntimeout = \"soon\"\n", "timeout"},
		{"unknown key", "[api]\nurl = \"http://x/api\"\nretries = 2\n", "unknown key"},
		{"bad url", "[api]\nurl = \"localhost\"\n", "api.url"},
		{"negative retries", "[api]\nretry_attempts = -1\n", "retry_attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing config file should be an error")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, err := Load(""); err != nil {
		t.Errorf("missing default config should be ignored: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "portfolio", "config.toml"); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"PORTFOLIO_API_URL":        "https://api.example.com/api",
		"PORTFOLIO_TIMEOUT":        "2s",
		"PORTFOLIO_RETRY_ATTEMPTS": "0",
		"PORTFOLIO_RETRY_DELAY":    "250ms",
		"PORTFOLIO_CACHE_TTL":      "30s",
		"MONGO_URL":                "mongodb://localhost:27017",
		"DB_NAME":                  "portfolio_test",
		"REDIS_ADDR":               "localhost:6379",
		"REDIS_DB":                 "2",
		"REDIS_TLS":                "true",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.URL != "https://api.example.com/api" || cfg.API.Timeout.Duration != 2*time.Second {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.API.RetryAttempts != 0 || cfg.API.RetryDelay.Duration != 250*time.Millisecond {
		t.Errorf("retry = %d/%v", cfg.API.RetryAttempts, cfg.API.RetryDelay)
	}
	if cfg.Cache.TTL.Duration != 30*time.Second {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Mongo.URL == "" || cfg.Mongo.Database != "portfolio_test" || cfg.Redis.DB != 2 || !cfg.Redis.TLS {
		t.Errorf("backends = %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(envMap(map[string]string{"PORTFOLIO_RETRY_ATTEMPTS": "many"})); err == nil {
		t.Error("non-numeric retry attempts should fail")
	}
	if err := cfg.ApplyEnv(envMap(map[string]string{"PORTFOLIO_CACHE_TTL": "5"})); err == nil {
		t.Error("duration without unit should fail")
	}
	if err := cfg.ApplyEnv(envMap(map[string]string{"REDIS_TLS": "maybe"})); err == nil {
		t.Error("non-boolean REDIS_TLS should fail")
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	out, _ := d.MarshalText()
	if string(out) != "1m30s" {
		t.Errorf("MarshalText = %s", out)
	}
}
