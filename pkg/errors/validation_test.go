package errors

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"3f0c2a5e-8d4b-4c1e-9a7f-1b2c3d4e5f60", false},
		{"skill-1", false},
		{"", true},
		{"   ", true},
		{"a/b", true},
		{`a\b`, true},
		{"bad\x00id", true},
		{strings.Repeat("x", maxIDLength+1), true},
	}
	for _, tt := range tests {
		err := ValidateID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateID(%q) code = %v", tt.id, GetCode(err))
		}
	}
}

func TestValidateSeedFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    SeedFormat
		wantErr bool
	}{
		{"seed.json", SeedJSON, false},
		{"data/Portfolio.TOML", SeedTOML, false},
		{"seed.yaml", "", true},
		{"seed", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ValidateSeedFilename(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ValidateSeedFilename(%q) = %q, %v", tt.name, got, err)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8000/api", false},
		{"https://portfolio.example.com/api", false},
		{"", true},
		{"ftp://example.com", true},
		{"localhost:8000", true},
		{"http:///api", true},
	}
	for _, tt := range tests {
		if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
