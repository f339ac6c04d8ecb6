package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

const maxIDLength = 128

// ValidateID checks a resource id taken from a URL path. Ids are opaque,
// but empty, oversized and control-character ids are rejected before they
// reach storage.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "id cannot contain path separators")
	}
	return nil
}

// SeedFormat is the encoding of a seed file.
type SeedFormat string

const (
	SeedJSON SeedFormat = "json"
	SeedTOML SeedFormat = "toml"
)

// ValidateSeedFilename returns the format of a migration seed file from its
// extension.
func ValidateSeedFilename(name string) (SeedFormat, error) {
	if name == "" {
		return "", New(ErrCodeInvalidInput, "seed filename cannot be empty")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return SeedJSON, nil
	case ".toml":
		return SeedTOML, nil
	default:
		return "", New(ErrCodeInvalidInput, "unsupported seed file %q (want .json or .toml)", filepath.Base(name))
	}
}

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	rest, ok := strings.CutPrefix(rawURL, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, "http://")
	}
	if !ok {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if host, _, _ := strings.Cut(rest, "/"); host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}
	return nil
}
