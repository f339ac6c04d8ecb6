package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SnapshotKey is the cache key of the portfolio snapshot for scope, which
// is a user id on the server and the API base URL in the CLI.
func SnapshotKey(scope string) string {
	return "snapshot:" + Hash([]byte(scope))[:16]
}
