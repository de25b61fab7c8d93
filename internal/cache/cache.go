// Package cache provides the layered response cache used by the
// listing client. Keys are derived from request URLs; values are the
// raw JSON pages, so a cache hit skips the network entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache is the storage contract shared by the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// keyNamespace versions the key layout; bump it when the cached shape
// changes so stale entries from older builds miss cleanly.
const keyNamespace = "personarium:v1:"

// Key derives the cache key for a request URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return keyNamespace + hex.EncodeToString(hash[:])
}

// DefaultDir returns the disk cache location under the user cache
// directory, falling back to a temp path when the home lookup fails.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "personarium")
}
