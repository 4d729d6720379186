package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache keeps downloaded archives on disk, keyed by source URL, for ttl.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates the cache directory if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Path returns the file an archive for url is (or would be) cached at.
func (c *Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, fmt.Sprintf("%x.zip", sum))
}

// Get returns the cached archive and true if it exists and has not expired.
// A non-positive ttl never expires.
func (c *Cache) Get(url string) ([]byte, bool) {
	path := c.Path(url)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data for url, overwriting any previous entry.
func (c *Cache) Set(url string, data []byte) error {
	if err := os.WriteFile(c.Path(url), data, 0o644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Invalidate drops the entry for url. Missing entries are not an error.
func (c *Cache) Invalidate(url string) error {
	if err := os.Remove(c.Path(url)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}
