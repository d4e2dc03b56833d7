// Package cache provides TTL caching for the GeoIP database bytes and for
// rendered ruleset results.
package cache

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// BytesCache holds one cached binary blob (the GeoIP MMDB) with a TTL and
// optional on-disk persistence.
type BytesCache struct {
	mu          sync.RWMutex
	data        []byte
	timestamp   time.Time
	ttl         time.Duration
	persistPath string
}

// NewBytesCache creates a BytesCache with the specified TTL.
func NewBytesCache(ttl time.Duration) *BytesCache {
	return &BytesCache{
		ttl: ttl,
	}
}

// SetPersistPath enables on-disk persistence for the cache.
func (c *BytesCache) SetPersistPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.persistPath = path
}

// Get returns the cached bytes if present and not expired.
func (c *BytesCache) Get() ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.data == nil {
		return nil, false
	}
	if time.Since(c.timestamp) > c.ttl {
		return nil, false
	}
	return c.data, true
}

// Set updates the cache with new data, persisting it when a path is set.
func (c *BytesCache) Set(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = data
	c.timestamp = time.Now()
	if c.persistPath == "" {
		return nil
	}
	return c.persistToFileLocked()
}

type bytesCachePersist struct {
	Data      []byte
	Timestamp time.Time
}

// LoadFromFile restores cache data from disk if available.
func (c *BytesCache) LoadFromFile(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var persisted bytesCachePersist
	if err := gob.NewDecoder(file).Decode(&persisted); err != nil {
		return err
	}

	c.data = persisted.Data
	c.timestamp = persisted.Timestamp
	c.persistPath = path
	return nil
}

func (c *BytesCache) persistToFileLocked() error {
	if c.persistPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.persistPath), 0o755); err != nil {
		return err
	}

	tmpPath := c.persistPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	enc := gob.NewEncoder(file)
	err = enc.Encode(bytesCachePersist{
		Data:      c.data,
		Timestamp: c.timestamp,
	})
	closeErr := file.Close()
	if err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return err
	}
	if closeErr != nil {
		os.Remove(tmpPath) // cleanup on failure
		return closeErr
	}

	return os.Rename(tmpPath, c.persistPath)
}

// ResultCache caches rendered ruleset results for serve mode.
type ResultCache struct {
	mu      sync.RWMutex
	results map[string]*cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	value     string
	timestamp time.Time
}

// NewResultCache creates a new ResultCache with the specified TTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		results: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// Get retrieves a cached result if valid.
func (c *ResultCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.results[key]
	if !ok {
		return "", false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return "", false
	}
	return entry.value, true
}

// Set stores a result in the cache.
func (c *ResultCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[key] = &cacheEntry{
		value:     value,
		timestamp: time.Now(),
	}
}

// Cleanup removes expired entries.
func (c *ResultCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.results {
		if now.Sub(entry.timestamp) > c.ttl {
			delete(c.results, key)
		}
	}
}
