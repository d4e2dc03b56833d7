package cache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func TestBytesCacheRoundTrip(t *testing.T) {
	c := NewBytesCache(time.Hour)
	if _, ok := c.Get(); ok {
		t.Fatal("empty cache must miss")
	}
	if err := c.Set([]byte("payload")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok := c.Get()
	if !ok || !bytes.Equal(data, []byte("payload")) {
		t.Fatalf("Get() = %q, %v", data, ok)
	}
}

func TestBytesCacheExpiry(t *testing.T) {
	c := NewBytesCache(time.Nanosecond)
	if err := c.Set([]byte("payload")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get(); ok {
		t.Fatal("expired entry must miss")
	}
}

func TestBytesCachePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geoip", "db.cache")

	c := NewBytesCache(time.Hour)
	c.SetPersistPath(path)
	if err := c.Set([]byte("payload")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	restored := NewBytesCache(time.Hour)
	if err := restored.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	data, ok := restored.Get()
	if !ok || !bytes.Equal(data, []byte("payload")) {
		t.Fatalf("restored Get() = %q, %v", data, ok)
	}
}

func TestResultCache(t *testing.T) {
	c := NewResultCache(time.Hour)
	if _, ok := c.Get("reject.list"); ok {
		t.Fatal("empty cache must miss")
	}
	c.Set("reject.list", "# output")
	value, ok := c.Get("reject.list")
	if !ok || value != "# output" {
		t.Fatalf("Get() = %q, %v", value, ok)
	}
}

func TestResultCacheCleanup(t *testing.T) {
	c := NewResultCache(time.Nanosecond)
	c.Set("reject.list", "# output")
	time.Sleep(5 * time.Millisecond)
	c.Cleanup()
	if _, ok := c.Get("reject.list"); ok {
		t.Fatal("cleaned entry must miss")
	}
	c.mu.RLock()
	remaining := len(c.results)
	c.mu.RUnlock()
	if remaining != 0 {
		t.Fatalf("Cleanup left %d entries", remaining)
	}
}
