package translate

import (
	"encoding/base64"
	"fmt"
	"sync"
)

// Cache memoizes translations for the lifetime of the owning service. It is
// injected rather than process-global so tests and sessions stay isolated.
// Entries are unbounded and never expire; Clear is the only eviction.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// CacheStats reports the cache contents.
type CacheStats struct {
	Size int
	Keys []string
}

// NewCache creates an empty translation cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// CacheKey builds the memoization key: language pair plus the first 100
// characters of the text, base64-encoded. Truncation counts runes, not
// bytes, so multibyte text keeps its full 100-character prefix.
func CacheKey(source, target, text string) string {
	prefix := text
	if r := []rune(prefix); len(r) > 100 {
		prefix = string(r[:100])
	}
	return fmt.Sprintf("%s|%s|%s", source, target, base64.StdEncoding.EncodeToString([]byte(prefix)))
}

// Get returns the cached translation for key, if any.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a translation.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

// Stats reports the current size and key list.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return CacheStats{Size: len(c.entries), Keys: keys}
}
