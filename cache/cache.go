package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/use-agent/profilepix/models"
)

// entry holds a cached response with its creation timestamp.
type entry struct {
	response  models.ImagesResponse
	createdAt time.Time
}

// Cache is an in-memory LRU of successful responses. Entries are dropped
// after ttl regardless of the max_age a client asks for.
// It is safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[string, entry]
}

// New creates a Cache holding at most maxEntries responses.
func New(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, entry](maxEntries, nil, ttl)}
}

// Key generates a cache key from the profile URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached response if it exists and is younger than maxAge.
// maxAge is in milliseconds. If maxAge <= 0, no cache lookup is performed.
// The returned response is a copy; its slices must not be modified.
func (c *Cache) Get(key string, maxAgeMs int) (*models.ImagesResponse, bool) {
	if maxAgeMs <= 0 {
		return nil, false
	}

	e, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	maxAge := time.Duration(maxAgeMs) * time.Millisecond
	if time.Since(e.createdAt) > maxAge {
		return nil, false
	}

	resp := e.response
	return &resp, true
}

// Set stores a copy of resp, evicting the least recently used entry when full.
func (c *Cache) Set(key string, resp *models.ImagesResponse) {
	c.lru.Add(key, entry{response: *resp, createdAt: time.Now()})
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
