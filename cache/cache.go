package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"arso-weather/datasource"
	"arso-weather/models"
)

// CachedResolver wraps a LocationResolver and adds caching functionality.
// Repeated keystrokes often re-issue the same query; a short TTL absorbs
// that without changing what the caller sees.
type CachedResolver struct {
	resolver       datasource.LocationResolver
	cache          map[string]searchCacheEntry // key is the normalized query
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// searchCacheEntry represents a cached search result with its timestamp
type searchCacheEntry struct {
	Matches   []models.LocationMatch
	Timestamp time.Time
}

// NewCachedResolver creates a new cached wrapper around a location resolver
func NewCachedResolver(resolver datasource.LocationResolver, cacheDuration time.Duration) *CachedResolver {
	return &CachedResolver{
		resolver:      resolver,
		cache:         make(map[string]searchCacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying resolver with [Cached] prefix
func (c *CachedResolver) Name() string {
	return c.resolver.Name() + " [Cached]"
}

// Search resolves locations, using cache when available. Sub-minimum
// queries bypass the cache entirely; they never reach the network anyway.
func (c *CachedResolver) Search(ctx context.Context, query string) ([]models.LocationMatch, error) {
	if utf8.RuneCountInString(query) < datasource.MinQueryLength {
		return c.resolver.Search(ctx, query)
	}

	cacheKey := strings.ToLower(strings.TrimSpace(query))

	c.mutex.RLock()
	entry, found := c.cache[cacheKey]
	c.mutex.RUnlock()

	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		slog.Debug("search cache hit",
			"query", cacheKey,
			"resolver", c.resolver.Name(),
			"age", time.Since(entry.Timestamp).Round(time.Second))

		return entry.Matches, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	matches, err := c.resolver.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.cache[cacheKey] = searchCacheEntry{
		Matches:   matches,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return matches, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedResolver) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedResolver implements the LocationResolver interface
var _ datasource.LocationResolver = (*CachedResolver)(nil)
