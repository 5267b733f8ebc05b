package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"arso-weather/datasource"
	"arso-weather/models"
)

// CachedForecastSource wraps a ForecastSource and adds caching functionality
type CachedForecastSource struct {
	source         datasource.ForecastSource
	cache          map[string]forecastCacheEntry // key is the location id
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// forecastCacheEntry represents a cached forecast with its timestamp
type forecastCacheEntry struct {
	Data      models.Forecast
	Timestamp time.Time
}

// NewCachedForecastSource creates a new cached wrapper around a forecast source
func NewCachedForecastSource(source datasource.ForecastSource, cacheDuration time.Duration) *CachedForecastSource {
	return &CachedForecastSource{
		source:        source,
		cache:         make(map[string]forecastCacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying forecast source with [Cached] prefix
func (c *CachedForecastSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchForecast fetches forecast data, using cache when available.
// Note that a cached forecast keeps the current-hour flag computed when it
// was fetched; the TTL should stay well under an hour for that to hold.
func (c *CachedForecastSource) FetchForecast(ctx context.Context, locationID string) (models.Forecast, error) {
	c.mutex.RLock()
	entry, found := c.cache[locationID]
	c.mutex.RUnlock()

	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		slog.Debug("forecast cache hit",
			"location", locationID,
			"source", c.source.Name(),
			"age", time.Since(entry.Timestamp).Round(time.Second))

		return entry.Data, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	forecast, err := c.source.FetchForecast(ctx, locationID)
	if err != nil {
		return models.Forecast{}, err
	}

	c.mutex.Lock()
	c.cache[locationID] = forecastCacheEntry{
		Data:      forecast,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return forecast, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedForecastSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*CachedForecastSource)(nil)
