package datasource

import (
	"context"
	"fmt"
	"unicode/utf8"

	"arso-weather/models"

	"golang.org/x/time/rate"
)

// RateLimitedResolver wraps a LocationResolver with rate limiting
type RateLimitedResolver struct {
	resolver LocationResolver
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedResolver creates a new rate limited location resolver.
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedResolver(resolver LocationResolver, rps float64, burst int) *RateLimitedResolver {
	return &RateLimitedResolver{
		resolver: resolver,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", resolver.Name()),
	}
}

// Search resolves locations, respecting rate limits. Short queries pass
// straight through: they never reach the network, so they consume no tokens.
func (r *RateLimitedResolver) Search(ctx context.Context, query string) ([]models.LocationMatch, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return r.resolver.Search(ctx, query)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	return r.resolver.Search(ctx, query)
}

// Name returns the resolver name
func (r *RateLimitedResolver) Name() string {
	return r.name
}

// RateLimitedForecastSource wraps a ForecastSource with rate limiting
type RateLimitedForecastSource struct {
	source  ForecastSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedForecastSource creates a new rate limited forecast source
func NewRateLimitedForecastSource(source ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchForecast fetches forecast data, respecting rate limits
func (r *RateLimitedForecastSource) FetchForecast(ctx context.Context, locationID string) (models.Forecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Forecast{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	return r.source.FetchForecast(ctx, locationID)
}

// Name returns the source name
func (r *RateLimitedForecastSource) Name() string {
	return r.name
}

// RateLimitedClient combines both interfaces for providers that implement both,
// with separate token buckets for the search and forecast endpoints
type RateLimitedClient struct {
	resolver        LocationResolver
	source          ForecastSource
	searchLimiter   *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedClient creates a wrapper that implements both interfaces with rate limiting.
// searchRPS and forecastRPS are the maximum requests per second for the two endpoints.
func NewRateLimitedClient(client interface{}, searchRPS, forecastRPS float64, burst int) *RateLimitedClient {
	name := "Unknown"

	if lr, ok := client.(LocationResolver); ok {
		name = lr.Name()
	} else if fs, ok := client.(ForecastSource); ok {
		name = fs.Name()
	}

	return &RateLimitedClient{
		resolver:        client.(LocationResolver),
		source:          client.(ForecastSource),
		searchLimiter:   rate.NewLimiter(rate.Limit(searchRPS), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(forecastRPS), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", name),
	}
}

// Search implements LocationResolver with rate limiting
func (r *RateLimitedClient) Search(ctx context.Context, query string) ([]models.LocationMatch, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return r.resolver.Search(ctx, query)
	}
	if err := r.searchLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.resolver.Search(ctx, query)
}

// FetchForecast implements ForecastSource with rate limiting
func (r *RateLimitedClient) FetchForecast(ctx context.Context, locationID string) (models.Forecast, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return models.Forecast{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchForecast(ctx, locationID)
}

// Name returns the client name
func (r *RateLimitedClient) Name() string {
	return r.name
}

// Verify that our rate limited types implement the required interfaces
var (
	_ LocationResolver = (*RateLimitedResolver)(nil)
	_ ForecastSource   = (*RateLimitedForecastSource)(nil)
	_ LocationResolver = (*RateLimitedClient)(nil)
	_ ForecastSource   = (*RateLimitedClient)(nil)
)
