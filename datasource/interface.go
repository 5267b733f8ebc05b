package datasource

import (
	"context"

	"arso-weather/models"
)

// MinQueryLength is the shortest query, in runes, a LocationResolver will
// send upstream. Anything shorter resolves to an empty result locally,
// keeping per-keystroke searches from hammering the API.
const MinQueryLength = 2

// LocationResolver is an interface for services that can match free-text
// queries to known locations
type LocationResolver interface {
	// Search returns candidate locations for a query, preserving upstream
	// order. Queries below the minimum length yield an empty result without
	// any network traffic.
	Search(ctx context.Context, query string) ([]models.LocationMatch, error)

	// Name returns the resolver's name
	Name() string
}

// ForecastSource is an interface for services that can produce a normalized
// forecast for a location identifier
type ForecastSource interface {
	// FetchForecast fetches and normalizes the forecast for a location
	FetchForecast(ctx context.Context, locationID string) (models.Forecast, error)

	// Name returns the source's name
	Name() string
}
