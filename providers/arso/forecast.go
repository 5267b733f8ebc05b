package arso

import (
	"context"
	"fmt"
	"net/url"

	"arso-weather/models"
)

// FetchForecast issues one request for the three forecast feeds of a
// location and normalizes them into the view model. The evaluation instant
// for the current-hour flag is taken at call time.
func (c *Client) FetchForecast(ctx context.Context, locationID string) (models.Forecast, error) {
	forecastURL := fmt.Sprintf("%slocation/?lang=%s&location=%s",
		c.baseURL, url.QueryEscape(c.language), url.QueryEscape(locationID))

	var resp forecastResponse
	if err := c.getJSON(ctx, forecastURL, &resp); err != nil {
		return models.Forecast{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return c.normalize(resp, c.now())
}
