package arso

import (
	"context"
	"fmt"
	"net/url"
	"unicode/utf8"

	"arso-weather/datasource"
	"arso-weather/models"
)

// Search queries the location search endpoint and returns one match per
// feature, preserving upstream order. Queries shorter than the minimum
// length return an empty result without touching the network.
func (c *Client) Search(ctx context.Context, query string) ([]models.LocationMatch, error) {
	if utf8.RuneCountInString(query) < datasource.MinQueryLength {
		return nil, nil
	}

	searchURL := fmt.Sprintf("%slocations/?loc=%s", c.baseURL, url.QueryEscape(query))

	var resp locationsResponse
	if err := c.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	matches := make([]models.LocationMatch, 0, len(resp.Features))
	for _, f := range resp.Features {
		matches = append(matches, models.LocationMatch{
			ID:                  f.Properties.ID,
			Title:               f.Properties.Title,
			PreviewTemperatureC: previewTemperature(f.Properties.Days),
		})
	}

	return matches, nil
}

// previewTemperature pulls the first reading of the first day, if any.
// Search results carry a sparse day list; a missing reading is normal.
func previewTemperature(days []day) *float64 {
	if len(days) == 0 || len(days[0].Timeline) == 0 {
		return nil
	}
	return parseOptionalFloat(days[0].Timeline[0].T)
}
