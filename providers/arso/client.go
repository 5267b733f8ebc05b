package arso

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"arso-weather/datasource"
)

// DefaultBaseURL is the public ARSO API root
const DefaultBaseURL = "https://vreme.arso.gov.si/api/1.0/"

// DefaultImageBase is where the SVG weather pictograms live
const DefaultImageBase = "https://vreme.arso.gov.si/app/common/images/svg/weather/"

// DefaultLanguage is the display language requested from the forecast endpoint
const DefaultLanguage = "sl"

// Client talks to the ARSO weather API. It implements both
// datasource.LocationResolver and datasource.ForecastSource.
type Client struct {
	baseURL   string
	imageBase string
	language  string
	client    *http.Client
	now       func() time.Time // evaluation instant, swappable in tests
}

// Ensure Client implements both provider interfaces
var (
	_ datasource.LocationResolver = (*Client)(nil)
	_ datasource.ForecastSource   = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at a different API root
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithImageBase changes the icon asset root used for icon URLs
func WithImageBase(u string) Option {
	return func(c *Client) { c.imageBase = u }
}

// WithLanguage changes the display language requested from the API
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithClock overrides the evaluation instant used to mark the current hour
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a new ARSO API client
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		imageBase: DefaultImageBase,
		language:  DefaultLanguage,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the name of this provider
func (c *Client) Name() string {
	return "ARSO"
}

// statusError is returned for non-2xx upstream responses
type statusError struct {
	status int
}

func (e statusError) Error() string {
	return fmt.Sprintf("API returned non-2xx status: %d", e.status)
}

// getJSON issues one GET against the API and decodes the body into out
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError{status: resp.StatusCode}
	}

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(rawData, out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}

	return nil
}

// IconURL builds the asset URL for a weather pictogram code.
// An empty code yields an empty URL.
func (c *Client) IconURL(iconCode string) string {
	if iconCode == "" {
		return ""
	}
	return c.imageBase + iconCode + ".svg"
}
