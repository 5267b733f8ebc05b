package arso

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"arso-weather/models"
)

// Formats the API uses. Day dates carry no time part; timeline validity
// stamps are RFC 3339.
const (
	dayDateFormat   = "2006-01-02"
	hourLabelFormat = "15:04"
	dateLabelFormat = "Monday, 2 January 2006"
	dayLabelFormat  = "Mon"
)

// normalize converts the three raw feeds into a models.Forecast. It is pure:
// the same payload and instant always produce the same value. Structural
// gaps (empty feature lists, missing day lists, unparsable day dates) abort
// with ErrMalformedPayload; optional field gaps degrade to nil or "".
func (c *Client) normalize(resp forecastResponse, now time.Time) (models.Forecast, error) {
	observation, err := firstFeature(resp.Observation, "observation")
	if err != nil {
		return models.Forecast{}, err
	}
	hourlyFeed, err := firstFeature(resp.Forecast1h, "forecast1h")
	if err != nil {
		return models.Forecast{}, err
	}
	dailyFeed, err := firstFeature(resp.Forecast24h, "forecast24h")
	if err != nil {
		return models.Forecast{}, err
	}

	if len(observation.Properties.Days) == 0 {
		return models.Forecast{}, fmt.Errorf("%w: observation has no days", ErrMalformedPayload)
	}
	if len(hourlyFeed.Properties.Days) == 0 {
		return models.Forecast{}, fmt.Errorf("%w: forecast1h has no days", ErrMalformedPayload)
	}
	obsDay := observation.Properties.Days[0]

	// The forecast's date comes from the payload, not the wall clock
	asOf, err := time.Parse(dayDateFormat, obsDay.Date)
	if err != nil {
		return models.Forecast{}, fmt.Errorf("%w: bad observation date %q", ErrMalformedPayload, obsDay.Date)
	}

	daily, err := c.normalizeDaily(dailyFeed.Properties.Days)
	if err != nil {
		return models.Forecast{}, err
	}

	forecast := models.Forecast{
		LocationName: strings.ToUpper(observation.Properties.Title),
		AsOf:         asOf,
		DateLabel:    asOf.Format(dateLabelFormat),
		Hourly:       c.normalizeHourly(hourlyFeed.Properties.Days, now),
		Daily:        daily,
	}

	if len(obsDay.Timeline) > 0 {
		forecast.Current = c.normalizeCurrent(obsDay.Timeline[0])
	}

	return forecast, nil
}

// firstFeature enforces the "exactly one feature expected" shape of each feed
func firstFeature(f feed, feedName string) (feature, error) {
	if len(f.Features) == 0 {
		return feature{}, fmt.Errorf("%w: feed %s has no features", ErrMalformedPayload, feedName)
	}
	return f.Features[0], nil
}

// normalizeCurrent maps the newest observation reading to display fields
func (c *Client) normalizeCurrent(entry timelineEntry) models.CurrentConditions {
	return models.CurrentConditions{
		TemperatureC:    parseOptionalFloat(entry.T),
		Condition:       entry.Condition,
		WindLabel:       entry.WindLabel,
		WindSpeedKph:    parseOptionalFloat(entry.WindSpeed),
		HumidityLabel:   entry.HumidityLabel,
		HumidityPercent: parseOptionalFloat(entry.Humidity),
		IconURL:         c.IconURL(entry.IconCode),
	}
}

// normalizeHourly maps today's full hourly timeline, unfiltered, marking the
// entry whose hour-of-day matches the evaluation instant's local hour
func (c *Client) normalizeHourly(days []day, now time.Time) []models.HourlyEntry {
	if len(days) == 0 {
		return nil
	}

	timeline := days[0].Timeline
	hourly := make([]models.HourlyEntry, 0, len(timeline))
	for _, entry := range timeline {
		h := models.HourlyEntry{
			TemperatureC:    parseOptionalFloat(entry.T),
			WindSpeedKph:    parseOptionalFloat(entry.WindSpeed),
			HumidityPercent: parseOptionalFloat(entry.Humidity),
			IconURL:         c.IconURL(entry.IconCode),
		}

		// An unparsable validity stamp degrades to an unlabeled entry
		// that can never be the current hour
		if t, err := time.Parse(time.RFC3339, entry.Valid); err == nil {
			local := t.In(now.Location())
			h.Time = local
			h.Label = local.Format(hourLabelFormat)
			h.IsCurrentHour = local.Hour() == now.Hour()
		}

		hourly = append(hourly, h)
	}

	return hourly
}

// normalizeDaily maps the multi-day feed, dropping day 0: today is already
// covered by the current conditions and the hourly timeline. Day dates are
// structural, so an unparsable one is fatal; a day with an empty timeline
// carries no reading and is skipped.
func (c *Client) normalizeDaily(days []day) ([]models.DailyEntry, error) {
	if len(days) <= 1 {
		return nil, nil
	}

	daily := make([]models.DailyEntry, 0, len(days)-1)
	for _, d := range days[1:] {
		date, err := time.Parse(dayDateFormat, d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad forecast24h date %q", ErrMalformedPayload, d.Date)
		}
		if len(d.Timeline) == 0 {
			continue
		}

		entry := d.Timeline[0]
		daily = append(daily, models.DailyEntry{
			Date:      date,
			DayLabel:  date.Format(dayLabelFormat),
			TempMaxC:  parseOptionalFloat(entry.TMax),
			TempMinC:  parseOptionalFloat(entry.TMin),
			Condition: entry.Condition,
			IconURL:   c.IconURL(entry.IconCode),
		})
	}

	return daily, nil
}

// parseOptionalFloat is the best-effort numeric parse the string-encoded
// fields need: absent or non-numeric input yields nil, never an error
func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
