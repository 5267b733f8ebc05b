package models

import (
	"time"
)

// Forecast is the normalized view of one location's weather, rebuilt whole
// on every successful fetch
type Forecast struct {
	LocationName string            `json:"locationName"` // upper-cased display name
	AsOf         time.Time         `json:"asOf"`         // calendar date of the observation day
	DateLabel    string            `json:"dateLabel"`    // display label derived from AsOf
	Current      CurrentConditions `json:"current"`
	Hourly       []HourlyEntry     `json:"hourly"` // ascending by time
	Daily        []DailyEntry      `json:"daily"`  // starts at tomorrow
}

// CurrentConditions holds the latest observation for a location.
// Numeric fields are pointers: absent or unparsable upstream values
// normalize to nil rather than zero.
type CurrentConditions struct {
	TemperatureC    *float64 `json:"temperatureC"`
	Condition       string   `json:"condition"`
	WindLabel       string   `json:"windLabel"`
	WindSpeedKph    *float64 `json:"windSpeedKph"`
	HumidityLabel   string   `json:"humidityLabel"`
	HumidityPercent *float64 `json:"humidityPercent"`
	IconURL         string   `json:"iconUrl"`
}

// HourlyEntry is one point of the short-range hourly forecast
type HourlyEntry struct {
	Time            time.Time `json:"time"`
	Label           string    `json:"label"` // e.g. "11:00"
	TemperatureC    *float64  `json:"temperatureC"`
	WindSpeedKph    *float64  `json:"windSpeedKph"`
	HumidityPercent *float64  `json:"humidityPercent"`
	IconURL         string    `json:"iconUrl"`
	IsCurrentHour   bool      `json:"isCurrentHour"`
}

// DailyEntry is one day of the multi-day forecast
type DailyEntry struct {
	Date      time.Time `json:"date"`
	DayLabel  string    `json:"dayLabel"` // e.g. "Mon"
	TempMaxC  *float64  `json:"tempMaxC"`
	TempMinC  *float64  `json:"tempMinC"`
	Condition string    `json:"condition"`
	IconURL   string    `json:"iconUrl"`
}
