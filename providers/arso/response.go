package arso

// Raw API response structures. The ARSO API wraps everything in GeoJSON-ish
// feature collections; numeric values arrive as strings and most timeline
// fields are present only for some feed types, so every leaf is optional.

type locationsResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry   geometry   `json:"geometry"`
	Properties properties `json:"properties"`
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // lon, lat
}

type properties struct {
	Country string `json:"country"`
	Title   string `json:"title"`
	ID      string `json:"id"`
	Days    []day  `json:"days"`
}

type day struct {
	Date     string          `json:"date"` // ISO calendar date, no time part
	Timeline []timelineEntry `json:"timeline"`
}

// timelineEntry is one reading within a day: a single entry for daily
// summaries, one per hour for the short-range feed.
type timelineEntry struct {
	Valid         string `json:"valid"`
	T             string `json:"t"`     // temperature, string-encoded
	TMin          string `json:"tnsyn"` // daily minimum
	TMax          string `json:"txsyn"` // daily maximum
	IconCode      string `json:"clouds_icon_wwsyn_icon"`
	Condition     string `json:"clouds_shortText"`
	WindLabel     string `json:"ff_shortText"`
	WindSpeed     string `json:"ff_val"` // km/h
	HumidityLabel string `json:"rh_shortText"`
	Humidity      string `json:"rh"` // percent
}

// forecastResponse carries the three parallel feeds for one location
type forecastResponse struct {
	Observation feed `json:"observation"`
	Forecast1h  feed `json:"forecast1h"`
	Forecast24h feed `json:"forecast24h"`
}

type feed struct {
	Features []feature `json:"features"`
}
