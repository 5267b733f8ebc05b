package models

// LocationMatch is one candidate returned by a location search
type LocationMatch struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	PreviewTemperatureC *float64 `json:"previewTemperatureC"` // nil when the source has no reading
}
