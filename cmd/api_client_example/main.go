package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func main() {
	fmt.Println("Weather API Client Example")
	fmt.Println("=========================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	query := "Celje"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	// Search for locations matching the query
	fmt.Printf("Searching locations for %q...\n", query)
	searchURL := fmt.Sprintf("%s/api/locations?loc=%s", baseURL, url.QueryEscape(query))
	searchResp, err := http.Get(searchURL)
	if err != nil {
		fmt.Printf("Error searching locations: %v\n", err)
		os.Exit(1)
	}
	defer searchResp.Body.Close()

	var matches []struct {
		ID                  string   `json:"id"`
		Title               string   `json:"title"`
		PreviewTemperatureC *float64 `json:"previewTemperatureC"`
	}
	searchBody, _ := io.ReadAll(searchResp.Body)
	json.Unmarshal(searchBody, &matches)

	if len(matches) == 0 {
		fmt.Println("No locations matched. Try another query.")
		return
	}

	for _, m := range matches {
		if m.PreviewTemperatureC != nil {
			fmt.Printf("  %-12s %s (%.0f°C)\n", m.ID, m.Title, *m.PreviewTemperatureC)
		} else {
			fmt.Printf("  %-12s %s\n", m.ID, m.Title)
		}
	}

	// Select the first match so the service keeps it refreshed
	location := matches[0]
	fmt.Printf("\nSelecting %s...\n", location.Title)

	selectURL := fmt.Sprintf("%s/api/select/%s", baseURL, url.PathEscape(location.ID))
	selectResp, err := http.Post(selectURL, "application/json", nil)
	if err != nil {
		fmt.Printf("Error selecting location: %v\n", err)
		os.Exit(1)
	}
	defer selectResp.Body.Close()

	// Read and pretty print the normalized forecast
	forecastBody, _ := io.ReadAll(selectResp.Body)

	var forecastData map[string]interface{}
	json.Unmarshal(forecastBody, &forecastData)

	prettyJSON, _ := json.MarshalIndent(forecastData, "", "  ")
	fmt.Printf("\nForecast for %s:\n%s\n", location.Title, string(prettyJSON))
}
