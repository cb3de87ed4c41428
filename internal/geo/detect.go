package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Location holds geographic coordinates detected from an IP address.
type Location struct {
	Latitude  float64 `json:"lat" msgpack:"lat"`
	Longitude float64 `json:"lon" msgpack:"lon"`
	City      string  `json:"city" msgpack:"city"`
	Country   string  `json:"country" msgpack:"country"`
	Timezone  string  `json:"timezone" msgpack:"timezone"`
}

// Coordinate returns the location as a sea-level coordinate.
func (l Location) Coordinate() Coordinate {
	return Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

// geoAPIBase is a variable so tests can point it at an httptest server.
var geoAPIBase = "http://ip-api.com/json/"

const geoAPIFields = "status,message,lat,lon,city,country,timezone"

// DetectLocation asks ip-api.com where ip is. An empty ip means the caller's
// own public address. The service is free and needs no key.
func DetectLocation(ctx context.Context, ip string) (*Location, error) {
	endpoint := geoAPIBase + url.PathEscape(ip) + "?fields=" + geoAPIFields

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geolocation request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}
