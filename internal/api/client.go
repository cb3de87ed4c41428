// Package api holds the wire types of the salat HTTP API and a Go client for
// it. The server renders these types and the CLI's --server mode reads them.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/hijri"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

// Client communicates with a salat API server.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL including the /api/v1 prefix.
	// Exported for testing with httptest.
	BaseURL string
	// Language is sent as the lang query parameter when set.
	Language string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// TimesQuery selects the location and parameters for FetchTimes.
// Either Place or both coordinates must be set.
type TimesQuery struct {
	Date      time.Time
	Place     string
	Latitude  *float64
	Longitude *float64
	Elevation float64
	Timezone  string
	Method    string
	Asr       string
	HighLat   string
}

func (q TimesQuery) values() url.Values {
	params := url.Values{}
	if !q.Date.IsZero() {
		params.Set("date", q.Date.Format(DateLayout))
	}
	if q.Place != "" {
		params.Set("place", q.Place)
	}
	if q.Latitude != nil {
		params.Set("lat", strconv.FormatFloat(*q.Latitude, 'f', -1, 64))
	}
	if q.Longitude != nil {
		params.Set("lon", strconv.FormatFloat(*q.Longitude, 'f', -1, 64))
	}
	if q.Elevation != 0 {
		params.Set("elevation", strconv.FormatFloat(q.Elevation, 'f', -1, 64))
	}
	if q.Timezone != "" {
		params.Set("tz", q.Timezone)
	}
	if q.Method != "" {
		params.Set("method", q.Method)
	}
	if q.Asr != "" {
		params.Set("asr", q.Asr)
	}
	if q.HighLat != "" {
		params.Set("high_lat", q.HighLat)
	}
	return params
}

// FetchTimes fetches one day of prayer times.
func (c *Client) FetchTimes(ctx context.Context, q TimesQuery) (*TimesResponse, error) {
	var out TimesResponse
	if err := c.get(ctx, "/times", q.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchRange fetches days consecutive days starting at q.Date (today when zero).
func (c *Client) FetchRange(ctx context.Context, q TimesQuery, days int) ([]TimesResponse, error) {
	params := q.values()
	params.Set("days", strconv.Itoa(days))

	var out []TimesResponse
	if err := c.get(ctx, "/times/range", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchNext fetches the next prayer among prayers (all six when empty).
func (c *Client) FetchNext(ctx context.Context, q TimesQuery, prayers []string) (*NextResponse, error) {
	params := q.values()
	params.Del("date")
	if len(prayers) > 0 {
		params.Set("prayers", strings.Join(prayers, ","))
	}

	var out NextResponse
	if err := c.get(ctx, "/next", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchHijri converts a Gregorian date on the server.
func (c *Client) FetchHijri(ctx context.Context, date time.Time) (*CalendarResponse, error) {
	params := url.Values{}
	params.Set("date", date.Format(DateLayout))

	var out CalendarResponse
	if err := c.get(ctx, "/calendar/hijri", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchGregorian converts a Hijri date on the server.
func (c *Client) FetchGregorian(ctx context.Context, d hijri.Date) (*CalendarResponse, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(d.Year))
	params.Set("month", strconv.Itoa(d.Month))
	params.Set("day", strconv.Itoa(d.Day))

	var out CalendarResponse
	if err := c.get(ctx, "/calendar/gregorian", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchUpcoming fetches the next n events from date. n <= 0 asks for all.
func (c *Client) FetchUpcoming(ctx context.Context, date time.Time, n int) (*UpcomingResponse, error) {
	params := url.Values{}
	params.Set("date", date.Format(DateLayout))
	if n > 0 {
		params.Set("n", strconv.Itoa(n))
	}

	var out UpcomingResponse
	if err := c.get(ctx, "/events/upcoming", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.Language != "" {
		params.Set("lang", c.Language)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var env ErrorEnvelope
		if err := json.Unmarshal(body, &env); err != nil || env.Error.Code == "" {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return &apperr.AppError{
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			Details:    env.Error.Details,
			StatusCode: resp.StatusCode,
		}
	}

	env := Envelope[json.RawMessage]{}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return errors.New("API response has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
