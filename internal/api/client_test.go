package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/hijri"
)

// sampleTimesResponse returns a valid times payload for testing.
func sampleTimesResponse() TimesResponse {
	return TimesResponse{
		Date:    "2024-03-11",
		Weekday: "Monday",
		Hijri:   HijriDate{Date: "1445-08-30", Year: 1445, Month: 8, Day: 30},
		Location: LocationInfo{
			Latitude:  23.8103,
			Longitude: 90.4125,
			Timezone:  "Asia/Dhaka",
			Place:     "dhaka",
		},
		Method: MethodInfo{ID: "IFB", Name: "Islamic Foundation Bangladesh", FajrAngle: 18.5, IshaAngle: 17.5, Asr: "hanafi", HighLat: "angle"},
		Timings: Timings{
			Imsak:      "04:38",
			Fajr:       "04:48",
			Sunrise:    "06:03",
			Dhuhr:      "12:06",
			Asr:        "16:23",
			Sunset:     "18:09",
			Maghrib:    "18:09",
			Isha:       "19:21",
			Firstthird: "21:42",
			Midnight:   "23:28",
			Lastthird:  "01:16",
		},
	}
}

func writeData(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Envelope[any]{Data: data, Meta: &Meta{RequestID: "req-1"}}); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c := NewClient()
	c.BaseURL = server.URL
	return c
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, defaultBaseURL)
	}
	if c.httpClient.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", c.httpClient.Timeout)
	}
}

// ---------------------------------------------------------------------------
// FetchTimes
// ---------------------------------------------------------------------------

func TestFetchTimes_Coordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/times" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("date") != "2024-03-11" {
			t.Errorf("date = %q, want 2024-03-11", q.Get("date"))
		}
		if q.Get("lat") != "23.8103" || q.Get("lon") != "90.4125" {
			t.Errorf("lat/lon = %q/%q", q.Get("lat"), q.Get("lon"))
		}
		if q.Get("method") != "IFB" {
			t.Errorf("method = %q, want IFB", q.Get("method"))
		}
		if q.Has("place") || q.Has("asr") || q.Has("elevation") {
			t.Errorf("unset params should be omitted: %s", r.URL.RawQuery)
		}
		writeData(t, w, sampleTimesResponse())
	})

	lat, lon := 23.8103, 90.4125
	got, err := c.FetchTimes(context.Background(), TimesQuery{
		Date:      time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		Latitude:  &lat,
		Longitude: &lon,
		Method:    "IFB",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Timings.Fajr != "04:48" {
		t.Errorf("Fajr = %q, want %q", got.Timings.Fajr, "04:48")
	}
	if got.Location.Timezone != "Asia/Dhaka" {
		t.Errorf("Timezone = %q, want %q", got.Location.Timezone, "Asia/Dhaka")
	}
}

func TestFetchTimes_PlaceAndLanguage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("place") != "sylhet" {
			t.Errorf("place = %q, want sylhet", q.Get("place"))
		}
		if q.Get("lang") != "bn" {
			t.Errorf("lang = %q, want bn", q.Get("lang"))
		}
		if q.Get("high_lat") != "seventh" || q.Get("asr") != "standard" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeData(t, w, sampleTimesResponse())
	})
	c.Language = "bn"

	_, err := c.FetchTimes(context.Background(), TimesQuery{Place: "sylhet", Asr: "standard", HighLat: "seventh"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchTimes_ValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorEnvelope{Error: ErrorBody{
			Code:    apperr.CodeValidation,
			Message: "invalid latitude 95: must be <= 90",
			Details: map[string]any{"field": "latitude"},
		}})
	})

	_, err := c.FetchTimes(context.Background(), TimesQuery{Place: "x"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var appErr *apperr.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error should be *apperr.AppError, got %T", err)
	}
	if appErr.Code != apperr.CodeValidation || appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("appErr = %+v", appErr)
	}
	if appErr.Details["field"] != "latitude" {
		t.Errorf("details = %v", appErr.Details)
	}
}

func TestFetchTimes_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := c.FetchTimes(context.Background(), TimesQuery{Place: "dhaka"})
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention 503, got: %v", err)
	}
}

func TestFetchTimes_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	})

	_, err := c.FetchTimes(context.Background(), TimesQuery{Place: "dhaka"})
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestFetchTimes_MissingData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta":{}}`))
	})

	if _, err := c.FetchTimes(context.Background(), TimesQuery{Place: "dhaka"}); err == nil {
		t.Fatal("expected error for missing data, got nil")
	}
}

func TestFetchTimes_ConnectionRefused(t *testing.T) {
	c := NewClient()
	c.BaseURL = "http://127.0.0.1:1" // nothing listening

	_, err := c.FetchTimes(context.Background(), TimesQuery{Place: "dhaka"})
	if err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}

func TestFetchTimes_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, sampleTimesResponse())
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.FetchTimes(ctx, TimesQuery{Place: "dhaka"}); err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
}

// ---------------------------------------------------------------------------
// Calendar and events
// ---------------------------------------------------------------------------

func TestFetchHijri(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/hijri" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2024-03-11" {
			t.Errorf("date = %q", got)
		}
		writeData(t, w, CalendarResponse{
			Gregorian: "2024-03-11",
			Weekday:   "Monday",
			Hijri:     HijriDate{Date: "1445-08-30", Year: 1445, Month: 8, Day: 30},
		})
	})

	got, err := c.FetchHijri(context.Background(), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hijri.Hijri() != (hijri.Date{Year: 1445, Month: 8, Day: 30}) {
		t.Errorf("Hijri = %+v", got.Hijri)
	}
}

func TestFetchGregorian(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar/gregorian" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("year") != "1445" || q.Get("month") != "9" || q.Get("day") != "1" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeData(t, w, CalendarResponse{Gregorian: "2024-03-11"})
	})

	got, err := c.FetchGregorian(context.Background(), hijri.Date{Year: 1445, Month: 9, Day: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Gregorian != "2024-03-11" {
		t.Errorf("Gregorian = %q", got.Gregorian)
	}
}

func TestFetchUpcoming(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/upcoming" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("n"); got != "2" {
			t.Errorf("n = %q, want 2", got)
		}
		writeData(t, w, UpcomingResponse{
			From: "2024-03-11",
			Events: []EventResponse{
				{ID: "ramadan-start", DaysUntil: 0},
				{ID: "laylat-al-qadr", DaysUntil: 26},
			},
		})
	})

	got, err := c.FetchUpcoming(context.Background(), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Events) != 2 || got.Events[1].DaysUntil != 26 {
		t.Errorf("Events = %+v", got.Events)
	}
}

func TestFetchUpcoming_AllOmitsN(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("n") {
			t.Errorf("n should be omitted for all events: %s", r.URL.RawQuery)
		}
		writeData(t, w, UpcomingResponse{From: "2024-03-11"})
	})

	if _, err := c.FetchUpcoming(context.Background(), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// FetchNext
// ---------------------------------------------------------------------------

func TestFetchNext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/next" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Has("date") {
			t.Errorf("date should not be sent: %s", r.URL.RawQuery)
		}
		if q.Get("prayers") != "Fajr,Isha" {
			t.Errorf("prayers = %q", q.Get("prayers"))
		}
		writeData(t, w, NextResponse{Next: "Isha", NextName: "Isha", Time: "19:23", Remaining: "1h 5m", Minutes: 65})
	})

	got, err := c.FetchNext(context.Background(), TimesQuery{Place: "dhaka", Date: time.Now()}, []string{"Fajr", "Isha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Next != "Isha" || got.Minutes != 65 {
		t.Errorf("got %+v", got)
	}
}

func TestFetchRange(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/times/range" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("days") != "2" {
			t.Errorf("days = %q, want 2", q.Get("days"))
		}
		if q.Get("place") != "dhaka" {
			t.Errorf("place = %q, want dhaka", q.Get("place"))
		}
		second := sampleTimesResponse()
		second.Date = "2024-03-12"
		writeData(t, w, []TimesResponse{sampleTimesResponse(), second})
	})

	got, err := c.FetchRange(context.Background(), TimesQuery{Place: "dhaka"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d days, want 2", len(got))
	}
	if got[1].Date != "2024-03-12" {
		t.Errorf("second date = %q, want 2024-03-12", got[1].Date)
	}
}
