package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func withGeoAPI(t *testing.T, h http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	orig := geoAPIBase
	geoAPIBase = server.URL + "/"
	t.Cleanup(func() { geoAPIBase = orig })
}

func TestDetectLocation_Success(t *testing.T) {
	var gotPath, gotFields string
	withGeoAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ipAPIResponse{
			Status:   "success",
			Lat:      23.8103,
			Lon:      90.4125,
			City:     "Dhaka",
			Country:  "Bangladesh",
			Timezone: "Asia/Dhaka",
		})
	})

	loc, err := DetectLocation(context.Background(), "103.4.145.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/103.4.145.2" {
		t.Errorf("path = %q, want %q", gotPath, "/103.4.145.2")
	}
	if gotFields != geoAPIFields {
		t.Errorf("fields = %q, want %q", gotFields, geoAPIFields)
	}
	if loc.Latitude != 23.8103 || loc.Longitude != 90.4125 {
		t.Errorf("coords = %v,%v", loc.Latitude, loc.Longitude)
	}
	if loc.City != "Dhaka" {
		t.Errorf("City = %q, want %q", loc.City, "Dhaka")
	}
	if loc.Timezone != "Asia/Dhaka" {
		t.Errorf("Timezone = %q, want %q", loc.Timezone, "Asia/Dhaka")
	}
	if c := loc.Coordinate(); c.Latitude != 23.8103 || c.Elevation != 0 {
		t.Errorf("Coordinate() = %+v", c)
	}
}

func TestDetectLocation_OwnAddress(t *testing.T) {
	var gotPath string
	withGeoAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(ipAPIResponse{Status: "success", City: "London"})
	})

	if _, err := DetectLocation(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/" {
		t.Errorf("path = %q, want /", gotPath)
	}
}

func TestDetectLocation_APIFailureStatus(t *testing.T) {
	withGeoAPI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ipAPIResponse{Status: "fail", Message: "reserved range"})
	})

	_, err := DetectLocation(context.Background(), "10.0.0.1")
	if err == nil {
		t.Fatal("expected error for failed status, got nil")
	}
	if !strings.Contains(err.Error(), "reserved range") {
		t.Errorf("error should contain message, got: %v", err)
	}
}

func TestDetectLocation_HTTPError(t *testing.T) {
	withGeoAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := DetectLocation(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention 500, got: %v", err)
	}
}

func TestDetectLocation_InvalidJSON(t *testing.T) {
	withGeoAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := DetectLocation(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestDetectLocation_Cancelled(t *testing.T) {
	withGeoAPI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ipAPIResponse{Status: "success"})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DetectLocation(ctx, ""); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestDetectLocation_ConnectionRefused(t *testing.T) {
	orig := geoAPIBase
	geoAPIBase = "http://127.0.0.1:1/"
	defer func() { geoAPIBase = orig }()

	if _, err := DetectLocation(context.Background(), ""); err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
}
