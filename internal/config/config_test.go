package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// clearEnv blanks every SALAT_ override so the host environment cannot leak
// into a test. Empty variables count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range ValidKeys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(key), "")
	}
}

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.Method != "IFB" {
		t.Errorf("Defaults().Method = %q, want IFB", d.Method)
	}
	if d.HighLat != "angle" {
		t.Errorf("Defaults().HighLat = %q, want angle", d.HighLat)
	}
	if d.TimeFormat != "24h" {
		t.Errorf("Defaults().TimeFormat = %q, want %q", d.TimeFormat, "24h")
	}
	if d.Language != "en" {
		t.Errorf("Defaults().Language = %q, want en", d.Language)
	}
	if d.HijriAdjust == nil || *d.HijriAdjust != 0 {
		t.Errorf("Defaults().HijriAdjust = %v, want 0", d.HijriAdjust)
	}
	if d.HasCoordinates() {
		t.Error("Defaults() should not carry coordinates")
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "salat")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "salat")
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	p, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}

	want := filepath.Join("/tmp/xdg-test", "salat", "config.json")
	if p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}
}

// --- LoadFrom ---

func TestLoadFrom_NonExistentFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("/no/such/file.json")
	if err != nil {
		t.Fatalf("LoadFrom non-existent should not error, got: %v", err)
	}
	if cfg.Place != "" || cfg.Method != "" {
		t.Error("LoadFrom non-existent should return empty config")
	}
	if cfg.Latitude != nil {
		t.Error("LoadFrom non-existent should have nil Latitude")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, `{
  "place": "chittagong",
  "method": "mwl",
  "time_format": "12h",
  "hijri_adjust": -1,
  "elevation": 35.5
}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}

	if cfg.Place != "chattogram" {
		t.Errorf("Place = %q, want %q", cfg.Place, "chattogram")
	}
	if cfg.Method != "MWL" {
		t.Errorf("Method = %q, want MWL", cfg.Method)
	}
	if cfg.TimeFormat != "12h" {
		t.Errorf("TimeFormat = %q, want %q", cfg.TimeFormat, "12h")
	}
	if cfg.HijriAdjust == nil || *cfg.HijriAdjust != -1 {
		t.Errorf("HijriAdjust = %v, want -1", cfg.HijriAdjust)
	}
	if cfg.Elevation != 35.5 {
		t.Errorf("Elevation = %v, want 35.5", cfg.Elevation)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, "{bad json")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("LoadFrom with invalid JSON should error")
	}
}

func TestLoadFrom_InvalidValue(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, `{"latitude": 123}`)

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom with out-of-range latitude should error")
	}
}

func TestLoadFrom_EmptyJSON(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, "{}")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Place != "" || cfg.Method != "" {
		t.Error("LoadFrom empty JSON should return empty config")
	}
	if cfg.HijriAdjust != nil {
		t.Error("LoadFrom empty JSON should have nil HijriAdjust")
	}
}

func TestLoadFrom_LatitudeZero(t *testing.T) {
	// The equator is valid and must stay distinguishable from "not set".
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, `{"latitude": 0, "longitude": 0}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Latitude == nil || cfg.Longitude == nil {
		t.Fatal("coordinates should not be nil for 0")
	}
	if *cfg.Latitude != 0 {
		t.Errorf("Latitude = %v, want 0", *cfg.Latitude)
	}
	if !cfg.HasCoordinates() {
		t.Error("HasCoordinates() = false, want true")
	}
}

// --- Environment overrides ---

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, `{"method": "MWL", "language": "en"}`)

	t.Setenv("SALAT_METHOD", "isna")
	t.Setenv("SALAT_HIGH_LAT", "seventh")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Method != "ISNA" {
		t.Errorf("Method = %q, want ISNA from env", cfg.Method)
	}
	if cfg.HighLat != "seventh" {
		t.Errorf("HighLat = %q, want seventh from env", cfg.HighLat)
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q, want en from file", cfg.Language)
	}
}

func TestLoadFrom_EnvWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALAT_LATITUDE", "23.8103")
	t.Setenv("SALAT_LONGITUDE", "90.4125")

	cfg, err := LoadFrom("/no/such/file.json")
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if !cfg.HasCoordinates() {
		t.Fatal("expected coordinates from env")
	}
	if *cfg.Latitude != 23.8103 || *cfg.Longitude != 90.4125 {
		t.Errorf("coordinates = %v,%v", *cfg.Latitude, *cfg.Longitude)
	}
}

func TestLoadFrom_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALAT_TIME_FORMAT", "36h")

	if _, err := LoadFrom("/no/such/file.json"); err == nil {
		t.Fatal("invalid env override should error")
	}
}

func TestReadFile_IgnoresEnv(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)
	writeConfig(t, path, `{"method": "MWL"}`)
	t.Setenv("SALAT_METHOD", "ISNA")

	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if cfg.Method != "MWL" {
		t.Errorf("Method = %q, want MWL", cfg.Method)
	}
}

// --- SaveTo ---

func TestSaveTo_CreatesDirectoryAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := &Config{
		Place:  "sylhet",
		Method: "KARACHI",
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved file has invalid JSON: %v", err)
	}
	if loaded.Place != "sylhet" {
		t.Errorf("loaded Place = %q, want %q", loaded.Place, "sylhet")
	}
	if loaded.Method != "KARACHI" {
		t.Errorf("loaded Method = %q, want KARACHI", loaded.Method)
	}
}

func TestSaveTo_TrailingNewline(t *testing.T) {
	path := tempConfigPath(t)
	cfg := &Config{Place: "dhaka"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("saved file should end with a newline")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)

	lat, lon := 0.0, 90.4125 // zero latitude exercises the pointer round-trip
	adjust := 1
	original := &Config{
		Place:       "dhaka",
		Latitude:    &lat,
		Longitude:   &lon,
		Elevation:   12,
		Timezone:    "UTC",
		Method:      "IFB",
		Asr:         "hanafi",
		HighLat:     "middle",
		TimeFormat:  "12h",
		Prayers:     "Fajr,Dhuhr,Asr,Maghrib,Isha",
		Language:    "bn",
		HijriAdjust: &adjust,
		CacheDir:    "/tmp/cache",
	}

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}

	for _, key := range ValidKeys {
		want, _ := original.Get(key)
		got, err := loaded.Get(key)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", key, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

// --- ResetAt ---

func TestResetAt_DeletesFile(t *testing.T) {
	path := tempConfigPath(t)

	cfg := &Config{Place: "dhaka"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt error: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("ResetAt should have deleted the file")
	}
}

func TestResetAt_NonExistentFile(t *testing.T) {
	err := ResetAt("/no/such/file.json")
	if err != nil {
		t.Errorf("ResetAt on non-existent file should not error, got: %v", err)
	}
}

// --- Set ---

func TestSet_Place(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{"Dhaka", "dhaka", false},
		{"Chittagong", "chattogram", false},
		{"Khulna Division", "khulna-division", false},
		{"Atlantis", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("place", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(place, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Place != tt.want {
				t.Errorf("Place = %q, want %q", cfg.Place, tt.want)
			}
		})
	}
}

func TestSet_Latitude(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{"valid positive", "51.5074", 51.5074, false},
		{"valid negative", "-33.8688", -33.8688, false},
		{"zero", "0", 0, false},
		{"boundary 90", "90", 90, false},
		{"boundary -90", "-90", -90, false},
		{"too high", "91", 0, true},
		{"too low", "-91", 0, true},
		{"not a number", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("latitude", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(latitude, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				if cfg.Latitude != nil {
					t.Error("Latitude should stay nil after a failed Set")
				}
				return
			}
			if cfg.Latitude == nil || *cfg.Latitude != tt.want {
				t.Errorf("Latitude = %v, want %f", cfg.Latitude, tt.want)
			}
		})
	}
}

func TestSet_Longitude(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    float64
		wantErr bool
	}{
		{"valid positive", "46.6753", 46.6753, false},
		{"valid negative", "-73.5674", -73.5674, false},
		{"zero", "0", 0, false},
		{"boundary 180", "180", 180, false},
		{"boundary -180", "-180", -180, false},
		{"too high", "181", 0, true},
		{"too low", "-181", 0, true},
		{"not a number", "xyz", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("longitude", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(longitude, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && (cfg.Longitude == nil || *cfg.Longitude != tt.want) {
				t.Errorf("Longitude = %v, want %f", cfg.Longitude, tt.want)
			}
		})
	}
}

func TestSet_Elevation(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("elevation", "1000"); err != nil {
		t.Fatal(err)
	}
	if cfg.Elevation != 1000 {
		t.Errorf("Elevation = %v, want 1000", cfg.Elevation)
	}
	if err := cfg.Set("elevation", "12000"); err == nil {
		t.Error("Set(elevation, 12000) should error")
	}
}

func TestSet_Timezone(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("timezone", "UTC"); err != nil {
		t.Fatal(err)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if err := cfg.Set("timezone", "+5.5"); err != nil {
		t.Errorf("offset zone: %v", err)
	}
	if err := cfg.Set("timezone", "15"); err == nil {
		t.Error("offset beyond +14 should error")
	}
	if err := cfg.Set("timezone", "Mars/Olympus_Mons"); err == nil {
		t.Error("unknown zone should error")
	}
	if err := cfg.Set("timezone", ""); err == nil {
		t.Error("empty zone should error")
	}
}

func TestSet_Method(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"upper case", "MWL", "MWL", false},
		{"lower case", "karachi", "KARACHI", false},
		{"default", "IFB", "IFB", false},
		{"unknown", "XYZ", "", true},
		{"numeric", "4", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("method", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(method, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Method != tt.want {
				t.Errorf("Method = %q, want %q", cfg.Method, tt.want)
			}
		})
	}
}

func TestSet_Asr(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{"standard", "standard", false},
		{"shafi", "standard", false},
		{"Hanafi", "hanafi", false},
		{"2", "hanafi", false},
		{"maliki", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("asr", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(asr, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Asr != tt.want {
				t.Errorf("Asr = %q, want %q", cfg.Asr, tt.want)
			}
		})
	}
}

func TestSet_HighLat(t *testing.T) {
	for _, v := range []string{"angle", "middle", "seventh", "none"} {
		cfg := &Config{}
		if err := cfg.Set("high_lat", v); err != nil {
			t.Errorf("Set(high_lat, %q) error: %v", v, err)
		}
	}
	cfg := &Config{}
	if err := cfg.Set("high_lat", "twilight"); err == nil {
		t.Error("Set(high_lat, twilight) should error")
	}
}

func TestSet_TimeFormat(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"12h", false},
		{"24h", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("time_format", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(time_format, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.TimeFormat != tt.value {
				t.Errorf("TimeFormat = %q, want %q", cfg.TimeFormat, tt.value)
			}
		})
	}
}

func TestSet_Prayers(t *testing.T) {
	all := "Imsak,Fajr,Sunrise,Dhuhr,Asr,Sunset,Maghrib,Isha,Firstthird,Midnight,Lastthird"
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"single valid", "Fajr", "Fajr", false},
		{"multiple valid", "Fajr,Dhuhr,Asr,Maghrib,Isha", "Fajr,Dhuhr,Asr,Maghrib,Isha", false},
		{"all prayers", all, all, false},
		{"spaces trimmed", "Fajr, Isha", "Fajr,Isha", false},
		{"empty name in list", "Fajr,,Dhuhr", "Fajr,Dhuhr", false},
		{"invalid name", "InvalidPrayer", "", true},
		{"mixed valid/invalid", "Fajr,InvalidPrayer", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("prayers", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(prayers, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Prayers != tt.want {
				t.Errorf("Prayers = %q, want %q", cfg.Prayers, tt.want)
			}
		})
	}
}

func TestSet_Language(t *testing.T) {
	for _, v := range []string{"en", "bn", "ar"} {
		cfg := &Config{}
		if err := cfg.Set("language", v); err != nil {
			t.Errorf("Set(language, %q) error: %v", v, err)
		}
		if cfg.Language != v {
			t.Errorf("Language = %q, want %q", cfg.Language, v)
		}
	}
	cfg := &Config{}
	if err := cfg.Set("language", "fr"); err == nil {
		t.Error("Set(language, fr) should error")
	}
}

func TestSet_HijriAdjust(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"-2", -2, false},
		{"2", 2, false},
		{"3", 0, true},
		{"-3", 0, true},
		{"one", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.Set("hijri_adjust", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Set(hijri_adjust, %q) error = %v, wantErr = %v", tt.value, err, tt.wantErr)
			}
			if !tt.wantErr && (cfg.HijriAdjust == nil || *cfg.HijriAdjust != tt.want) {
				t.Errorf("HijriAdjust = %v, want %d", cfg.HijriAdjust, tt.want)
			}
		})
	}
}

func TestSet_CacheDir(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Set("cache_dir", "/tmp/my-cache"); err != nil {
		t.Fatal(err)
	}
	if cfg.CacheDir != "/tmp/my-cache" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, "/tmp/my-cache")
	}
}

func TestSet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	err := cfg.Set("unknown_key", "value")
	if err == nil {
		t.Fatal("Set with unknown key should error")
	}
}

// --- Get ---

func TestGet_EmptyConfig(t *testing.T) {
	cfg := &Config{}

	for _, key := range ValidKeys {
		got, err := cfg.Get(key)
		if err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
		if got != "" {
			t.Errorf("Get(%q) = %q, want empty for empty config", key, got)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Get("unknown_key")
	if err == nil {
		t.Fatal("Get with unknown key should error")
	}
}

func TestGet_AdjustZero(t *testing.T) {
	adjust := 0
	cfg := &Config{HijriAdjust: &adjust}

	got, err := cfg.Get("hijri_adjust")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0" {
		t.Errorf("Get(hijri_adjust) = %q, want %q", got, "0")
	}
}

// --- OrDefault helpers ---

func TestMethodOrDefault(t *testing.T) {
	if got := (&Config{Method: "MWL"}).MethodOrDefault("IFB"); got != "MWL" {
		t.Errorf("MethodOrDefault = %q, want MWL", got)
	}
	if got := (&Config{}).MethodOrDefault("IFB"); got != "IFB" {
		t.Errorf("MethodOrDefault = %q, want IFB (default)", got)
	}
}

func TestHijriAdjustOrDefault(t *testing.T) {
	zero := 0
	if got := (&Config{HijriAdjust: &zero}).HijriAdjustOrDefault(1); got != 0 {
		t.Errorf("HijriAdjustOrDefault = %d, want 0", got)
	}
	if got := (&Config{}).HijriAdjustOrDefault(1); got != 1 {
		t.Errorf("HijriAdjustOrDefault = %d, want 1 (default)", got)
	}
}

// --- ValidKeys ---

func TestValidKeys_ContainsExpected(t *testing.T) {
	expected := []string{
		"place", "latitude", "longitude", "elevation", "timezone",
		"method", "asr", "high_lat", "time_format", "prayers",
		"language", "hijri_adjust", "cache_dir",
	}

	if len(ValidKeys) != len(expected) {
		t.Errorf("ValidKeys has %d entries, want %d", len(ValidKeys), len(expected))
	}

	keySet := make(map[string]bool)
	for _, k := range ValidKeys {
		keySet[k] = true
	}
	for _, k := range expected {
		if !keySet[k] {
			t.Errorf("ValidKeys missing %q", k)
		}
	}
}

// --- OmitEmpty JSON behavior ---

func TestConfig_OmitEmpty_JSON(t *testing.T) {
	cfg := &Config{}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(data); got != "{}" {
		t.Errorf("empty config JSON = %s, want {}", got)
	}
}

func TestConfig_OmitEmpty_LatitudeZero(t *testing.T) {
	lat := 0.0
	cfg := &Config{Latitude: &lat}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}

	if _, ok := m["latitude"]; !ok {
		t.Error("latitude=0 should be present in JSON, but was omitted")
	}
}

// --- Set then Get round-trip ---

func TestSetThenGet_RoundTrip(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"place", "rajshahi"},
		{"latitude", "24.7136"},
		{"longitude", "46.6753"},
		{"elevation", "15"},
		{"timezone", "UTC"},
		{"method", "MAKKAH"},
		{"asr", "hanafi"},
		{"high_lat", "seventh"},
		{"time_format", "12h"},
		{"prayers", "Fajr,Dhuhr,Asr,Maghrib,Isha"},
		{"language", "ar"},
		{"hijri_adjust", "-1"},
		{"cache_dir", "/tmp/cache"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := &Config{}
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.value {
				t.Errorf("Set/Get round-trip: got %q, want %q", got, tt.value)
			}
		})
	}
}

// --- Full integration: Set -> SaveTo -> ReadFile -> Get ---

func TestSetSaveLoadGet_Integration(t *testing.T) {
	clearEnv(t)
	path := tempConfigPath(t)

	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("place", "Barisal"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("language", "bn"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := loaded.Get("place"); got != "barishal" {
		t.Errorf("place = %q, want barishal", got)
	}
	if got, _ := loaded.Get("language"); got != "bn" {
		t.Errorf("language = %q, want bn", got)
	}
}
