// Package config provides persistent configuration for the salat CLI.
//
// Configuration is stored as JSON at ~/.config/salat/config.json
// (XDG-compliant) and read through viper, so every key can also be supplied
// as a SALAT_<KEY> environment variable. The merge priority is:
// CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

const (
	configDirName  = "salat"
	configFileName = "config.json"

	// EnvPrefix is prepended to upper-cased keys for environment overrides.
	EnvPrefix = "SALAT"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"place",
	"latitude", "longitude", "elevation",
	"timezone",
	"method", "asr", "high_lat",
	"time_format",
	"prayers",
	"language",
	"hijri_adjust",
	"cache_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	Place       string   `json:"place,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"` // pointer so the equator is distinguishable from "not set"
	Longitude   *float64 `json:"longitude,omitempty"`
	Elevation   float64  `json:"elevation,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	Method      string   `json:"method,omitempty"`
	Asr         string   `json:"asr,omitempty"`      // "standard" or "hanafi"; empty means the method's own
	HighLat     string   `json:"high_lat,omitempty"` // angle, middle, seventh or none
	TimeFormat  string   `json:"time_format,omitempty"`
	Prayers     string   `json:"prayers,omitempty"` // comma-separated list
	Language    string   `json:"language,omitempty"`
	HijriAdjust *int     `json:"hijri_adjust,omitempty"`
	CacheDir    string   `json:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	adjust := 0
	return Config{
		Method:      prayer.DefaultMethodID,
		HighLat:     string(prayer.HighLatAngle),
		TimeFormat:  "24h",
		Language:    string(locale.English),
		HijriAdjust: &adjust,
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk and applies environment overrides.
// If the file does not exist, only the environment is consulted.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path and applies
// SALAT_<KEY> environment overrides on top.
func LoadFrom(path string) (*Config, error) {
	return load(path, true)
}

// ReadFile reads only the file at path, ignoring the environment. Use it when
// the result is going to be saved back, so overrides are not persisted.
func ReadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	if withEnv {
		v.SetEnvPrefix(EnvPrefix)
		for _, key := range ValidKeys {
			if err := v.BindEnv(key); err != nil {
				return nil, fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	for _, key := range ValidKeys {
		if !v.IsSet(key) {
			continue
		}
		if err := cfg.Set(key, v.GetString(key)); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

func parseRange(key, value string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s %q: must be between %g and %g", key, value, lo, hi)
	}
	return v, nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type,
// storing the canonical spelling where one exists.
func (c *Config) Set(key, value string) error {
	switch key {
	case "place":
		p, err := geo.LookupPlace(value)
		if err != nil {
			return fmt.Errorf("invalid place %q: not a known district or division", value)
		}
		c.Place = p.ID
	case "latitude":
		v, err := parseRange(key, value, -90, 90)
		if err != nil {
			return err
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseRange(key, value, -180, 180)
		if err != nil {
			return err
		}
		c.Longitude = &v
	case "elevation":
		v, err := parseRange(key, value, -500, 9000)
		if err != nil {
			return err
		}
		c.Elevation = v
	case "timezone":
		if _, err := geo.ParseZone(value); err != nil {
			return fmt.Errorf("invalid timezone %q: must be an IANA zone such as Asia/Dhaka or an offset in hours", value)
		}
		c.Timezone = strings.TrimSpace(value)
	case "method":
		m, err := prayer.LookupMethod(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be one of %s", value, strings.Join(prayer.MethodIDs(), ", "))
		}
		c.Method = m.ID
	case "asr":
		f, err := prayer.ParseAsr(value)
		if err != nil {
			return fmt.Errorf("invalid asr %q: must be \"standard\" or \"hanafi\"", value)
		}
		c.Asr = f.String()
	case "high_lat":
		r, err := prayer.ParseHighLat(value)
		if err != nil {
			return fmt.Errorf("invalid high_lat %q: must be angle, middle, seventh or none", value)
		}
		c.HighLat = string(r)
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		names, err := prayer.ParseNames(value)
		if err != nil {
			return fmt.Errorf("invalid prayers %q: %w", value, err)
		}
		c.Prayers = strings.Join(names, ",")
	case "language":
		if !locale.Valid(value) {
			return fmt.Errorf("invalid language %q: must be en, bn or ar", value)
		}
		c.Language = value
	case "hijri_adjust":
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid hijri_adjust %q: must be an integer", value)
		}
		if err := (hijri.Converter{Adjust: v}).Validate(); err != nil {
			return fmt.Errorf("invalid hijri_adjust %q: must be between -%d and %d", value, hijri.MaxAdjust, hijri.MaxAdjust)
		}
		c.HijriAdjust = &v
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "place":
		return c.Place, nil
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "elevation":
		if c.Elevation == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Elevation, 'f', -1, 64), nil
	case "timezone":
		return c.Timezone, nil
	case "method":
		return c.Method, nil
	case "asr":
		return c.Asr, nil
	case "high_lat":
		return c.HighLat, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "language":
		return c.Language, nil
	case "hijri_adjust":
		if c.HijriAdjust == nil {
			return "", nil
		}
		return strconv.Itoa(*c.HijriAdjust), nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// HasCoordinates reports whether both latitude and longitude are set.
func (c *Config) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// MethodOrDefault returns the method ID, falling back to the given default.
func (c *Config) MethodOrDefault(def string) string {
	if c.Method != "" {
		return c.Method
	}
	return def
}

// HijriAdjustOrDefault returns the day adjustment, falling back to the given default.
func (c *Config) HijriAdjustOrDefault(def int) int {
	if c.HijriAdjust != nil {
		return *c.HijriAdjust
	}
	return def
}
