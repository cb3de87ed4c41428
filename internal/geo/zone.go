package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/apperr"
)

// ParseZone accepts an IANA zone name ("Asia/Dhaka", "UTC") or a fixed offset
// in hours ("6", "+5.5", "-3.5"). Offsets must lie in [-12, 14].
func ParseZone(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, apperr.Invalid("timezone", s, "must not be empty")
	}
	if h, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(h) || h < -12 || h > 14 {
			return nil, apperr.Invalid("timezone", s, "offset must be between -12 and 14 hours")
		}
		return FixedZone(h), nil
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, apperr.Invalid("timezone", s, "unknown time zone")
	}
	return loc, nil
}

// FixedZone returns a zone offset by hours from UTC, named like "UTC+05:30".
func FixedZone(hours float64) *time.Location {
	secs := int(math.Round(hours * 3600))
	sign := '+'
	abs := secs
	if secs < 0 {
		sign, abs = '-', -secs
	}
	name := fmt.Sprintf("UTC%c%02d:%02d", sign, abs/3600, abs%3600/60)
	return time.FixedZone(name, secs)
}

// NominalZone is the whole-hour zone centred on lon, used when nothing better
// is known about a coordinate.
func NominalZone(lon float64) *time.Location {
	return FixedZone(math.Round(lon / 15))
}
