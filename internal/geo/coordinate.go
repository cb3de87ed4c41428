package geo

import (
	"fmt"
	"math"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/validate"
)

// Coordinate is a point on the Earth's surface. Elevation is in metres above
// sea level and only affects sunrise and sunset.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Elevation float64 `json:"elevation,omitempty" validate:"gte=-500,lte=9000"`
}

// Validate rejects out-of-range or NaN components.
func (c Coordinate) Validate() error {
	switch {
	case math.IsNaN(c.Latitude):
		return apperr.Invalid("latitude", c.Latitude, "must be a number")
	case math.IsNaN(c.Longitude):
		return apperr.Invalid("longitude", c.Longitude, "must be a number")
	case math.IsNaN(c.Elevation):
		return apperr.Invalid("elevation", c.Elevation, "must be a number")
	}
	return validate.Struct(c)
}

func (c Coordinate) String() string {
	ns, ew := "N", "E"
	lat, lon := c.Latitude, c.Longitude
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", lat, ns, lon, ew)
}
