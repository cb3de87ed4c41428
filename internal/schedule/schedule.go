// Package schedule turns user-facing options (a place or coordinates, a zone,
// a method name) into calculated days. The CLI and the HTTP server both go
// through it so they resolve locations the same way.
package schedule

import (
	"time"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// MaxDays bounds Range.
const MaxDays = 366

// Options are the raw location and calculation choices. Coordinates win over
// Place when both are set. Empty strings select defaults.
type Options struct {
	Place       string
	Latitude    *float64
	Longitude   *float64
	Elevation   float64
	Timezone    string
	Method      string
	Asr         string
	HighLat     string
	HijriAdjust int
}

// Request is a validated Options.
type Request struct {
	Coordinate geo.Coordinate
	Location   *time.Location
	Method     prayer.Method
	Converter  hijri.Converter
	// Place is set when the location came from the bundled table.
	Place *geo.Place
}

// Resolve validates o. The zone is, in order: o.Timezone, the place's zone,
// or the nominal zone of the longitude.
func Resolve(o Options) (*Request, error) {
	id := o.Method
	if id == "" {
		id = prayer.DefaultMethodID
	}
	m, err := prayer.LookupMethod(id)
	if err != nil {
		return nil, err
	}
	if o.Asr != "" {
		f, err := prayer.ParseAsr(o.Asr)
		if err != nil {
			return nil, err
		}
		m = m.WithAsr(f)
	}
	if o.HighLat != "" {
		r, err := prayer.ParseHighLat(o.HighLat)
		if err != nil {
			return nil, err
		}
		m = m.WithHighLat(r)
	}

	req := &Request{Method: m, Converter: hijri.Converter{Adjust: o.HijriAdjust}}
	if err := req.Converter.Validate(); err != nil {
		return nil, err
	}

	switch {
	case o.Latitude != nil || o.Longitude != nil:
		if o.Latitude == nil {
			return nil, apperr.Invalid("latitude", nil, "is required with longitude")
		}
		if o.Longitude == nil {
			return nil, apperr.Invalid("longitude", nil, "is required with latitude")
		}
		req.Coordinate = geo.Coordinate{Latitude: *o.Latitude, Longitude: *o.Longitude, Elevation: o.Elevation}
	case o.Place != "":
		p, err := geo.LookupPlace(o.Place)
		if err != nil {
			return nil, err
		}
		req.Place = &p
		req.Coordinate = p.Coordinate
		if o.Elevation != 0 {
			req.Coordinate.Elevation = o.Elevation
		}
	default:
		return nil, apperr.Invalid("location", "", "a place or latitude and longitude are required")
	}
	if err := req.Coordinate.Validate(); err != nil {
		return nil, err
	}

	switch {
	case o.Timezone != "":
		loc, err := geo.ParseZone(o.Timezone)
		if err != nil {
			return nil, err
		}
		req.Location = loc
	case req.Place != nil:
		loc, err := time.LoadLocation(req.Place.Timezone)
		if err != nil {
			// No tzdata on this machine.
			loc = geo.NominalZone(req.Coordinate.Longitude)
		}
		req.Location = loc
	default:
		req.Location = geo.NominalZone(req.Coordinate.Longitude)
	}
	return req, nil
}

// ZoneName is the IANA name of the zone, or its fixed-offset label.
func (r *Request) ZoneName() string {
	return r.Location.String()
}

// Label describes the location for display: the place name or the
// coordinate.
func (r *Request) Label() string {
	if r.Place != nil {
		return r.Place.Name
	}
	return r.Coordinate.String()
}

// Day is one calculated civil day.
type Day struct {
	Date  time.Time
	Times prayer.Times
	Hijri hijri.Date
}

// Day calculates the calendar day named by date's year, month and day fields.
// The returned Date is midnight of that day in the request's zone.
func (r *Request) Day(date time.Time) (Day, error) {
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, r.Location)

	t, err := prayer.CalculateIn(midnight, r.Coordinate, r.Method, r.Location)
	if err != nil {
		return Day{}, err
	}
	h, err := r.Converter.ToHijri(midnight)
	if err != nil {
		return Day{}, err
	}
	return Day{Date: midnight, Times: t, Hijri: h}, nil
}

// Range calculates days consecutive days starting at from.
func (r *Request) Range(from time.Time, days int) ([]Day, error) {
	if days < 1 || days > MaxDays {
		return nil, apperr.Invalid("days", days, "must be between 1 and 366")
	}
	y, m, d := from.Date()
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		day, err := r.Day(time.Date(y, m, d+i, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

// Moment is the state of the selected prayers at an instant.
type Moment struct {
	Now     time.Time
	Today   Day
	Prayers []prayer.Prayer
	// Current is the latest prayer already started today, or nil before the
	// first one.
	Current *prayer.Prayer
	// Next is the first prayer after Now, taken from tomorrow once today's
	// have all passed.
	Next *prayer.Prayer
}

// At evaluates selected at now, which is moved into the request's zone.
func (r *Request) At(now time.Time, selected []string) (*Moment, error) {
	now = now.In(r.Location)
	today, err := r.Day(now)
	if err != nil {
		return nil, err
	}
	prayers, err := prayer.Schedule(today.Times, today.Date, r.Location, selected)
	if err != nil {
		return nil, err
	}

	mo := &Moment{
		Now:     now,
		Today:   today,
		Prayers: prayers,
		Current: prayer.CurrentPrayer(prayers, now),
		Next:    prayer.NextPrayer(prayers, now),
	}
	if mo.Next != nil {
		return mo, nil
	}

	tomorrow, err := r.Day(today.Date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	tp, err := prayer.Schedule(tomorrow.Times, tomorrow.Date, r.Location, selected)
	if err != nil {
		return nil, err
	}
	for i := range tp {
		if tp[i].Time.After(now) {
			mo.Next = &tp[i]
			break
		}
	}
	return mo, nil
}
