package api

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/salat/internal/events"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
	"github.com/smokyabdulrahman/salat/internal/prayer"
)

// DateLayout is the wire format for Gregorian dates.
const DateLayout = "2006-01-02"

// Envelope wraps every successful response.
type Envelope[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries request metadata.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Timings contains all prayer and event times as HH:MM strings.
type Timings struct {
	Imsak      string `json:"Imsak"`
	Fajr       string `json:"Fajr"`
	Sunrise    string `json:"Sunrise"`
	Dhuhr      string `json:"Dhuhr"`
	Asr        string `json:"Asr"`
	Sunset     string `json:"Sunset"`
	Maghrib    string `json:"Maghrib"`
	Isha       string `json:"Isha"`
	Firstthird string `json:"Firstthird"`
	Midnight   string `json:"Midnight"`
	Lastthird  string `json:"Lastthird"`
}

// NewTimings renders calculated times for the wire.
func NewTimings(t prayer.Times) Timings {
	return Timings{
		Imsak:      t.Imsak.String(),
		Fajr:       t.Fajr.String(),
		Sunrise:    t.Sunrise.String(),
		Dhuhr:      t.Dhuhr.String(),
		Asr:        t.Asr.String(),
		Sunset:     t.Sunset.String(),
		Maghrib:    t.Maghrib.String(),
		Isha:       t.Isha.String(),
		Firstthird: t.Firstthird.String(),
		Midnight:   t.Midnight.String(),
		Lastthird:  t.Lastthird.String(),
	}
}

func (tm Timings) ordered() []*string {
	return []*string{
		&tm.Imsak, &tm.Fajr, &tm.Sunrise, &tm.Dhuhr, &tm.Asr, &tm.Sunset,
		&tm.Maghrib, &tm.Isha, &tm.Firstthird, &tm.Midnight, &tm.Lastthird,
	}
}

// dhuhrIndex anchors the unwrap: solar noon is always on the day itself.
const dhuhrIndex = 3

// Times parses the wall-clock strings back into minutes. Boundaries after
// Dhuhr that wrap past midnight move to the next day, and those before it
// that wrap backwards move to the previous day.
func (tm Timings) Times() (prayer.Times, error) {
	raw := tm.ordered()
	vals := make([]prayer.ClockTime, len(raw))
	for i, s := range raw {
		c, err := prayer.ParseClock(*s)
		if err != nil {
			return prayer.Times{}, fmt.Errorf("timing %s: %w", prayer.AllPrayerNames[i], err)
		}
		vals[i] = c
	}
	const day = prayer.ClockTime(24 * 60)
	for i := dhuhrIndex + 1; i < len(vals); i++ {
		for vals[i] < vals[i-1] {
			vals[i] += day
		}
	}
	for i := dhuhrIndex - 1; i >= 0; i-- {
		for vals[i] > vals[i+1] {
			vals[i] -= day
		}
	}
	return prayer.Times{
		Imsak: vals[0], Fajr: vals[1], Sunrise: vals[2], Dhuhr: vals[3],
		Asr: vals[4], Sunset: vals[5], Maghrib: vals[6], Isha: vals[7],
		Firstthird: vals[8], Midnight: vals[9], Lastthird: vals[10],
	}, nil
}

// HijriDate is a tabular Hijri date with its localized rendering.
type HijriDate struct {
	Date      string `json:"date"` // e.g. "1447-08-10"
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	Formatted string `json:"formatted"`
}

// NewHijriDate describes d in lang.
func NewHijriDate(d hijri.Date, lang locale.Lang) HijriDate {
	return HijriDate{
		Date:      d.String(),
		Year:      d.Year,
		Month:     d.Month,
		Day:       d.Day,
		MonthName: locale.HijriMonth(d.Month, lang),
		Formatted: d.Format(lang),
	}
}

// Hijri returns the numeric date.
func (h HijriDate) Hijri() hijri.Date {
	return hijri.Date{Year: h.Year, Month: h.Month, Day: h.Day}
}

// LocationInfo is the point times were calculated for.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"`
	Timezone  string  `json:"timezone"`
	Place     string  `json:"place,omitempty"`
}

// Coordinate returns the point as a geo value.
func (l LocationInfo) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: l.Latitude, Longitude: l.Longitude, Elevation: l.Elevation}
}

// MethodInfo identifies the calculation parameters used.
type MethodInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FajrAngle   float64 `json:"fajr_angle"`
	IshaAngle   float64 `json:"isha_angle,omitempty"`
	IshaMinutes float64 `json:"isha_minutes,omitempty"`
	Asr         string  `json:"asr"`
	HighLat     string  `json:"high_lat"`
}

// NewMethodInfo describes m.
func NewMethodInfo(m prayer.Method) MethodInfo {
	info := MethodInfo{
		ID:        m.ID,
		Name:      m.Name,
		FajrAngle: m.FajrAngle,
		Asr:       m.Asr.String(),
		HighLat:   string(m.HighLat),
	}
	if m.IshaMinutes > 0 {
		info.IshaMinutes = m.IshaMinutes
	} else {
		info.IshaAngle = m.IshaAngle
	}
	return info
}

// TimesResponse is one day of prayer times.
type TimesResponse struct {
	Date     string       `json:"date"`
	Weekday  string       `json:"weekday"`
	Hijri    HijriDate    `json:"hijri"`
	Location LocationInfo `json:"location"`
	Method   MethodInfo   `json:"method"`
	Timings  Timings      `json:"timings"`
	Fallback []string     `json:"fallback,omitempty"`
}

// CalendarResponse pairs a Gregorian date with its Hijri equivalent.
type CalendarResponse struct {
	Gregorian string    `json:"gregorian"`
	Weekday   string    `json:"weekday"`
	Hijri     HijriDate `json:"hijri"`
}

// NewCalendarResponse describes the civil day g and its Hijri date h.
func NewCalendarResponse(g time.Time, h hijri.Date, lang locale.Lang) CalendarResponse {
	return CalendarResponse{
		Gregorian: g.Format(DateLayout),
		Weekday:   g.Weekday().String(),
		Hijri:     NewHijriDate(h, lang),
	}
}

// EventResponse is one upcoming occurrence of an Islamic event.
type EventResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CategoryName string    `json:"category_name"`
	Hijri        HijriDate `json:"hijri"`
	Gregorian    string    `json:"gregorian"`
	DaysUntil    int       `json:"days_until"`
}

// NewEventResponse describes o in lang.
func NewEventResponse(o events.Occurrence, lang locale.Lang) EventResponse {
	return EventResponse{
		ID:           o.Event.ID,
		Name:         o.Event.Name(lang),
		Category:     string(o.Event.Category),
		CategoryName: locale.CategoryName(string(o.Event.Category), lang),
		Hijri:        NewHijriDate(o.Hijri, lang),
		Gregorian:    o.Gregorian.Format(DateLayout),
		DaysUntil:    o.DaysUntil,
	}
}

// UpcomingResponse lists events ranked by proximity to From.
type UpcomingResponse struct {
	From   string          `json:"from"`
	Events []EventResponse `json:"events"`
}

// PlaceResponse is one bundled administrative division.
type PlaceResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Division  string  `json:"division"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// NewPlaceResponse describes p.
func NewPlaceResponse(p geo.Place) PlaceResponse {
	return PlaceResponse{
		ID:        p.ID,
		Name:      p.Name,
		Kind:      string(p.Kind),
		Division:  p.Division,
		Latitude:  p.Coordinate.Latitude,
		Longitude: p.Coordinate.Longitude,
		Timezone:  p.Timezone,
	}
}

// LocateResponse is the IP-derived location of the caller.
type LocateResponse struct {
	geo.Location
	Cached bool `json:"cached"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
	Time   string `json:"time"`
}

// NextResponse is the upcoming prayer relative to the server's clock.
type NextResponse struct {
	Current   string `json:"current,omitempty"`
	Next      string `json:"next"`
	NextName  string `json:"next_name"`
	Time      string `json:"time"` // HH:MM in the location's zone
	At        string `json:"at"`   // RFC 3339
	Remaining string `json:"remaining"`
	Minutes   int    `json:"minutes"`
	Timezone  string `json:"timezone"`
}
