package prayer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/smokyabdulrahman/salat/internal/locale"
)

const minutesPerDay = 24 * 60

// ClockTime is a moment of the calculated day in whole minutes after local
// midnight. Values before 0 or past 1440 belong to the previous or next day,
// which happens at extreme latitudes.
type ClockTime int

// Hour returns the wall-clock hour, 0..23.
func (c ClockTime) Hour() int { return c.wall() / 60 }

// Minute returns the wall-clock minute, 0..59.
func (c ClockTime) Minute() int { return c.wall() % 60 }

// DayOffset is -1, 0 or +1 (or further) when the time falls outside the day.
func (c ClockTime) DayOffset() int {
	d := int(c) / minutesPerDay
	if c < 0 && int(c)%minutesPerDay != 0 {
		d--
	}
	return d
}

func (c ClockTime) wall() int {
	w := int(c) % minutesPerDay
	if w < 0 {
		w += minutesPerDay
	}
	return w
}

// String renders 24-hour "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Format renders c in 24h or 12h style with lang's digits.
func (c ClockTime) Format(twelveHour bool, lang locale.Lang) string {
	return locale.Clock(c.Hour(), c.Minute(), twelveHour, lang)
}

// On places c on date's calendar day in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, int(c), 0, 0, loc)
}

// MarshalText encodes the wall-clock form.
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Times is one day of prayer boundaries. Maghrib always equals Sunset.
type Times struct {
	Imsak      ClockTime `json:"imsak"`
	Fajr       ClockTime `json:"fajr"`
	Sunrise    ClockTime `json:"sunrise"`
	Dhuhr      ClockTime `json:"dhuhr"`
	Asr        ClockTime `json:"asr"`
	Sunset     ClockTime `json:"sunset"`
	Maghrib    ClockTime `json:"maghrib"`
	Isha       ClockTime `json:"isha"`
	Firstthird ClockTime `json:"firstthird"`
	Midnight   ClockTime `json:"midnight"`
	Lastthird  ClockTime `json:"lastthird"`

	// Fallback names the boundaries that were not solved directly and came
	// from the high-latitude rule or a clamped hour angle.
	Fallback []string `json:"fallback,omitempty"`
}

// Get returns the boundary called name.
func (t Times) Get(name string) (ClockTime, bool) {
	switch name {
	case "Imsak":
		return t.Imsak, true
	case "Fajr":
		return t.Fajr, true
	case "Sunrise":
		return t.Sunrise, true
	case "Dhuhr":
		return t.Dhuhr, true
	case "Asr":
		return t.Asr, true
	case "Sunset":
		return t.Sunset, true
	case "Maghrib":
		return t.Maghrib, true
	case "Isha":
		return t.Isha, true
	case "Firstthird":
		return t.Firstthird, true
	case "Midnight":
		return t.Midnight, true
	case "Lastthird":
		return t.Lastthird, true
	}
	return 0, false
}

// UsedFallback reports whether name was approximated.
func (t Times) UsedFallback(name string) bool {
	for _, n := range t.Fallback {
		if n == name {
			return true
		}
	}
	return false
}

// Window is the span during which a prayer may be performed.
type Window struct {
	Name  string    `json:"name"`
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Windows returns the validity span of each of the five prayers.
func (t Times) Windows() []Window {
	return []Window{
		{Name: "Fajr", Start: t.Fajr, End: t.Sunrise},
		{Name: "Dhuhr", Start: t.Dhuhr, End: t.Asr},
		{Name: "Asr", Start: t.Asr, End: t.Maghrib},
		{Name: "Maghrib", Start: t.Maghrib, End: t.Isha},
		{Name: "Isha", Start: t.Isha, End: t.Midnight},
	}
}

// ParseClock reads a 24-hour "HH:MM" value as a time on the day itself.
func ParseClock(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	return ClockTime(h*60 + m), nil
}
