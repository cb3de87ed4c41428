package prayer

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/geo"
)

const (
	iFajr = iota
	iSunrise
	iDhuhr
	iAsr
	iSunset
	iIsha
	nSolar
)

// Starting guesses, in hours of local mean time, for the first pass.
var initialGuess = [nSolar]float64{5, 6, 12, 13, 18, 18}

const imsakMinutes = 10

// Calculate computes the prayer times of date's calendar day at coord. The
// offset is the zone's UTC offset in hours on that day. Inputs are validated
// before anything is computed; the calculation itself cannot fail.
func Calculate(date time.Time, coord geo.Coordinate, m Method, tzOffset float64) (Times, error) {
	if err := coord.Validate(); err != nil {
		return Times{}, err
	}
	if math.IsNaN(tzOffset) || tzOffset < -12 || tzOffset > 14 {
		return Times{}, apperr.Invalid("timezone_offset", tzOffset, "must be between -12 and 14 hours")
	}
	if err := m.Validate(); err != nil {
		return Times{}, err
	}

	y, mo, d := date.Date()
	c := calculator{
		jdate:  julian.CalendarGregorianToJD(y, int(mo), float64(d)) - coord.Longitude/(15*24),
		lat:    coord.Latitude,
		lon:    coord.Longitude,
		elev:   coord.Elevation,
		method: m,
	}
	return c.times(tzOffset), nil
}

// CalculateIn is Calculate with the offset taken from loc at noon on date, so
// daylight saving is honoured.
func CalculateIn(date time.Time, coord geo.Coordinate, m Method, loc *time.Location) (Times, error) {
	if loc == nil {
		loc = time.UTC
	}
	y, mo, d := date.Date()
	_, off := time.Date(y, mo, d, 12, 0, 0, 0, loc).Zone()
	return Calculate(date, coord, m, float64(off)/3600)
}

type calculator struct {
	jdate  float64
	lat    float64
	lon    float64
	elev   float64
	method Method
}

func (c *calculator) sun(t float64) sunPosition {
	return sunAt(c.jdate + t/24)
}

func (c *calculator) noon(t float64) float64 {
	return 12 - c.sun(t).equation
}

// at returns the local mean time at which the sun reaches altitude, before
// noon when morning is set.
func (c *calculator) at(altitude, t float64, morning bool) (float64, bool) {
	h := solveHourAngle(altitude, c.lat, c.sun(t).declination)
	noon := c.noon(t)
	if morning {
		return noon - h.deg/15, h.solvable
	}
	return noon + h.deg/15, h.solvable
}

func (c *calculator) riseSetAltitude() float64 {
	return -(0.833 + 0.0347*math.Sqrt(math.Max(c.elev, 0)))
}

func (c *calculator) pass(guess [nSolar]float64) (out [nSolar]float64, ok [nSolar]bool) {
	out[iFajr], ok[iFajr] = c.at(-c.method.FajrAngle, guess[iFajr], true)
	out[iSunrise], ok[iSunrise] = c.at(c.riseSetAltitude(), guess[iSunrise], true)
	out[iDhuhr], ok[iDhuhr] = c.noon(guess[iDhuhr]), true

	asrAlt := asrAltitude(c.method.Asr, c.lat, c.sun(guess[iAsr]).declination)
	out[iAsr], ok[iAsr] = c.at(asrAlt, guess[iAsr], false)

	out[iSunset], ok[iSunset] = c.at(c.riseSetAltitude(), guess[iSunset], false)
	if c.method.IshaMinutes > 0 {
		out[iIsha], ok[iIsha] = out[iSunset], true
	} else {
		out[iIsha], ok[iIsha] = c.at(-c.method.IshaAngle, guess[iIsha], false)
	}
	return out, ok
}

func (c *calculator) times(tzOffset float64) Times {
	guess := initialGuess
	var solved [nSolar]bool
	for i := 0; i < 2; i++ {
		out, ok := c.pass(guess)
		for k := range out {
			// Unsolved twilight keeps its previous guess; rise, set and Asr
			// carry their clamped value forward.
			if ok[k] || (k != iFajr && k != iIsha) {
				guess[k] = out[k]
			}
		}
		solved = ok
	}

	var h [nSolar]float64
	shift := tzOffset - c.lon/15
	for k := range guess {
		h[k] = guess[k] + shift
	}

	var fallback []string
	for _, k := range []struct {
		idx  int
		name string
	}{{iSunrise, "Sunrise"}, {iAsr, "Asr"}, {iSunset, "Sunset"}} {
		if !solved[k.idx] {
			fallback = append(fallback, k.name)
		}
	}

	if c.method.IshaMinutes > 0 {
		h[iIsha] = h[iSunset] + c.method.IshaMinutes/60
	}

	night := math.Min(24, math.Max(0, 24-(h[iSunset]-h[iSunrise])))

	if p := c.portion(c.method.FajrAngle, night); c.adjust(solved[iFajr], h[iSunrise]-h[iFajr], p) {
		h[iFajr] = h[iSunrise] - p
		fallback = append(fallback, "Fajr")
	}
	if c.method.IshaMinutes == 0 {
		if p := c.portion(c.method.IshaAngle, night); c.adjust(solved[iIsha], h[iIsha]-h[iSunset], p) {
			h[iIsha] = h[iSunset] + p
			fallback = append(fallback, "Isha")
		}
	}

	// Thirds run from sunset to the next dawn.
	dark := h[iFajr] + 24 - h[iSunset]

	return Times{
		Imsak:      clockTime(h[iFajr]) - imsakMinutes,
		Fajr:       clockTime(h[iFajr]),
		Sunrise:    clockTime(h[iSunrise]),
		Dhuhr:      clockTime(h[iDhuhr]),
		Asr:        clockTime(h[iAsr]),
		Sunset:     clockTime(h[iSunset]),
		Maghrib:    clockTime(h[iSunset]),
		Isha:       clockTime(h[iIsha]),
		Firstthird: clockTime(h[iSunset] + dark/3),
		Midnight:   clockTime(h[iSunset] + night/2),
		Lastthird:  clockTime(h[iSunset] + 2*dark/3),
		Fallback:   fallback,
	}
}

// portion is the longest twilight the high-latitude rule allows, in hours.
func (c *calculator) portion(angle, night float64) float64 {
	switch c.method.HighLat {
	case HighLatMiddle:
		return night / 2
	case HighLatSeventh:
		return night / 7
	default:
		return angle / 60 * night
	}
}

func (c *calculator) adjust(solved bool, twilight, portion float64) bool {
	if !solved {
		return true
	}
	if c.method.HighLat == HighLatNone {
		return false
	}
	return math.IsNaN(twilight) || twilight > portion
}

func clockTime(hours float64) ClockTime {
	return ClockTime(math.Round(hours * 60))
}
