// Package hijri converts between Gregorian dates and the tabular Islamic
// civil calendar.
//
// The scheme is arithmetic: a 30-year cycle with 11 leap years, odd months of
// 30 days and even months of 29, with Dhu al-Hijjah gaining a day in leap
// years. Year y is leap when (14 + 11y) mod 30 < 11. Day 1 of Muharram 1 AH is
// Julian Day Number 1948440 (Friday 16 July 622, Julian calendar). Dates are
// an approximation of the observed calendar and can differ from a local
// moon-sighting authority by a day or two.
package hijri

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/locale"
)

const (
	epochJDN = 1948440

	// MinYear and MaxYear bound the supported Hijri range. The lower bound
	// keeps every date inside the Gregorian calendar.
	MinYear = 1000
	MaxYear = 2000

	// MaxAdjust bounds Converter.Adjust in days.
	MaxAdjust = 2
)

var (
	minJDN = jdnOf(MinYear, 1, 1)
	maxJDN = jdnOf(MaxYear, 12, MonthLength(MaxYear, 12))
)

// Date is a day in the tabular Hijri calendar.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Format renders d as "19 Jumada al-Akhirah 1445 AH" in lang.
func (d Date) Format(lang locale.Lang) string {
	return fmt.Sprintf("%s %s %s %s",
		locale.Number(d.Day, lang),
		locale.HijriMonth(d.Month, lang),
		locale.Number(d.Year, lang),
		locale.HijriEra(lang))
}

// Compare returns -1, 0 or +1 ordering d against o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// Validate reports whether d names an existing day in the supported range.
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return apperr.Invalid("year", d.Year, fmt.Sprintf("must be between %d and %d", MinYear, MaxYear))
	}
	if d.Month < 1 || d.Month > 12 {
		return apperr.Invalid("month", d.Month, "must be between 1 and 12")
	}
	if n := MonthLength(d.Year, d.Month); d.Day < 1 || d.Day > n {
		return apperr.Invalid("day", d.Day, fmt.Sprintf("must be between 1 and %d", n))
	}
	return nil
}

// IsLeapYear reports whether Hijri year y has 355 days.
func IsLeapYear(y int) bool {
	return mod(14+11*y, 30) < 11
}

// MonthLength returns 29 or 30.
func MonthLength(y, m int) int {
	if m%2 == 1 || (m == 12 && IsLeapYear(y)) {
		return 30
	}
	return 29
}

// YearLength returns 354 or 355.
func YearLength(y int) int {
	if IsLeapYear(y) {
		return 355
	}
	return 354
}

func daysBeforeYear(y int) int {
	return (y-1)*354 + floorDiv(3+11*y, 30)
}

func daysBeforeMonth(m int) int {
	return 29*(m-1) + m/2
}

func jdnOf(y, m, d int) int {
	return epochJDN - 1 + daysBeforeYear(y) + daysBeforeMonth(m) + d
}

func fromJDN(jdn int) Date {
	idx := jdn - epochJDN
	y := floorDiv(30*idx+10646, 10631)
	for daysBeforeYear(y+1) <= idx {
		y++
	}
	for daysBeforeYear(y) > idx {
		y--
	}
	doy := idx - daysBeforeYear(y)
	m := 1
	for m < 12 && doy >= daysBeforeMonth(m+1) {
		m++
	}
	return Date{Year: y, Month: m, Day: doy - daysBeforeMonth(m) + 1}
}

// JDN returns the Julian Day Number of t's calendar date in t's location.
func JDN(t time.Time) int {
	y, m, d := t.Date()
	return int(math.Floor(julian.CalendarGregorianToJD(y, int(m), float64(d)) + 0.5))
}

// civil returns the Gregorian date of a Julian Day Number at midnight UTC.
func civil(jdn int) time.Time {
	y, m, d := julian.JDToCalendar(float64(jdn))
	return time.Date(y, time.Month(m), int(d), 0, 0, 0, 0, time.UTC)
}

// Converter converts dates with a fixed day adjustment applied on top of the
// tabular scheme, for regions whose sighting runs ahead of or behind it.
type Converter struct {
	Adjust int `json:"adjust"`
}

// Validate checks the adjustment bound.
func (c Converter) Validate() error {
	if c.Adjust < -MaxAdjust || c.Adjust > MaxAdjust {
		return apperr.Invalid("hijri_adjust", c.Adjust, fmt.Sprintf("must be between %d and %d", -MaxAdjust, MaxAdjust))
	}
	return nil
}

// ToHijri converts the calendar date of t (in t's location).
func (c Converter) ToHijri(t time.Time) (Date, error) {
	if err := c.Validate(); err != nil {
		return Date{}, err
	}
	jdn := JDN(t) + c.Adjust
	if jdn < minJDN || jdn > maxJDN {
		return Date{}, apperr.Invalid("date", t.Format(time.DateOnly),
			fmt.Sprintf("must be between %s and %s", civil(minJDN-c.Adjust).Format(time.DateOnly), civil(maxJDN-c.Adjust).Format(time.DateOnly)))
	}
	return fromJDN(jdn), nil
}

// ToGregorian converts d to a Gregorian date at midnight UTC.
func (c Converter) ToGregorian(d Date) (time.Time, error) {
	if err := c.Validate(); err != nil {
		return time.Time{}, err
	}
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}
	return civil(jdnOf(d.Year, d.Month, d.Day) - c.Adjust), nil
}

// Today returns the Hijri date of now's calendar day.
func (c Converter) Today(now time.Time) (Date, error) {
	return c.ToHijri(now)
}

// Month returns the Gregorian dates of every day of Hijri month (y, m).
func (c Converter) Month(y, m int) ([]time.Time, error) {
	first, err := c.ToGregorian(Date{Year: y, Month: m, Day: 1})
	if err != nil {
		return nil, err
	}
	n := MonthLength(y, m)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days, nil
}

var std Converter

// ToHijri converts t with no adjustment.
func ToHijri(t time.Time) (Date, error) { return std.ToHijri(t) }

// ToGregorian converts d with no adjustment.
func ToGregorian(d Date) (time.Time, error) { return std.ToGregorian(d) }

// Today returns the unadjusted Hijri date of now.
func Today(now time.Time) (Date, error) { return std.Today(now) }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
