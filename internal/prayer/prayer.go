// Package prayer computes daily Islamic prayer times from solar geometry and
// turns them into schedules relative to a moment in time.
package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/apperr"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// AllPrayerNames lists every boundary Times carries, in chronological order.
var AllPrayerNames = []string{
	"Imsak", "Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha",
	"Firstthird", "Midnight", "Lastthird",
}

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":       "F",
	"Sunrise":    "S",
	"Dhuhr":      "D",
	"Asr":        "A",
	"Sunset":     "St",
	"Maghrib":    "M",
	"Isha":       "I",
	"Imsak":      "Im",
	"Midnight":   "Mi",
	"Firstthird": "F3",
	"Lastthird":  "L3",
}

// ParseNames splits a comma-separated list of prayer names and checks each.
func ParseNames(list string) ([]string, error) {
	var names []string
	for _, n := range strings.Split(list, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := ShortNames[n]; !ok {
			return nil, apperr.Invalid("prayers", n, "unknown prayer name")
		}
		names = append(names, n)
	}
	if len(names) == 0 {
		return nil, apperr.Invalid("prayers", list, "must name at least one prayer")
	}
	return names, nil
}

// Schedule places the selected boundaries of t on date's calendar day in loc,
// keeping the order of selected.
func Schedule(t Times, date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	prayers := make([]Prayer, 0, len(selected))
	for _, name := range selected {
		ct, ok := t.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}
		prayers = append(prayers, Prayer{Name: name, Time: ct.On(date, loc)})
	}
	return prayers, nil
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should compute tomorrow's Fajr).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the latest prayer that has already started, or nil
// before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		cur = &prayers[i]
	}
	return cur
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
