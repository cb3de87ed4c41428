package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/smokyabdulrahman/salat/internal/locale"
)

// Format constants for display modes.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// Formats lists the named display modes.
var Formats = []string{
	FormatTimeRemaining, FormatNextPrayerTime, FormatNameAndTime,
	FormatNameAndRemaining, FormatShortNameAndTime, FormatShortNameAndRemain,
	FormatFull,
}

// Style controls how clock times and names are rendered.
type Style struct {
	TwelveHour bool
	Lang       locale.Lang
}

// ParseTimeFormat maps "12h" or "24h" onto a Style.
func ParseTimeFormat(s string, lang locale.Lang) (Style, error) {
	switch s {
	case "", "24h":
		return Style{Lang: lang}, nil
	case "12h":
		return Style{TwelveHour: true, Lang: lang}, nil
	}
	return Style{}, fmt.Errorf("invalid time format %q: must be \"12h\" or \"24h\"", s)
}

// Time renders the wall-clock part of t.
func (s Style) Time(t time.Time) string {
	return locale.Clock(t.Hour(), t.Minute(), s.TwelveHour, s.Lang)
}

// Name renders a prayer name.
func (s Style) Name(name string) string {
	return locale.PrayerName(name, s.Lang)
}

// Remaining renders a duration with the style's digits.
func (s Style) Remaining(d time.Duration) string {
	return locale.Digits(FormatRemaining(d), s.Lang)
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // Prayer name in the chosen language, e.g. "Asr"
	ShortName string // Abbreviated name, e.g. "A"
	Time      string // Formatted prayer time, e.g. "15:02" or "3:02 PM"
	Remaining string // Time remaining, e.g. "2h 15m"
	Hours     int    // Whole hours remaining
	Minutes   int    // Remaining minutes after hours
}

// FormatOutput formats a prayer for display according to the chosen format mode.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes
//
// Example: "{{.Name}} in {{.Remaining}}" -> "Asr in 2h 15m"
func FormatOutput(p Prayer, now time.Time, mode string, style Style) string {
	d := TimeRemaining(p, now)
	remaining := style.Remaining(d)
	timeStr := style.Time(p.Time)
	name := style.Name(p.Name)
	short := ShortNames[p.Name]

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      name,
			ShortName: short,
			Time:      timeStr,
			Remaining: remaining,
			Hours:     int(d.Hours()),
			Minutes:   int(d.Minutes()) % 60,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", name, timeStr)
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
