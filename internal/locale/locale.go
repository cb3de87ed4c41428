// Package locale formats numbers, clock times and fixed names for the
// supported display languages. Digit transliteration is a pure lookup applied
// rune by rune to an already formatted ASCII string.
package locale

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported display language.
type Lang string

const (
	English Lang = "en"
	Bengali Lang = "bn"
	Arabic  Lang = "ar"
)

// Supported lists the display languages in matcher order. The first entry is
// the fallback.
var Supported = []Lang{English, Bengali, Arabic}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Bengali,
	language.Arabic,
})

// Parse resolves a language tag or an Accept-Language header value to the
// closest supported Lang. Anything unrecognised resolves to English.
func Parse(s string) Lang {
	s = strings.TrimSpace(s)
	if s == "" {
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(Supported) {
		return English
	}
	return Supported[idx]
}

// Valid reports whether s names a supported language exactly.
func Valid(s string) bool {
	for _, l := range Supported {
		if string(l) == s {
			return true
		}
	}
	return false
}

var zeroDigit = map[Lang]rune{
	Bengali: '০',
	Arabic:  '٠',
}

// Digits replaces the ASCII digits in s with the digit glyphs of lang.
func Digits(s string, lang Lang) string {
	zero, ok := zeroDigit[lang]
	if !ok {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(zero + (r - '0'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Number formats n in lang's digits.
func Number(n int, lang Lang) string {
	return Digits(strconv.Itoa(n), lang)
}

var meridiem = map[Lang][2]string{
	English: {"AM", "PM"},
	Bengali: {"পূর্বাহ্ণ", "অপরাহ্ণ"},
	Arabic:  {"ص", "م"},
}

// Clock formats a wall-clock time. The 24h form is "15:04", the 12h form is
// "3:04 PM" with a localized marker.
func Clock(hour, minute int, twelveHour bool, lang Lang) string {
	if !twelveHour {
		return Digits(fmt.Sprintf("%02d:%02d", hour, minute), lang)
	}
	marks, ok := meridiem[lang]
	if !ok {
		marks = meridiem[English]
	}
	mark := marks[0]
	if hour >= 12 {
		mark = marks[1]
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return Digits(fmt.Sprintf("%d:%02d", h, minute), lang) + " " + mark
}
