// Package events holds the annual Islamic observances and projects them onto
// the Gregorian calendar relative to a reference day.
package events

import (
	"sort"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/apperr"
	"github.com/smokyabdulrahman/salat/internal/hijri"
	"github.com/smokyabdulrahman/salat/internal/locale"
)

// Category groups observances.
type Category string

const (
	CategoryEid        Category = "eid"
	CategoryFasting    Category = "fasting"
	CategoryNight      Category = "night"
	CategorySacred     Category = "sacred"
	CategoryHistorical Category = "historical"
	CategorySunnah     Category = "sunnah"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryEid, CategoryFasting, CategoryNight,
	CategorySacred, CategoryHistorical, CategorySunnah,
}

// Event is an observance on a fixed Hijri month and day.
type Event struct {
	ID       string                 `json:"id"`
	Month    int                    `json:"hijri_month"`
	Day      int                    `json:"hijri_day"`
	Category Category               `json:"category"`
	Names    map[locale.Lang]string `json:"names"`
}

// Name returns the event name in lang, falling back to English.
func (e Event) Name(lang locale.Lang) string {
	if n, ok := e.Names[lang]; ok {
		return n
	}
	return e.Names[locale.English]
}

// Every day is at most 29 so each observance exists in every Hijri year.
var table = []Event{
	{"islamic-new-year", 1, 1, CategoryHistorical, names("Islamic New Year", "হিজরি নববর্ষ", "رأس السنة الهجرية")},
	{"ashura", 1, 10, CategoryFasting, names("Day of Ashura", "আশুরা", "يوم عاشوراء")},
	{"mawlid", 3, 12, CategoryHistorical, names("Mawlid an-Nabi", "ঈদে মিলাদুন্নবী", "المولد النبوي")},
	{"rajab-begins", 7, 1, CategorySacred, names("Rajab begins", "রজব মাসের শুরু", "بداية رجب")},
	{"isra-miraj", 7, 27, CategoryNight, names("Isra and Mi'raj", "শবে মেরাজ", "الإسراء والمعراج")},
	{"shab-e-barat", 8, 15, CategoryNight, names("Shab-e-Barat", "শবে বরাত", "ليلة النصف من شعبان")},
	{"ramadan-begins", 9, 1, CategoryFasting, names("Ramadan begins", "রমজান শুরু", "بداية رمضان")},
	{"laylat-al-qadr", 9, 27, CategoryNight, names("Laylat al-Qadr", "শবে কদর", "ليلة القدر")},
	{"eid-al-fitr", 10, 1, CategoryEid, names("Eid al-Fitr", "ঈদুল ফিতর", "عيد الفطر")},
	{"shawwal-fasts", 10, 2, CategorySunnah, names("Six days of Shawwal", "শাওয়ালের ছয় রোজা", "ست من شوال")},
	{"dhul-hijjah-begins", 12, 1, CategorySacred, names("Dhul Hijjah begins", "জিলহজ মাসের শুরু", "بداية ذي الحجة")},
	{"day-of-arafah", 12, 9, CategoryFasting, names("Day of Arafah", "আরাফার দিন", "يوم عرفة")},
	{"eid-al-adha", 12, 10, CategoryEid, names("Eid al-Adha", "ঈদুল আজহা", "عيد الأضحى")},
	{"ayyam-at-tashriq", 12, 11, CategorySacred, names("Days of Tashriq", "আইয়ামে তাশরিক", "أيام التشريق")},
}

func names(en, bn, ar string) map[locale.Lang]string {
	return map[locale.Lang]string{locale.English: en, locale.Bengali: bn, locale.Arabic: ar}
}

// All returns a copy of the event table in table order.
func All() []Event {
	out := make([]Event, len(table))
	copy(out, table)
	return out
}

// ByCategory returns the events of category c in table order.
func ByCategory(c Category) []Event {
	var out []Event
	for _, e := range table {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// ParseCategory matches s against Categories, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", apperr.Invalid("category", s, "unknown event category")
}

// Lookup finds an event by ID, ignoring case.
func Lookup(id string) (Event, error) {
	for _, e := range table {
		if strings.EqualFold(e.ID, strings.TrimSpace(id)) {
			return e, nil
		}
	}
	return Event{}, apperr.ErrNotFound.WithDetails(map[string]any{"event": id})
}

// Occurrence is an event projected onto a concrete day.
type Occurrence struct {
	Event     Event      `json:"event"`
	Hijri     hijri.Date `json:"hijri"`
	Gregorian time.Time  `json:"gregorian"`
	DaysUntil int        `json:"days_until"`
}

// Upcoming projects every event onto the current Hijri year of now, or the
// next one when it has already passed, and returns the first n sorted by days
// remaining. Ties keep table order. n <= 0 returns them all. An event falling
// on now's own day has DaysUntil 0.
func Upcoming(conv hijri.Converter, now time.Time, n int) ([]Occurrence, error) {
	today, err := conv.ToHijri(now)
	if err != nil {
		return nil, err
	}
	todayJDN := hijri.JDN(now)

	out := make([]Occurrence, 0, len(table))
	for _, e := range table {
		h := hijri.Date{Year: today.Year, Month: e.Month, Day: e.Day}
		if h.Compare(today) < 0 {
			h.Year++
		}
		g, err := conv.ToGregorian(h)
		if err != nil {
			return nil, err
		}
		days := hijri.JDN(g) - todayJDN
		if days < 0 {
			continue
		}
		out = append(out, Occurrence{Event: e, Hijri: h, Gregorian: g, DaysUntil: days})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntil < out[j].DaysUntil
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// OfCategory keeps the occurrences of category c, preserving order.
func OfCategory(occ []Occurrence, c Category) []Occurrence {
	out := make([]Occurrence, 0, len(occ))
	for _, o := range occ {
		if o.Event.Category == c {
			out = append(out, o)
		}
	}
	return out
}
