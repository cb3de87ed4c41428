package locale

var prayerNames = map[Lang]map[string]string{
	Bengali: {
		"Fajr":       "ফজর",
		"Sunrise":    "সূর্যোদয়",
		"Dhuhr":      "যোহর",
		"Asr":        "আসর",
		"Sunset":     "সূর্যাস্ত",
		"Maghrib":    "মাগরিব",
		"Isha":       "এশা",
		"Imsak":      "সাহরির শেষ",
		"Midnight":   "মধ্যরাত",
		"Firstthird": "রাতের প্রথম তৃতীয়াংশ",
		"Lastthird":  "রাতের শেষ তৃতীয়াংশ",
	},
	Arabic: {
		"Fajr":       "الفجر",
		"Sunrise":    "الشروق",
		"Dhuhr":      "الظهر",
		"Asr":        "العصر",
		"Sunset":     "الغروب",
		"Maghrib":    "المغرب",
		"Isha":       "العشاء",
		"Imsak":      "الإمساك",
		"Midnight":   "منتصف الليل",
		"Firstthird": "الثلث الأول",
		"Lastthird":  "الثلث الأخير",
	},
}

// PrayerName returns the display name of a prayer boundary. English names are
// the identifiers themselves.
func PrayerName(name string, lang Lang) string {
	if m, ok := prayerNames[lang]; ok {
		if n, ok := m[name]; ok {
			return n
		}
	}
	return name
}

var hijriMonths = map[Lang][12]string{
	English: {
		"Muharram", "Safar", "Rabi al-Awwal", "Rabi al-Thani",
		"Jumada al-Ula", "Jumada al-Akhirah", "Rajab", "Sha'ban",
		"Ramadan", "Shawwal", "Dhu al-Qadah", "Dhu al-Hijjah",
	},
	Bengali: {
		"মুহাররম", "সফর", "রবিউল আউয়াল", "রবিউস সানি",
		"জমাদিউল আউয়াল", "জমাদিউস সানি", "রজব", "শাবান",
		"রমজান", "শাওয়াল", "জিলকদ", "জিলহজ",
	},
	Arabic: {
		"محرم", "صفر", "ربيع الأول", "ربيع الآخر",
		"جمادى الأولى", "جمادى الآخرة", "رجب", "شعبان",
		"رمضان", "شوال", "ذو القعدة", "ذو الحجة",
	},
}

// HijriMonth returns the name of Hijri month m (1..12), or "" when m is out of
// range.
func HijriMonth(m int, lang Lang) string {
	if m < 1 || m > 12 {
		return ""
	}
	names, ok := hijriMonths[lang]
	if !ok {
		names = hijriMonths[English]
	}
	return names[m-1]
}

var hijriEra = map[Lang]string{
	English: "AH",
	Bengali: "হিজরি",
	Arabic:  "هـ",
}

// HijriEra returns the era suffix used after a Hijri year.
func HijriEra(lang Lang) string {
	if e, ok := hijriEra[lang]; ok {
		return e
	}
	return hijriEra[English]
}

var categoryNames = map[Lang]map[string]string{
	English: {
		"eid":        "Eid",
		"fasting":    "Fasting",
		"night":      "Blessed night",
		"sacred":     "Sacred month",
		"historical": "Historical",
		"sunnah":     "Sunnah",
	},
	Bengali: {
		"eid":        "ঈদ",
		"fasting":    "রোজা",
		"night":      "বরকতময় রাত",
		"sacred":     "পবিত্র মাস",
		"historical": "ঐতিহাসিক",
		"sunnah":     "সুন্নাহ",
	},
	Arabic: {
		"eid":        "عيد",
		"fasting":    "صيام",
		"night":      "ليلة مباركة",
		"sacred":     "شهر حرام",
		"historical": "تاريخي",
		"sunnah":     "سنة",
	},
}

// CategoryName returns the display name of an event category.
func CategoryName(category string, lang Lang) string {
	if m, ok := categoryNames[lang]; ok {
		if n, ok := m[category]; ok {
			return n
		}
	}
	if n, ok := categoryNames[English][category]; ok {
		return n
	}
	return category
}
