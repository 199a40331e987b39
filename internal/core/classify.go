package core

// classify.go holds the derived-attribute classifiers. They are pure functions
// of a single record field and their results are never stored on the record.

import (
	"regexp"
	"strings"
)

// KosherCategory is the dietary category derived from a business's activity text.
type KosherCategory string

const (
	CategoryDairy        KosherCategory = "חלבי"
	CategoryMeat         KosherCategory = "בשרי"
	CategoryParve        KosherCategory = "פרווה"
	CategoryParveOrDairy KosherCategory = "פרווה/חלבי"
	CategoryUnknown      KosherCategory = "לא ידוע"
)

// Categories lists the categories offered as quick filters, in display order.
func Categories() []KosherCategory {
	return []KosherCategory{CategoryDairy, CategoryMeat, CategoryParve, CategoryParveOrDairy}
}

var (
	dairyPattern  = regexp.MustCompile(`חלבי|חלבית`)
	meatPattern   = regexp.MustCompile(`בשרי|בשרים`)
	parvePattern  = regexp.MustCompile(`פרווה`)
	bakeryPattern = regexp.MustCompile(`קונדיטור|מאפה|קפה`)
)

// DeriveKosherCategory classifies activity text.
//
// Precedence is fixed: Parve-or-Dairy, then Dairy, then Meat, then Parve.
// Text mentioning both dairy and meat is therefore Dairy.
func DeriveKosherCategory(activity string) KosherCategory {
	text := strings.ToLower(activity)
	hasDairy := dairyPattern.MatchString(text)
	hasMeat := meatPattern.MatchString(text)
	hasParve := parvePattern.MatchString(text)

	switch {
	case (hasParve && hasDairy) || (hasDairy && !hasMeat && bakeryPattern.MatchString(text)):
		return CategoryParveOrDairy
	case hasDairy:
		return CategoryDairy
	case hasMeat:
		return CategoryMeat
	case hasParve:
		return CategoryParve
	default:
		return CategoryUnknown
	}
}

// BadgeColor returns the color token used for the category badge.
func (c KosherCategory) BadgeColor() string {
	switch c {
	case CategoryDairy:
		return "blue-600"
	case CategoryMeat:
		return "red-600"
	case CategoryParve:
		return "emerald-600"
	case CategoryParveOrDairy:
		return "cyan-600"
	default:
		return "gray-500"
	}
}

// Region is a coarse geographic area derived from a city name.
type Region string

const (
	RegionNorth     Region = "צפון"
	RegionCenter    Region = "מרכז"
	RegionJerusalem Region = "ירושלים"
	RegionSouth     Region = "דרום"
	RegionShfela    Region = "שפלה"
	RegionGeneral   Region = "כללי"
)

// Regions lists every region in display order, General last.
func Regions() []Region {
	return []Region{RegionNorth, RegionCenter, RegionJerusalem, RegionSouth, RegionShfela, RegionGeneral}
}

type regionCities struct {
	region Region
	cities map[string]bool
}

func citySet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// regionTable is checked in order; the first set containing the city wins.
var regionTable = []regionCities{
	{RegionNorth, citySet("נהריה", "עכו", "מגדל העמק", "יקנעם", "יוקנעם", "טבריה", "כרמיאל", "חיפה")},
	{RegionCenter, citySet("תל אביב", "פתח תקוה", "רמת גן", "גבעתיים", "בני ברק", "הרצליה", "נתניה")},
	{RegionJerusalem, citySet("ירושלים", "ביתר עילית")},
	{RegionSouth, citySet("אשקלון", "אשדוד", "באר שבע", "ערד")},
	{RegionShfela, citySet("רחובות", "נס ציונה", "ראשון לציון", "לוד", "יבנה", "מודיעין")},
}

// InferRegion maps a city to its region by exact name. Unknown and empty
// cities are General.
func InferRegion(city string) Region {
	if city == "" {
		return RegionGeneral
	}
	for _, rc := range regionTable {
		if rc.cities[city] {
			return rc.region
		}
	}
	return RegionGeneral
}

// DefaultActivityColor is used for activity tags that match no table key.
const DefaultActivityColor = "gray-400"

type activityColor struct {
	key   string
	color string
}

// activityColors is scanned in order; the first key contained in the tag wins.
var activityColors = []activityColor{
	{"קייטרינג בשרי", "red-500"},
	{"קייטרינג חלבי", "blue-500"},
	{"מסעדות ומזנונים", "green-500"},
	{"מסעדה חלבית", "blue-400"},
	{"אולמות", "purple-500"},
	{"ישיבות ומוסדות", "indigo-500"},
	{"מעדניות", "yellow-500"},
	{"בתי מלון", "pink-500"},
	{"בתי אבות", "gray-500"},
	{"עיצובי פירות וקינוחים", "orange-500"},
}

// ActivityColor returns the color token for a single activity tag.
func ActivityColor(tag string) string {
	for _, ac := range activityColors {
		if strings.Contains(tag, ac.key) {
			return ac.color
		}
	}
	return DefaultActivityColor
}

// ActivityTags splits an activity field into its trimmed, non-empty tags.
func ActivityTags(activity string) []string {
	parts := strings.Split(activity, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
