package core

// filter.go implements the filter engine.
//
// Filter state is a plain value: With and ClearFilters return new values and
// Evaluate and Options are pure functions of their inputs. Callers own the
// current Filters value and recompute results whenever it or the record list
// changes.

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownFilterField is returned when a filter update names no known field.
var ErrUnknownFilterField = errors.New("unknown filter field")

// FilterField names one field of Filters.
type FilterField string

const (
	FilterCity     FilterField = "city"
	FilterType     FilterField = "type"
	FilterActivity FilterField = "activity"
	FilterSearch   FilterField = "search"
	FilterProvider FilterField = "provider"
	FilterRegion   FilterField = "region"
	FilterCategory FilterField = "category"
)

// FilterFields lists every filter field.
func FilterFields() []FilterField {
	return []FilterField{
		FilterCity, FilterType, FilterActivity, FilterSearch,
		FilterProvider, FilterRegion, FilterCategory,
	}
}

// Filters is the active filter state. An empty field means no constraint;
// the zero value matches every record.
type Filters struct {
	City     string `json:"city"`
	Type     string `json:"type"`
	Activity string `json:"activity"`
	Search   string `json:"search"`
	Provider string `json:"provider"`
	Region   string `json:"region"`
	Category string `json:"category"`
}

// ClearFilters returns the empty filter state.
func ClearFilters() Filters {
	return Filters{}
}

// With returns a copy of f with one field replaced. Any string is accepted.
func (f Filters) With(field FilterField, value string) (Filters, error) {
	switch field {
	case FilterCity:
		f.City = value
	case FilterType:
		f.Type = value
	case FilterActivity:
		f.Activity = value
	case FilterSearch:
		f.Search = value
	case FilterProvider:
		f.Provider = value
	case FilterRegion:
		f.Region = value
	case FilterCategory:
		f.Category = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
	}
	return f, nil
}

// Get returns the value of one field, or "" for unknown fields.
func (f Filters) Get(field FilterField) string {
	switch field {
	case FilterCity:
		return f.City
	case FilterType:
		return f.Type
	case FilterActivity:
		return f.Activity
	case FilterSearch:
		return f.Search
	case FilterProvider:
		return f.Provider
	case FilterRegion:
		return f.Region
	case FilterCategory:
		return f.Category
	}
	return ""
}

// Active returns the number of fields that constrain the result.
func (f Filters) Active() int {
	n := 0
	for _, field := range FilterFields() {
		if f.Get(field) != "" {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no field is set.
func (f Filters) IsEmpty() bool {
	return f == Filters{}
}

// Evaluate returns the records satisfying every non-empty criterion, in input order.
//
// City, type and provider compare exactly. Activity and category are substring
// matches on the activity text; category deliberately does not use
// DeriveKosherCategory, so quick-filter labels match the raw text. Region
// compares against InferRegion of the city. Search matches name or address
// case-insensitively.
func Evaluate(records []Business, f Filters) []Business {
	if f.IsEmpty() {
		out := make([]Business, len(records))
		copy(out, records)
		return out
	}

	fold := cases.Fold()
	search := fold.String(f.Search)

	out := make([]Business, 0, len(records))
	for _, b := range records {
		if f.City != "" && b.City != f.City {
			continue
		}
		if f.Type != "" && b.Type != f.Type {
			continue
		}
		if f.Activity != "" && !strings.Contains(b.Activity, f.Activity) {
			continue
		}
		if f.Provider != "" && b.Provider != f.Provider {
			continue
		}
		if f.Region != "" && string(InferRegion(b.City)) != f.Region {
			continue
		}
		if f.Category != "" && !strings.Contains(b.Activity, f.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(fold.String(b.Name), search) &&
			!strings.Contains(fold.String(b.Address), search) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Options derives the filter choices from the full record list. It must be
// given the unfiltered list so the choices do not shrink as filters narrow.
func Options(records []Business) FilterOptions {
	return FilterOptions{
		Cities:     distinct(records, func(b Business) string { return b.City }),
		Types:      distinct(records, func(b Business) string { return b.Type }),
		Activities: distinct(records, func(b Business) string { return b.Activity }),
		Providers:  distinct(records, func(b Business) string { return b.Provider }),
		Regions:    Regions(),
		Categories: Categories(),
	}
}

// distinct returns the sorted set of non-empty values selected by get.
func distinct(records []Business, get func(Business) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for _, b := range records {
		v := get(b)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
