package core

import "time"

// Business is one validated row of a directory file.
// Name is never empty; every other field defaults to "".
type Business struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Type     string `json:"type"`
	Activity string `json:"activity"` // may hold several comma-separated tags
	Provider string `json:"provider"` // derived from the origin name, same for the whole batch
}

// RawRow is one parsed data row keyed by canonical field name.
// Columns missing from the header translation table keep their original label.
type RawRow map[string]string

// Canonical field keys produced by the header translation table.
const (
	FieldName     = "name"
	FieldAddress  = "address"
	FieldCity     = "city"
	FieldType     = "type"
	FieldActivity = "activity"
)

// LoadStats describes a single ingestion.
type LoadStats struct {
	Rows     int           `json:"rows"`    // data rows returned by the parser
	Kept     int           `json:"kept"`    // rows that became records
	Dropped  int           `json:"dropped"` // rows discarded for an empty name
	Duration time.Duration `json:"duration"`
}

// FilterOptions holds the choices offered by the filter controls.
// Cities, Types, Activities and Providers are derived from the full record list;
// Regions and Categories are the fixed enumerations in display order.
type FilterOptions struct {
	Cities     []string         `json:"cities"`
	Types      []string         `json:"types"`
	Activities []string         `json:"activities"`
	Providers  []string         `json:"providers"`
	Regions    []Region         `json:"regions"`
	Categories []KosherCategory `json:"categories"`
}
