package core

import (
	"log/slog"
	"strings"
)

// BuildRecords turns parsed rows into businesses.
//
// Rows whose trimmed name is empty are dropped silently and counted in
// LoadStats.Dropped. The provider is inferred once from origin and shared by
// every record of the batch. Output order follows input order.
func BuildRecords(rows []RawRow, origin string) ([]Business, LoadStats) {
	stats := LoadStats{Rows: len(rows)}
	provider := inferProvider(origin)

	records := make([]Business, 0, len(rows))
	for _, row := range rows {
		name := field(row, FieldName)
		if name == "" {
			stats.Dropped++
			continue
		}
		records = append(records, Business{
			Name:     name,
			Address:  field(row, FieldAddress),
			City:     field(row, FieldCity),
			Type:     field(row, FieldType),
			Activity: field(row, FieldActivity),
			Provider: provider,
		})
	}

	stats.Kept = len(records)
	return records, stats
}

// field returns the trimmed value for key, or "" when the column is absent.
func field(row RawRow, key string) string {
	return strings.TrimSpace(row[key])
}

// inferProvider wraps ProviderFromOrigin so an unexpected failure degrades to
// NoProvider instead of failing the load.
func inferProvider(origin string) (provider string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("provider inference failed", "origin", origin, "panic", r)
			provider = NoProvider
		}
	}()
	return ProviderFromOrigin(origin)
}
