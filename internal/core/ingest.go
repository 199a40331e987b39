package core

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Ingest reads origin through src and returns its records.
//
// Errors are *FetchError when the origin cannot be read and *ParseError when
// the text is malformed. Rows without a name are not errors; they show up in
// LoadStats.Dropped.
func Ingest(ctx context.Context, src Source, origin string, maxSize int64) ([]Business, LoadStats, error) {
	start := time.Now()

	rc, err := src.Open(ctx, origin)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer rc.Close()

	text, err := ReadText(rc, maxSize)
	if err != nil {
		return nil, LoadStats{}, &FetchError{Origin: origin, Err: err}
	}

	records, stats, err := IngestText(text, origin)
	stats.Duration = time.Since(start)
	return records, stats, err
}

// IngestReader ingests a caller-provided blob such as an uploaded file.
// name plays the role of the origin for provider inference.
func IngestReader(r io.Reader, name string, maxSize int64) ([]Business, LoadStats, error) {
	start := time.Now()

	text, err := ReadText(r, maxSize)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read %s: %w", name, err)
	}

	records, stats, err := IngestText(text, name)
	stats.Duration = time.Since(start)
	return records, stats, err
}

// IngestText runs the normalize, parse and build steps on decoded text.
func IngestText(text, origin string) ([]Business, LoadStats, error) {
	rows, err := ParseRows(SanitizeText(text))
	if err != nil {
		return nil, LoadStats{}, err
	}
	records, stats := BuildRecords(rows, origin)
	return records, stats, nil
}
