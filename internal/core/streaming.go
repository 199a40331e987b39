package core

// streaming.go prepares raw source bytes for parsing.
//
// Directory files come from Windows spreadsheets as often as from scripts, so
// the reader chain handles the usual artifacts:
//
//   - UTF-8 BOM (0xEF 0xBB 0xBF) is dropped
//   - invalid UTF-8 sequences become U+FFFD
//   - the total byte count is capped so a runaway response cannot exhaust memory
//
// Use ReadText to apply all of them and get the decoded text.

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxFileSize is the cap applied when the caller passes a non-positive limit (20MB).
const DefaultMaxFileSize int64 = 20 * 1024 * 1024

// ErrFileTooLarge is returned when the content exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

// CountingReader wraps an io.Reader, tracks bytes read and fails once more
// than Limit bytes have been consumed.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
	Limit     int64
}

// NewCountingReader creates a counting reader. A non-positive limit uses DefaultMaxFileSize.
func NewCountingReader(r io.Reader, limit int64) *CountingReader {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	return &CountingReader{reader: r, Limit: limit}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	if r.BytesRead > r.Limit {
		return n, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, r.Limit)
	}
	return n, err
}

// NewTextReader wraps r with BOM removal and UTF-8 sanitization.
//
// The order matters: the size cap sees raw bytes, then the decoder strips the
// BOM and replaces invalid sequences.
func NewTextReader(r io.Reader, limit int64) io.Reader {
	counted := NewCountingReader(r, limit)
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return transform.NewReader(counted, decoder)
}

// ReadText reads the whole source through NewTextReader and returns the text.
func ReadText(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(NewTextReader(r, limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
