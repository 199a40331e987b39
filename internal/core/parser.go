package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// headerMap translates the Hebrew header labels to canonical field keys.
// Labels not listed here pass through unchanged and are ignored later.
var headerMap = map[string]string{
	"שם עסק":     FieldName,
	"כתובת":      FieldAddress,
	"עיר":        FieldCity,
	"סוג":        FieldType,
	"פעילות עסק": FieldActivity,
}

// ParseError reports malformed tabular text: bad quoting or a row whose
// column count differs from the header. It is recoverable; the caller keeps
// running with an empty list.
type ParseError struct {
	Line int   // 1-based line in the normalized text, 0 if unknown
	Err  error // underlying csv error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid csv: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TranslateHeader maps a raw header label to its canonical key. Runs of
// whitespace inside the label collapse to one space before lookup.
func TranslateHeader(label string) string {
	label = strings.Join(strings.Fields(norm.NFC.String(label)), " ")
	if key, ok := headerMap[label]; ok {
		return key
	}
	return label
}

// ParseRows parses normalized text into rows keyed by canonical field name.
//
// The first non-empty line is the header. Empty lines, and blank lines too
// short for the header, are skipped. Every field is trimmed, and blanks
// around a quoted field are allowed. Empty input yields no rows and no error.
func ParseRows(text string) ([]RawRow, error) {
	r := csv.NewReader(strings.NewReader(trimQuotedPadding(text)))
	r.FieldsPerRecord = 0 // the header fixes the column count
	r.TrimLeadingSpace = true

	var header []string
	var rows []RawRow

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) && isEmptyRow(record) {
				continue
			}
			return nil, newParseError(err)
		}

		if header == nil {
			if isEmptyRow(record) {
				// whitespace-only first line: let the next line fix the width
				r.FieldsPerRecord = 0
				continue
			}
			header = make([]string, len(record))
			for i, label := range record {
				header[i] = TranslateHeader(label)
			}
			continue
		}

		row := make(RawRow, len(header))
		for i, key := range header {
			row[key] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// trimQuotedPadding drops spaces and tabs between a closing quote and the
// next delimiter or line end, which encoding/csv rejects. Line breaks are
// kept so error line numbers still match the input.
func trimQuotedPadding(text string) string {
	if !strings.Contains(text, `"`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	inQuote, fieldStart := false, true

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inQuote:
			b.WriteByte(c)
			if c != '"' {
				continue
			}
			if i+1 < len(text) && text[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			inQuote = false
			j := i + 1
			for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
				j++
			}
			if j == len(text) || text[j] == ',' || text[j] == '\n' || text[j] == '\r' {
				i = j - 1
			}
		case c == '"' && fieldStart:
			inQuote = true
			fieldStart = false
			b.WriteByte(c)
		case c == ',' || c == '\n':
			fieldStart = true
			b.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\r':
			b.WriteByte(c)
		default:
			fieldStart = false
			b.WriteByte(c)
		}
	}
	return b.String()
}

func newParseError(err error) *ParseError {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
