package core

import (
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateHeader(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"שם עסק", FieldName},
		{" כתובת ", FieldAddress},
		{"עיר", FieldCity},
		{"סוג", FieldType},
		{"פעילות עסק", FieldActivity},
		{"טלפון", "טלפון"},
		{"name", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateHeader(tt.label))
		})
	}
}

func TestParseRows(t *testing.T) {
	text := "שם עסק,כתובת,עיר,סוג,פעילות עסק,טלפון\n" +
		"  מסעדת דוד , רחוב 1 ,חיפה,מסעדה,\"מסעדה חלבית, קייטרינג חלבי\",04-1234567\n" +
		"\n" +
		"מאפיית כהן,הרצל 5,ירושלים,מאפייה,מאפה פרווה,\n"

	rows, err := ParseRows(text)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, RawRow{
		FieldName:     "מסעדת דוד",
		FieldAddress:  "רחוב 1",
		FieldCity:     "חיפה",
		FieldType:     "מסעדה",
		FieldActivity: "מסעדה חלבית, קייטרינג חלבי",
		"טלפון":       "04-1234567",
	}, rows[0])
	assert.Equal(t, "מאפיית כהן", rows[1][FieldName])
	assert.Equal(t, "", rows[1]["טלפון"])
}

func TestParseRows_SkipsBlankLines(t *testing.T) {
	rows, err := ParseRows("\nשם עסק,כתובת,עיר\n   \nא,ב,ג\n\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "א", rows[0][FieldName])
}

func TestParseRows_Empty(t *testing.T) {
	rows, err := ParseRows("")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = ParseRows("שם עסק,כתובת,עיר\n")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseRows_ColumnCountMismatch(t *testing.T) {
	_, err := ParseRows("שם עסק,כתובת,עיר\nא,ב,ג\nד,ה\n")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
	assert.Equal(t, 3, parseErr.Line)
	assert.True(t, errors.Is(err, csv.ErrFieldCount))
	assert.Contains(t, err.Error(), "invalid csv")
}

func TestParseRows_MalformedQuotes(t *testing.T) {
	_, err := ParseRows("שם עסק,כתובת,עיר\nמסעדת \"דוד,רחוב,עיר\n")

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "want *ParseError, got %T", err)
	assert.True(t, errors.Is(err, csv.ErrBareQuote))
}

func TestParseRows_BlanksAroundQuotedFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want RawRow
	}{
		{
			name: "space before opening quote",
			line: "מסעדת דוד, \"רחוב 1, דירה 2\",חיפה",
			want: RawRow{FieldName: "מסעדת דוד", FieldAddress: "רחוב 1, דירה 2", FieldCity: "חיפה"},
		},
		{
			name: "space after closing quote",
			line: "\"מסעדת דוד\" ,רחוב 1,חיפה",
			want: RawRow{FieldName: "מסעדת דוד", FieldAddress: "רחוב 1", FieldCity: "חיפה"},
		},
		{
			name: "padding on both sides before line end",
			line: "א,ב, \t\"חיפה\"  ",
			want: RawRow{FieldName: "א", FieldAddress: "ב", FieldCity: "חיפה"},
		},
		{
			name: "escaped quote inside quoted field",
			line: "\"בית \"\"הדר\"\"\" ,ב,ג",
			want: RawRow{FieldName: "בית \"הדר\"", FieldAddress: "ב", FieldCity: "ג"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ParseRows("שם עסק,כתובת,עיר\n" + tt.line + "\n")
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0])
		})
	}
}

func TestTrimQuotedPadding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a,b,c", "a,b,c"},
		{"\"a\" ,b", "\"a\",b"},
		{"\"a\"\t\r\nb", "\"a\"\r\nb"},
		{"\"a, \" ,b", "\"a, \",b"},
		{"\"a\" x,b", "\"a\" x,b"},
		{"ab\" ,c", "ab\" ,c"},
		{"\"line\none\" ,x", "\"line\none\",x"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, trimQuotedPadding(tt.in), "input %q", tt.in)
	}
}
