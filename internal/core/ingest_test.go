package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const landaCSV = "\uFEFFרשימת עסקים כשרים\r\n" +
	"שם עסק,כתובת,עיר,סוג,פעילות עסק\r\n" +
	"מסעדת דוד,רחוב 1,חיפה,מסעדה,מסעדה חלבית\r\n" +
	",ללא שם,עכו,,\r\n" +
	"גריל הצפון,העצמאות 999,עכו,מסעדה,\"מסעדות ומזנונים, בשרי\"\r\n"

func TestIngest(t *testing.T) {
	src := memSource(t, map[string]string{"/data/kosher-list-landa-filtered.csv": landaCSV})

	records, stats, err := Ingest(context.Background(), src, "kosher-list-landa-filtered.csv", 0)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "מסעדת דוד", records[0].Name)
	assert.Equal(t, "מסעדות ומזנונים, בשרי", records[1].Activity)
	for _, r := range records {
		assert.Equal(t, "לנדא", r.Provider)
	}
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.Dropped)
	assert.Positive(t, stats.Duration)
}

func TestIngest_FetchError(t *testing.T) {
	_, _, err := Ingest(context.Background(), memSource(t, nil), "missing.csv", 0)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "LOAD001", MapLoadError(err).Code)
}

func TestIngest_TooLarge(t *testing.T) {
	src := memSource(t, map[string]string{"/data/big.csv": landaCSV})

	_, _, err := Ingest(context.Background(), src, "big.csv", 16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileTooLarge))

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "LOAD002", MapLoadError(err).Code)
}

func TestIngest_ParseError(t *testing.T) {
	src := memSource(t, map[string]string{"/data/bad.csv": "שם עסק,כתובת,עיר\nא,ב,ג\nד,ה\n"})

	records, _, err := Ingest(context.Background(), src, "bad.csv", 0)
	assert.Nil(t, records)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, ParseFailedMessage, MapLoadError(err).Message)
}

func TestIngestReader(t *testing.T) {
	records, stats, err := IngestReader(strings.NewReader(landaCSV), "rubin-upload.csv", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "רובין", records[0].Provider)
	assert.Equal(t, 2, stats.Kept)
}

func TestIngestReader_TooLarge(t *testing.T) {
	_, _, err := IngestReader(strings.NewReader(landaCSV), "upload.csv", 8)
	assert.True(t, errors.Is(err, ErrFileTooLarge))
	assert.Equal(t, "LOAD002", MapError(err).Code)
}
