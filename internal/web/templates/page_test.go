package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/KosherDir/internal/core"
)

func render(t *testing.T, v core.View) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(v).Render(context.Background(), &buf))
	return buf.String()
}

func loadedView() core.View {
	records := []core.Business{
		{Name: "מסעדת דוד", Address: "רחוב 1", City: "חיפה", Type: "מסעדה", Activity: "מסעדה חלבית, קייטרינג חלבי", Provider: "לנדא"},
		{Name: "גריל <הצפון>", Address: "העצמאות 999", City: "עכו", Type: "מסעדה", Activity: "קייטרינג בשרי", Provider: "לנדא"},
	}
	return core.View{
		Origin:   "landa.csv",
		Records:  records,
		Filtered: records,
		Options:  core.Options(records),
		LoadedAt: time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestPage_Loaded(t *testing.T) {
	out := render(t, loadedView())

	assert.Contains(t, out, `dir="rtl"`)
	assert.Contains(t, out, "נמצאו <b>2</b> עסקים")
	assert.NotContains(t, out, "מתוך")
	assert.Contains(t, out, "מסעדת דוד")
	assert.Contains(t, out, `class="badge bg-blue-600"`)
	assert.Contains(t, out, `class="tag bg-blue-400"`)
	assert.Contains(t, out, `class="tag bg-red-500"`)
	assert.Contains(t, out, "כשרות: לנדא")
	assert.Contains(t, out, `<option value="חיפה">חיפה</option>`)
	assert.Contains(t, out, "/api/export?format=xlsx")
	assert.NotContains(t, out, `http-equiv="refresh"`)
}

func TestPage_EscapesRecordText(t *testing.T) {
	out := render(t, loadedView())
	assert.NotContains(t, out, "<הצפון>")
	assert.Contains(t, out, "&lt;הצפון&gt;")
}

func TestPage_FilteredCount(t *testing.T) {
	v := loadedView()
	v.Filters = core.Filters{City: "עכו", Category: string(core.CategoryMeat)}
	v.Filtered = core.Evaluate(v.Records, v.Filters)

	out := render(t, v)
	assert.Contains(t, out, `נמצאו <b>1</b> עסקים<span class="muted"> מתוך 2 סה"כ</span>`)
	assert.Contains(t, out, `<option value="עכו" selected>`)
	assert.Contains(t, out, `<button type="submit" class="tab active">בשרי</button>`)
	assert.Contains(t, out, `<button type="submit" class="tab">הכל</button>`)
}

func TestPage_NoResults(t *testing.T) {
	v := loadedView()
	v.Filters = core.Filters{Search: "xyz"}
	v.Filtered = core.Evaluate(v.Records, v.Filters)

	out := render(t, v)
	assert.Contains(t, out, "לא נמצאו תוצאות")
	assert.Contains(t, out, "נסה לשנות את קריטריוני החיפוש")
	assert.NotContains(t, out, `class="card"`)
}

func TestPage_Empty(t *testing.T) {
	out := render(t, core.View{Options: core.Options(nil)})
	assert.Contains(t, out, "אין נתונים להצגה")
	assert.NotContains(t, out, "סינון תוצאות")
}

func TestPage_Loading(t *testing.T) {
	out := render(t, core.View{Loading: true, Options: core.Options(nil)})
	assert.Contains(t, out, "טוען נתונים...")
	assert.Contains(t, out, `http-equiv="refresh"`)
	assert.NotContains(t, out, "אין נתונים להצגה")
}

func TestPage_Error(t *testing.T) {
	out := render(t, core.View{
		Origin:    "bad.csv",
		Error:     core.ParseFailedMessage,
		ErrorCode: "PARSE001",
		Options:   core.Options(nil),
	})
	assert.Contains(t, out, core.ParseFailedMessage)
	assert.Contains(t, out, "PARSE001")
	assert.NotContains(t, out, "אין נתונים להצגה")
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ErrorPage("לא נבחר קובץ", "בחר קובץ CSV להעלאה", "REQ003").Render(context.Background(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "לא נבחר קובץ")
	assert.Contains(t, out, "קוד שגיאה: REQ003")
	assert.Contains(t, out, `href="/"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestPage_PropagatesWriteError(t *testing.T) {
	err := Page(loadedView()).Render(context.Background(), failingWriter{})
	assert.ErrorIs(t, err, assert.AnError)
}
