package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/KosherDir/internal/core"
)

// allCategories is the label of the quick tab that clears the category filter.
const allCategories = "הכל"

// Page renders the full directory page for a snapshot.
func Page(v core.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}

		h.raw(`<!DOCTYPE html><html lang="he" dir="rtl"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if v.Loading {
			h.raw(`<meta http-equiv="refresh" content="2">`)
		}
		h.raw(`<title>עסקים כשרים</title><style>`)
		h.raw(stylesheet())
		h.raw(`</style></head><body><div class="container">`)

		header(h, v)
		sourceControls(h, v)

		if v.Total() > 0 {
			filterPanel(h, v)
			resultCount(h, len(v.Filtered), v.Total())
			if len(v.Filtered) > 0 {
				h.raw(`<div class="cards">`)
				for _, b := range v.Filtered {
					card(h, b)
				}
				h.raw(`</div>`)
			} else {
				noResults(h)
			}
		} else if !v.Loading && v.Error == "" {
			h.raw(`<div class="panel empty"><h3>אין נתונים להצגה</h3><p class="muted">הקובץ לא נטען או ריק</p></div>`)
		}

		h.raw(`</div></body></html>`)
		return h.err
	})
}

func header(h *html, v core.View) {
	h.raw(`<div class="panel header"><h1>🍽️ עסקים כשרים</h1><p class="muted">מדריך עסקים כשרים</p>`)
	if v.Origin != "" && v.Error == "" {
		h.raw(`<p class="small">`)
		h.text(v.Origin)
		if !v.LoadedAt.IsZero() {
			h.text(" · " + v.LoadedAt.Format("02/01/2006 15:04"))
		}
		h.raw(`</p>`)
	}
	if v.Loading {
		h.raw(`<div class="banner-loading">טוען נתונים...</div>`)
	}
	if v.Error != "" {
		h.raw(`<div class="banner-error" role="alert">`)
		h.text(v.Error)
		if v.ErrorCode != "" {
			h.raw(` <span class="small">(`)
			h.text(v.ErrorCode)
			h.raw(`)</span>`)
		}
		h.raw(`</div>`)
	}
	h.raw(`</div>`)
}

// sourceControls renders the load-by-origin form, the upload form and the
// export links.
func sourceControls(h *html, v core.View) {
	h.raw(`<div class="panel"><div class="grid">`)

	h.raw(`<form method="post" action="/api/load"><label for="origin">טעינת קובץ</label><div class="row">`)
	h.raw(`<input type="text" id="origin" name="origin" placeholder="kosher-list-landa-filtered.csv"`)
	h.attr("value", v.Origin)
	h.raw(`><button type="submit" class="primary">טען</button></div></form>`)

	h.raw(`<form method="post" action="/api/upload" enctype="multipart/form-data"><label for="file">העלאת קובץ</label><div class="row">`)
	h.raw(`<input type="file" id="file" name="file" accept=".csv,text/csv"><button type="submit" class="primary">העלה</button></div></form>`)

	if v.Total() > 0 {
		h.raw(`<div><label>ייצוא</label><div class="row">`)
		h.raw(`<a class="button" href="/api/export?format=csv">CSV</a>`)
		h.raw(`<a class="button" href="/api/export?format=xlsx">Excel</a>`)
		h.raw(`</div></div>`)
	}

	h.raw(`</div></div>`)
}

func filterPanel(h *html, v core.View) {
	f := v.Filters

	h.raw(`<div class="panel"><div class="row between"><h2>סינון תוצאות</h2>`)
	clearButton(h, "")
	h.raw(`</div>`)

	h.raw(`<div class="row">`)
	tabs := append([]string{allCategories}, categoryLabels(v.Options.Categories)...)
	for _, label := range tabs {
		value := label
		if label == allCategories {
			value = ""
		}
		h.raw(`<form method="post" action="/api/filters" class="inline">`)
		h.hidden("field", string(core.FilterCategory))
		h.hidden("value", value)
		if f.Category == value {
			h.raw(`<button type="submit" class="tab active">`)
		} else {
			h.raw(`<button type="submit" class="tab">`)
		}
		h.text(label)
		h.raw(`</button></form>`)
	}
	h.raw(`</div>`)

	h.raw(`<form method="post" action="/api/filters"><div class="grid">`)
	h.hidden("category", f.Category)
	h.hidden("activity", f.Activity)
	selectField(h, "city", "סינון לפי עיר", "כל הערים", v.Options.Cities, f.City)
	selectField(h, "provider", "סינון לפי ספק כשרות", "כל הספקים", v.Options.Providers, f.Provider)
	selectField(h, "region", "סינון לפי אזור", "כל האזורים", regionLabels(v.Options.Regions), f.Region)
	selectField(h, "type", "סינון לפי סוג עסק", "כל הסוגים", v.Options.Types, f.Type)

	h.raw(`<div><label for="search">חיפוש חופשי</label><input type="text" id="search" name="search" placeholder="חיפוש בשם העסק או כתובת..."`)
	h.attr("value", f.Search)
	h.raw(`></div>`)

	h.raw(`</div><div class="row" style="margin-top:1rem"><button type="submit" class="primary">סנן</button></div></form></div>`)
}

func selectField(h *html, name, label, anyLabel string, options []string, selected string) {
	h.raw(`<div><label`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(label)
	h.raw(`</label><select`)
	h.attr("id", name)
	h.attr("name", name)
	h.raw(`><option value="">`)
	h.text(anyLabel)
	h.raw(`</option>`)
	for _, opt := range options {
		h.raw(`<option`)
		h.attr("value", opt)
		if opt == selected {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(opt)
		h.raw(`</option>`)
	}
	h.raw(`</select></div>`)
}

func clearButton(h *html, class string) {
	h.raw(`<form method="post" action="/api/filters/clear" class="inline"><button type="submit"`)
	if class != "" {
		h.attr("class", class)
	}
	h.raw(`>נקה מסננים</button></form>`)
}

func resultCount(h *html, shown, total int) {
	h.raw(`<div class="panel count">נמצאו <b>`)
	h.text(strconv.Itoa(shown))
	h.raw(`</b> עסקים`)
	if shown != total {
		h.raw(`<span class="muted"> מתוך `)
		h.text(strconv.Itoa(total))
		h.raw(` סה"כ</span>`)
	}
	h.raw(`</div>`)
}

func card(h *html, b core.Business) {
	category := core.DeriveKosherCategory(b.Activity)

	h.raw(`<div class="card"><div class="row between"><h3>`)
	h.text(b.Name)
	h.raw(`</h3><span`)
	h.attr("class", "badge bg-"+category.BadgeColor())
	h.raw(`>`)
	h.text(string(category))
	h.raw(`</span></div>`)

	if b.Address != "" {
		h.raw(`<p>📍 `)
		h.text(b.Address)
		if b.City != "" {
			h.raw(`<br><span class="small">`)
			h.text(b.City)
			h.raw(`</span>`)
		}
		h.raw(`</p>`)
	}

	h.raw(`<div class="row">`)
	if b.Provider != "" {
		chip(h, "כשרות: "+b.Provider)
	}
	if b.Type != "" {
		chip(h, b.Type)
	}
	if b.City != "" {
		chip(h, b.City)
	}
	h.raw(`</div>`)

	if tags := core.ActivityTags(b.Activity); len(tags) > 0 {
		h.raw(`<div style="margin-top:.75rem">`)
		for _, tag := range tags {
			h.raw(`<span`)
			h.attr("class", "tag bg-"+core.ActivityColor(tag))
			h.raw(`>`)
			h.text(tag)
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
	}

	h.raw(`</div>`)
}

func chip(h *html, label string) {
	h.raw(`<span class="chip">`)
	h.text(label)
	h.raw(`</span>`)
}

func noResults(h *html) {
	h.raw(`<div class="panel empty"><h3>לא נמצאו תוצאות</h3><p class="muted">נסה לשנות את קריטריוני החיפוש</p>`)
	clearButton(h, "primary")
	h.raw(`</div>`)
}

func categoryLabels(cats []core.KosherCategory) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

func regionLabels(regions []core.Region) []string {
	out := make([]string, len(regions))
	for i, r := range regions {
		out[i] = string(r)
	}
	return out
}
