package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/KosherDir/internal/core"
	"github.com/JonMunkholm/KosherDir/internal/logging"
	"github.com/JonMunkholm/KosherDir/internal/web/templates"
)

// handlePage renders the directory page for the current session state.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page(s.dir.Snapshot()).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleHealth reports liveness plus the current list size and free load slots.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	v := s.dir.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"records":    v.Total(),
		"loading":    v.Loading,
		"load_slots": s.loads.Available(),
	})
}

// businessJSON is a record plus its derived attributes, ready for display.
type businessJSON struct {
	core.Business
	Category      core.KosherCategory `json:"category"`
	CategoryColor string              `json:"category_color"`
	Region        core.Region         `json:"region"`
	Tags          []tagJSON           `json:"tags"`
}

type tagJSON struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// BusinessesResponse is the JSON view of the directory.
type BusinessesResponse struct {
	core.View
	Total      int            `json:"total"`
	Count      int            `json:"count"`
	Businesses []businessJSON `json:"businesses"`
}

func toBusinessJSON(b core.Business) businessJSON {
	category := core.DeriveKosherCategory(b.Activity)
	tags := core.ActivityTags(b.Activity)
	out := businessJSON{
		Business:      b,
		Category:      category,
		CategoryColor: category.BadgeColor(),
		Region:        core.InferRegion(b.City),
		Tags:          make([]tagJSON, len(tags)),
	}
	for i, t := range tags {
		out.Tags[i] = tagJSON{Label: t, Color: core.ActivityColor(t)}
	}
	return out
}

// snapshotFor returns the view for a read request. Filter query parameters,
// when present, are applied to this response only and leave the session
// filters untouched.
func (s *Server) snapshotFor(r *http.Request) (core.View, error) {
	p, ok := payloadFromValues(r.URL.Query())
	if !ok {
		return s.dir.Snapshot(), nil
	}
	if err := s.validateStruct(p); err != nil {
		return core.View{}, err
	}
	return s.dir.SnapshotWith(p.toFilters()), nil
}

// handleBusinesses returns the filtered list with derived attributes.
func (s *Server) handleBusinesses(w http.ResponseWriter, r *http.Request) {
	v, err := s.snapshotFor(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	resp := BusinessesResponse{
		View:       v,
		Total:      v.Total(),
		Count:      len(v.Filtered),
		Businesses: make([]businessJSON, len(v.Filtered)),
	}
	for i, b := range v.Filtered {
		resp.Businesses[i] = toBusinessJSON(b)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSetFilters updates one filter field or replaces the filter state.
func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeFilterRequest(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if req.Field != "" {
		if err := s.dir.UpdateFilter(core.FilterField(req.Field), req.Value); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
	} else {
		s.dir.SetFilters(req.Filters.toFilters())
	}

	s.respondDone(w, r)
}

// handleClearFilters resets every filter field.
func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	s.dir.ClearFilters()
	s.respondDone(w, r)
}

// handleLoad loads a new origin and waits for it to finish.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeLoadRequest(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.loads.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.loads.Release()

	logging.FromContext(r.Context()).Info("load requested", "origin", req.Origin)
	s.finishLoad(w, r, s.dir.Load(r.Context(), req.Origin))
}

// handleUpload ingests a multipart file upload.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Source.MaxFileSize
	// the multipart envelope adds headers and boundaries on top of the file
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.respondError(w, r, invalidRequest(fmt.Errorf("file too large or invalid form: %w", err)), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := s.loads.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.loads.Release()

	logging.FromContext(r.Context()).Info("upload received", "file", header.Filename, "size", header.Size)
	s.finishLoad(w, r, s.dir.Upload(r.Context(), header.Filename, file))
}

// finishLoad answers a load or upload. Browser posts always go back to the
// page, which shows the stored error; API clients get the error as JSON.
func (s *Server) finishLoad(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil && wantsJSON(r) {
		s.respondError(w, r, err, loadStatus(err))
		return
	}
	s.respondDone(w, r)
}

// respondDone redirects browser posts back to the page and returns the
// current view summary to API clients.
func (s *Server) respondDone(w http.ResponseWriter, r *http.Request) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	v := s.dir.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"origin":  v.Origin,
		"filters": v.Filters,
		"total":   v.Total(),
		"count":   len(v.Filtered),
		"stats":   v.Stats,
	})
}

// handleExport downloads the filtered list as CSV or XLSX.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	v, err := s.snapshotFor(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	// buffer so a failed export can still answer with an error status
	var buf bytes.Buffer
	if err := core.Export(&buf, format, v.Filtered); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("kosherdir_%s.%s", timestamp, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("export write failed", "error", err)
	}
}
