package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/KosherDir/internal/logging"
)

// Directory owns the loaded record list and the current filter state.
//
// Loads are not cancellable once started and a new load does not cancel one
// in flight: whichever finishes last replaces the list. Filtering runs on a
// snapshot outside the lock.
type Directory struct {
	source  Source
	maxSize int64
	metrics *Metrics

	mu       sync.RWMutex
	records  []Business
	options  FilterOptions
	filters  Filters
	inflight int
	lastErr  UserMessage
	stats    LoadStats
	origin   string
	loadedAt time.Time
}

// DirectoryConfig holds the optional Directory settings.
type DirectoryConfig struct {
	MaxFileSize int64    // byte cap per load, DefaultMaxFileSize when <= 0
	Metrics     *Metrics // nil disables metrics
}

// NewDirectory creates an empty directory reading origins through src.
func NewDirectory(src Source, cfg DirectoryConfig) *Directory {
	return &Directory{
		source:  src,
		maxSize: cfg.MaxFileSize,
		metrics: cfg.Metrics,
		options: Options(nil),
	}
}

// View is a consistent snapshot of the directory for rendering.
type View struct {
	Origin    string        `json:"origin"`
	Records   []Business    `json:"-"`
	Filtered  []Business    `json:"-"`
	Options   FilterOptions `json:"options"`
	Filters   Filters       `json:"filters"`
	Loading   bool          `json:"loading"`
	Error     string        `json:"error,omitempty"`
	ErrorCode string        `json:"error_code,omitempty"`
	Stats     LoadStats     `json:"stats"`
	LoadedAt  time.Time     `json:"loaded_at"`
}

// Total returns the size of the unfiltered list.
func (v View) Total() int { return len(v.Records) }

// Load reads origin through the directory's source and replaces the record list.
//
// On failure the list is emptied and the mapped user message is kept for
// display; the error is also returned to the caller. The caller's context
// values are kept but its cancellation is not: a started load always finishes.
func (d *Directory) Load(ctx context.Context, origin string) error {
	ctx = context.WithoutCancel(ctx)
	logger := d.begin(ctx, "origin", origin)

	records, stats, err := Ingest(ctx, d.source, origin, d.maxSize)
	d.finish(logger, "origin", origin, records, stats, err)
	return err
}

// Upload ingests a caller-provided blob. name is used for provider inference.
// A context already done before the upload starts aborts it without touching
// the current list.
func (d *Directory) Upload(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := d.begin(ctx, "upload", name)

	records, stats, err := IngestReader(r, name, d.maxSize)
	d.finish(logger, "upload", name, records, stats, err)
	return err
}

// begin marks a load in flight and clears the previous error.
func (d *Directory) begin(ctx context.Context, kind, origin string) *slog.Logger {
	d.mu.Lock()
	d.inflight++
	d.lastErr = UserMessage{}
	d.mu.Unlock()

	logger := logging.WithFields(ctx, "load_id", uuid.New().String(), "kind", kind, "origin", origin)
	logger.Info("load started")
	return logger
}

// finish publishes the result of a load. The last finisher wins.
func (d *Directory) finish(logger *slog.Logger, kind, origin string, records []Business, stats LoadStats, err error) {
	d.metrics.observeLoad(kind, stats, err)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.inflight--
	d.origin = origin
	d.loadedAt = time.Now()

	if err != nil {
		msg := MapLoadError(err)
		d.records = nil
		d.options = Options(nil)
		d.stats = LoadStats{}
		d.lastErr = msg
		logger.Error("load failed", "error", err, "code", msg.Code)
		return
	}

	d.records = records
	d.options = Options(records)
	d.stats = stats
	d.lastErr = UserMessage{}
	logger.Info("load finished",
		"rows", stats.Rows,
		"kept", stats.Kept,
		"dropped", stats.Dropped,
		"duration_ms", stats.Duration.Milliseconds(),
	)
}

// UpdateFilter replaces one filter field.
func (d *Directory) UpdateFilter(field FilterField, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := d.filters.With(field, value)
	if err != nil {
		return err
	}
	d.filters = next
	return nil
}

// SetFilters replaces the whole filter state.
func (d *Directory) SetFilters(f Filters) {
	d.mu.Lock()
	d.filters = f
	d.mu.Unlock()
}

// ClearFilters resets every filter field.
func (d *Directory) ClearFilters() {
	d.SetFilters(ClearFilters())
}

// Filters returns the current filter state.
func (d *Directory) Filters() Filters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filters
}

// Origin returns the origin of the most recent finished load.
func (d *Directory) Origin() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.origin
}

// Loading reports whether a load is in flight.
func (d *Directory) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.inflight > 0
}

// Snapshot returns the current state with the filtered list computed.
func (d *Directory) Snapshot() View {
	d.mu.RLock()
	v := View{
		Origin:    d.origin,
		Records:   d.records,
		Options:   d.options,
		Filters:   d.filters,
		Loading:   d.inflight > 0,
		Error:     d.lastErr.Message,
		ErrorCode: d.lastErr.Code,
		Stats:     d.stats,
		LoadedAt:  d.loadedAt,
	}
	d.mu.RUnlock()

	v.Filtered = Evaluate(v.Records, v.Filters)
	return v
}

// SnapshotWith evaluates f against the current records without storing it.
// The CLI and exports use it to filter without touching the session state.
func (d *Directory) SnapshotWith(f Filters) View {
	v := d.Snapshot()
	v.Filters = f
	v.Filtered = Evaluate(v.Records, f)
	return v
}
