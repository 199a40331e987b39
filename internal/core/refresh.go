package core

// refresh.go reloads the directory on a fixed interval so a remote list stays
// current without a restart. A failed refresh is logged and recorded on the
// Directory like any failed load; the refresher keeps running.

import (
	"context"
	"log/slog"
	"time"

	"github.com/JonMunkholm/KosherDir/internal/logging"
)

// Refresher periodically reloads the directory's current origin.
type Refresher struct {
	dir      *Directory
	fallback string
	interval time.Duration
}

// NewRefresher reloads every interval. fallback is loaded when the directory
// has no origin yet.
func NewRefresher(dir *Directory, fallback string, interval time.Duration) *Refresher {
	return &Refresher{dir: dir, fallback: fallback, interval: interval}
}

// Run reloads on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	slog.Info("refresh scheduler started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh scheduler stopped")
			return nil
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh runs one reload. Errors are already logged by the Directory.
func (r *Refresher) refresh(ctx context.Context) {
	origin := r.dir.Origin()
	if origin == "" {
		origin = r.fallback
	}
	if origin == "" {
		return
	}

	start := time.Now()
	if err := r.dir.Load(ctx, origin); err != nil {
		return
	}
	slog.Debug("refresh completed", "origin", origin, "duration_ms", logging.Since(start))
}
