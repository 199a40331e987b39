package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/KosherDir/internal/config"
	"github.com/JonMunkholm/KosherDir/internal/core"
	"github.com/JonMunkholm/KosherDir/internal/web"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("configuration loaded", "config", cfg.String())

	src, files := newSource(cfg)
	metrics := core.NewMetrics()
	dir := core.NewDirectory(src, core.DirectoryConfig{
		MaxFileSize: cfg.Source.MaxFileSize,
		Metrics:     metrics,
	})

	// A failed initial load is kept on the directory and shown on the page.
	if err := dir.Load(ctx, cfg.Source.DefaultOrigin); err != nil {
		slog.Warn("initial load failed", "origin", cfg.Source.DefaultOrigin, "error", err)
	}

	var watcher *core.Watcher
	if cfg.Source.Watch {
		w, err := core.NewWatcher(dir, files, cfg.Source.DefaultOrigin, cfg.Source.WatchDebounce)
		if err != nil {
			return err
		}
		watcher = w
	}

	server := web.NewServer(dir, metrics, cfg)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if watcher != nil {
		g.Go(func() error { return watcher.Run(gctx) })
	}

	if cfg.Source.RefreshInterval > 0 {
		refresher := core.NewRefresher(dir, cfg.Source.DefaultOrigin, cfg.Source.RefreshInterval)
		g.Go(func() error { return refresher.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
			return err
		}
		return nil
	})

	err := g.Wait()
	slog.Info("server stopped")
	return err
}
