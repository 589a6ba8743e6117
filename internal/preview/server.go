package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/godocsite/internal/site"
)

// RebuildFunc regenerates the site and returns its report.
type RebuildFunc func(ctx context.Context) (*site.Report, error)

// Server serves the generated site locally and rebuilds it on demand:
// on file-watch events, on a periodic schedule, or both.
type Server struct {
	outputDir string
	rebuild   RebuildFunc
	metrics   *Metrics

	mu sync.Mutex // serializes rebuilds
}

// Options controls serve mode.
type Options struct {
	Addr     string
	WatchDir string        // empty disables the file watcher
	Interval time.Duration // zero disables the periodic rebuild
}

// NewServer creates a preview server over the given output directory.
func NewServer(outputDir string, rebuild RebuildFunc) *Server {
	return &Server{
		outputDir: outputDir,
		rebuild:   rebuild,
		metrics:   NewMetrics(),
	}
}

// handler builds the HTTP mux: the site itself, health, and metrics.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.outputDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Run performs an initial build, then serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, opts Options) error {
	if err := s.triggerRebuild(ctx, "initial"); err != nil {
		// Serve whatever exists so the operator can inspect partial output.
		slog.Error("Initial build failed", "error", err)
	}

	if opts.WatchDir != "" {
		watcher, err := s.startWatcher(ctx, opts.WatchDir)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	if opts.Interval > 0 {
		scheduler, err := s.startScheduler(opts.Interval)
		if err != nil {
			return err
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	httpServer := &http.Server{
		Addr:              opts.Addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", "addr", opts.Addr, "dir", s.outputDir)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	slog.Info("Preview server stopped")
	return nil
}

// triggerRebuild runs one rebuild, serialized so overlapping triggers queue
// rather than race on the output directory.
func (s *Server) triggerRebuild(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Info("Rebuilding site", "reason", reason)
	report, err := s.rebuild(ctx)
	s.metrics.ObserveBuild(report, err)
	if err != nil {
		return err
	}
	slog.Info("Rebuild finished",
		"reason", reason,
		"pages", len(report.Pages),
		"tool_failures", report.Failures(),
		"duration", report.Duration())
	return nil
}
