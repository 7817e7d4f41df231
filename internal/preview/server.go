// Package preview serves the generated site locally during development,
// alongside health, status, and metrics endpoints.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// Server is the local preview HTTP server over the output tree.
type Server struct {
	outDir    string
	recorder  *metrics.Recorder
	store     *history.Store
	startTime time.Time
}

func New(baseDir string, cfg *config.Config, recorder *metrics.Recorder, store *history.Store) *Server {
	return &Server{
		outDir:    filepath.Join(baseDir, cfg.Paths.Output),
		recorder:  recorder,
		store:     store,
		startTime: time.Now(),
	}
}

// Handler builds the route table. Split out from Run for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.outDir)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	if s.recorder != nil {
		mux.Handle("/metrics", s.recorder.Handler())
	}
	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("Preview server listening",
		slog.Int("port", port),
		slog.String("url", fmt.Sprintf("http://localhost:%d", port)),
		logfields.Dir(s.outDir))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown preview server: %w", err)
		}
		return ctx.Err()
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

type statusResponse struct {
	Status       string          `json:"status"`
	Uptime       string          `json:"uptime"`
	RecentBuilds []history.Build `json:"recent_builds,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status: "running",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	}
	if s.store != nil {
		builds, err := s.store.Recent(r.Context(), 10)
		if err != nil {
			slog.Warn("Failed to read build history", logfields.Error(err))
		} else {
			resp.RecentBuilds = builds
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("Failed to encode status response", logfields.Error(err))
	}
}
