package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/preview"
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

// PreviewCmd serves the generated site locally and rebuilds it on changes.
type PreviewCmd struct {
	Port    int           `short:"p" default:"8080" help:"HTTP port to serve on."`
	Quiet   time.Duration `name:"quiet" default:"300ms" help:"Debounce window for coalescing change bursts."`
	Poll    time.Duration `name:"poll" default:"30s" help:"Periodic fingerprint check interval (0 disables)."`
	History string        `name:"history" help:"SQLite file for the build log (defaults to in-memory)."`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	histPath := p.History
	if histPath == "" {
		histPath = ":memory:"
	}
	store, err := history.Open(histPath)
	if err != nil {
		return fmt.Errorf("open build history: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close build history", "error", err)
		}
	}()

	recorder := metrics.NewRecorder()

	opts := watch.Options{
		BaseDir:      root.Dir,
		Config:       cfg,
		ConfigFile:   root.WatchConfigPath(),
		QuietWindow:  p.Quiet,
		PollInterval: p.Poll,
		Recorder:     recorder,
		History:      store,
	}

	errCh := make(chan error, 2)
	go func() {
		errCh <- watch.Run(ctx, opts)
	}()

	srv := preview.New(root.Dir, cfg, recorder, store)
	go func() {
		errCh <- srv.Run(ctx, p.Port)
	}()

	fmt.Printf("Preview server listening on http://localhost:%d\n", p.Port)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
	}
	slog.Info("Preview stopped")
	return nil
}
