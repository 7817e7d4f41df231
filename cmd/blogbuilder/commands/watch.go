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
	"git.home.luguber.info/inful/blogbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command: rebuild on source changes without
// serving the result.
type WatchCmd struct {
	Quiet   time.Duration `name:"quiet" default:"300ms" help:"Debounce window for coalescing change bursts."`
	Poll    time.Duration `name:"poll" default:"30s" help:"Periodic fingerprint check interval (0 disables)."`
	History string        `name:"history" help:"SQLite file for the build log (empty disables)."`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := watch.Options{
		BaseDir:      root.Dir,
		Config:       cfg,
		ConfigFile:   root.WatchConfigPath(),
		QuietWindow:  w.Quiet,
		PollInterval: w.Poll,
	}

	if w.History != "" {
		store, err := history.Open(w.History)
		if err != nil {
			return fmt.Errorf("open build history: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close build history", "error", err)
			}
		}()
		opts.History = store
	}

	slog.Info("Watching for changes", "dir", root.Dir)
	if err := watch.Run(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("Watch stopped")
	return nil
}
