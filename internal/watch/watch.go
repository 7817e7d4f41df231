// Package watch runs the continuous rebuild loop: filesystem events and a
// periodic poll both funnel into a debounced trigger, and the fingerprint
// decides whether a rebuild actually happens. Builds are serialized by the
// single loop goroutine.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/fingerprint"
	"git.home.luguber.info/inful/blogbuilder/internal/history"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// Options configures a watch loop.
type Options struct {
	BaseDir    string
	Config     *config.Config
	ConfigFile string // relative to BaseDir; participates in the fingerprint

	// QuietWindow is the debounce window for coalescing event bursts.
	QuietWindow time.Duration
	// PollInterval is the periodic fingerprint check, a backstop for editors
	// and filesystems that defeat inotify. Zero disables polling.
	PollInterval time.Duration

	Recorder *metrics.Recorder // optional
	History  *history.Store    // optional

	// OnRebuild, when set, is called after every completed rebuild attempt.
	OnRebuild func(res *site.Result, err error)
}

// Run performs an initial build and then rebuilds on changes until ctx is
// canceled. The initial build's failure is logged, not fatal: the loop keeps
// the previous good output and waits for the sources to be fixed.
func Run(ctx context.Context, opts Options) error {
	if opts.QuietWindow <= 0 {
		opts.QuietWindow = 300 * time.Millisecond
	}

	targets := fingerprint.Targets{
		PostsDir:     opts.Config.Paths.Posts,
		StaticDir:    opts.Config.Paths.Static,
		TemplatesDir: opts.Config.Paths.Templates,
		ConfigFile:   opts.ConfigFile,
	}

	lastFP, err := rebuild(ctx, opts, targets, 0)
	if err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	addWatchRoots(watcher, opts.BaseDir, opts.Config)

	deb := newDebouncer(opts.QuietWindow)
	defer deb.stop()

	var scheduler gocron.Scheduler
	if opts.PollInterval > 0 {
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		if _, err := scheduler.NewJob(
			gocron.DurationJob(opts.PollInterval),
			gocron.NewTask(deb.trigger),
			gocron.WithName("fingerprint-poll"),
		); err != nil {
			return fmt.Errorf("schedule fingerprint poll: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(event.Name) {
				continue
			}
			// New directories under a watched root need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			deb.trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		case <-deb.fire:
			fp, err := rebuild(ctx, opts, targets, lastFP)
			if err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			lastFP = fp
		}
	}
}

// rebuild checks the fingerprint and runs a build when it differs from
// lastFP. It returns the fingerprint of the inputs that were built (or
// lastFP when the build was skipped). lastFP == 0 forces a build.
func rebuild(ctx context.Context, opts Options, targets fingerprint.Targets, lastFP uint64) (uint64, error) {
	fp, err := fingerprint.Compute(opts.BaseDir, targets)
	if err != nil {
		return lastFP, err
	}
	if lastFP != 0 && fp == lastFP {
		slog.Debug("Inputs unchanged, skipping rebuild", logfields.Fingerprint(fp))
		if opts.Recorder != nil {
			opts.Recorder.BuildSkipped()
		}
		return lastFP, nil
	}

	buildID := uuid.NewString()
	start := time.Now()
	res, buildErr := site.New(opts.BaseDir, opts.Config).Build()
	durationMS := float64(time.Since(start).Microseconds()) / 1000

	if opts.Recorder != nil {
		posts := 0
		if res != nil {
			posts = res.Posts
		}
		opts.Recorder.BuildFinished(posts, durationMS, buildErr)
	}
	if opts.History != nil {
		entry := history.Build{
			ID:          buildID,
			StartedAt:   start.UTC(),
			Duration:    durationMS,
			Fingerprint: fp,
			Succeeded:   buildErr == nil,
		}
		if res != nil {
			entry.Posts = res.Posts
		}
		if buildErr != nil {
			entry.Error = buildErr.Error()
		}
		if err := opts.History.Record(ctx, entry); err != nil {
			slog.Warn("Failed to record build history", logfields.Error(err))
		}
	}
	if opts.OnRebuild != nil {
		opts.OnRebuild(res, buildErr)
	}
	if buildErr != nil {
		return lastFP, buildErr
	}

	slog.Info("Rebuild complete",
		logfields.BuildID(buildID),
		logfields.Fingerprint(fp),
		logfields.DurationMS(durationMS))
	return fp, nil
}

// addWatchRoots registers the content directories and the base dir (for the
// config file) with the watcher. Missing directories are skipped; they get
// picked up by the poll once they appear.
func addWatchRoots(watcher *fsnotify.Watcher, baseDir string, cfg *config.Config) {
	roots := []string{cfg.Paths.Posts, cfg.Paths.Static, cfg.Paths.Templates}
	for _, rel := range roots {
		if rel == "" {
			continue
		}
		root := filepath.Join(baseDir, rel)
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					slog.Warn("Failed to watch directory", logfields.Dir(path), logfields.Error(err))
				}
			}
			return nil
		})
	}
	if err := watcher.Add(baseDir); err != nil {
		slog.Warn("Failed to watch base directory", logfields.Dir(baseDir), logfields.Error(err))
	}
}

// shouldIgnoreEvent filters editor temp files and hidden entries.
func shouldIgnoreEvent(path string) bool {
	name := filepath.Base(path)
	switch {
	case strings.HasPrefix(name, "."):
		return true
	case strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#"):
		return true
	case strings.HasSuffix(name, ".swp") || strings.HasSuffix(name, "~"):
		return true
	}
	return false
}

// debouncer coalesces bursts of triggers into one fire per quiet window.
type debouncer struct {
	quiet time.Duration
	fire  chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(quiet time.Duration) *debouncer {
	return &debouncer{quiet: quiet, fire: make(chan struct{}, 1)}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		select {
		case d.fire <- struct{}{}:
		default:
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
