package commands

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct{}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	start := time.Now()
	slog.Info("Starting site build", logfields.Dir(root.Dir))

	res, err := site.New(root.Dir, cfg).Build()
	if err != nil {
		return err
	}

	slog.Info("Build finished",
		logfields.Posts(res.Posts),
		slog.Int("drafts", res.Drafts),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	fmt.Printf("Built %d posts (%d drafts skipped)\n", res.Posts, res.Drafts)
	return nil
}
