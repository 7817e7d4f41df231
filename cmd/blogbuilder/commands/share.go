package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/linkedin"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
)

// ShareCmd announces the newest published post on LinkedIn.
type ShareCmd struct {
	Message string        `short:"m" help:"Commentary for the share (defaults to the post title)."`
	DryRun  bool          `name:"dry-run" help:"Print what would be shared without calling the API."`
	Timeout time.Duration `default:"30s" help:"API call timeout."`
}

func (s *ShareCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Site.BaseURL == "" {
		return fmt.Errorf("share requires site.base_url to be configured")
	}

	meta, slug, err := newestPost(filepath.Join(root.Dir, cfg.Paths.Posts))
	if err != nil {
		return err
	}

	postURL := strings.TrimSuffix(cfg.Site.BaseURL, "/") + "/" + slug + ".html"
	commentary := s.Message
	if commentary == "" {
		commentary = meta.Title
	}

	if s.DryRun {
		fmt.Printf("Would share %q (%s)\n", commentary, postURL)
		return nil
	}

	client, err := linkedin.NewClient(cfg.LinkedIn.AccessToken, cfg.LinkedIn.AuthorURN)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	id, err := client.Share(ctx, commentary, postURL)
	if err != nil {
		return fmt.Errorf("share post: %w", err)
	}

	fmt.Printf("Shared %s as %s\n", postURL, id)
	return nil
}

// newestPost parses every post and returns the metadata and slug of the most
// recent non-draft one, breaking date ties by slug order.
func newestPost(postsDir string) (frontmatter.Meta, string, error) {
	entries, err := os.ReadDir(postsDir)
	if err != nil {
		return frontmatter.Meta{}, "", fmt.Errorf("read posts dir: %w", err)
	}

	var best frontmatter.Meta
	bestSlug := ""
	found := false

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		src, err := os.ReadFile(filepath.Join(postsDir, entry.Name()))
		if err != nil {
			return frontmatter.Meta{}, "", fmt.Errorf("read post %s: %w", entry.Name(), err)
		}
		meta, _, err := frontmatter.Parse(src)
		if err != nil {
			return frontmatter.Meta{}, "", fmt.Errorf("parse post %s: %w", entry.Name(), err)
		}
		if meta.Draft {
			continue
		}

		slug := meta.Slug
		if slug == "" {
			slug = strings.TrimSuffix(entry.Name(), ".md")
		}
		slug = site.Slugify(slug)

		switch {
		case !found:
			found = true
		case best.Date.Before(meta.Date):
		case meta.Date == best.Date && slug < bestSlug:
		default:
			continue
		}
		best = meta
		bestSlug = slug
	}

	if !found {
		return frontmatter.Meta{}, "", fmt.Errorf("no published posts found in %s", postsDir)
	}
	return best, bestSlug, nil
}
