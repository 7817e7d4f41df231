// Package site generates the static site: it validates the workspace paths,
// renders every non-draft post, and emits the index page and the RSS feed
// with atomic per-file writes.
package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

// PostSummary is the per-post data carried from parsing to the index and feed.
// It lives only for the duration of one build.
type PostSummary struct {
	Title       string
	Date        frontmatter.CalendarDate
	DateRaw     string
	Slug        string
	Description string
}

// Result reports what a completed build produced.
type Result struct {
	Posts  int
	Drafts int
}

// Generator builds the site from a base directory and configuration. Each
// Build call owns all of its state; a Generator itself holds none.
type Generator struct {
	baseDir string
	cfg     *config.Config
}

func New(baseDir string, cfg *config.Config) *Generator {
	return &Generator{baseDir: baseDir, cfg: cfg}
}

// Build produces a complete output tree or fails without corrupting a
// previously good one: all path validation runs before cleaning, every file
// write is atomic, and the first error aborts the build.
func (g *Generator) Build() (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	paths, err := resolvePaths(g.baseDir, g.cfg.Paths.Output, g.cfg.Paths.Posts, g.cfg.Paths.Static)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(paths.out, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if err := cleanOutputDir(paths.out); err != nil {
		return nil, err
	}
	if err := copyTree(paths.static, paths.out); err != nil {
		return nil, err
	}

	names, err := listPostFiles(paths.posts)
	if err != nil {
		return nil, err
	}

	owners := make(map[string]string, len(names))
	summaries := make([]PostSummary, 0, len(names))
	drafts := 0

	for _, name := range names {
		summary, draft, err := g.buildPost(paths, name, owners)
		if err != nil {
			return nil, err
		}
		if draft {
			drafts++
			continue
		}
		summaries = append(summaries, summary)
	}

	sortSummaries(summaries)

	feed, err := renderFeed(g.cfg.Site, summaries)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(filepath.Join(paths.out, "feed.xml"), feed, 0o644); err != nil {
		return nil, err
	}

	index := renderIndexPage(g.cfg.Site, summaries)
	if err := writeFileAtomic(filepath.Join(paths.out, "index.html"), index, 0o644); err != nil {
		return nil, err
	}

	slog.Info("Site build complete",
		logfields.Dir(paths.out),
		logfields.Posts(len(summaries)),
		slog.Int("drafts", drafts))
	return &Result{Posts: len(summaries), Drafts: drafts}, nil
}

// buildPost processes one source file: parse, slug, render, write. A draft
// produces no output and no summary. owners maps slug to the source file that
// first claimed it.
func (g *Generator) buildPost(paths resolvedPaths, name string, owners map[string]string) (PostSummary, bool, error) {
	src, err := os.ReadFile(filepath.Join(paths.posts, name))
	if err != nil {
		return PostSummary{}, false, fmt.Errorf("read post %s: %w", name, err)
	}

	meta, body, err := frontmatter.Parse(src)
	if err != nil {
		return PostSummary{}, false, fmt.Errorf("parse %s: %w", name, err)
	}
	if meta.Draft {
		slog.Debug("Skipping draft", logfields.Post(name))
		return PostSummary{}, true, nil
	}

	slugSource := meta.Slug
	if slugSource == "" {
		slugSource = strings.TrimSuffix(name, ".md")
	}
	slug := Slugify(slugSource)
	if owner, taken := owners[slug]; taken {
		return PostSummary{}, false, fmt.Errorf("%w: %q claimed by %s, also produced by %s",
			ErrDuplicateSlug, slug, owner, name)
	}
	owners[slug] = name

	html, err := render.Markdown(body)
	if err != nil {
		return PostSummary{}, false, fmt.Errorf("render %s: %w", name, err)
	}

	summary := PostSummary{
		Title:       meta.Title,
		Date:        meta.Date,
		DateRaw:     meta.DateRaw,
		Slug:        slug,
		Description: meta.Description,
	}
	page := renderPostPage(g.cfg.Site, summary, html)
	if err := writeFileAtomic(filepath.Join(paths.out, slug+".html"), page, 0o644); err != nil {
		return PostSummary{}, false, err
	}

	slog.Debug("Rendered post", logfields.Post(name), logfields.Slug(slug))
	return summary, false, nil
}

// listPostFiles enumerates the .md files directly inside the posts directory,
// sorted byte-wise for deterministic processing order.
func listPostFiles(postsDir string) ([]string, error) {
	entries, err := os.ReadDir(postsDir)
	if err != nil {
		return nil, fmt.Errorf("read posts dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// sortSummaries orders posts newest first, ties broken by slug ascending.
// The same order feeds both the index page and the feed.
func sortSummaries(summaries []PostSummary) {
	sort.Slice(summaries, func(i, j int) bool {
		if c := summaries[i].Date.Compare(summaries[j].Date); c != 0 {
			return c > 0
		}
		return summaries[i].Slug < summaries[j].Slug
	})
}
