package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Site: config.SiteConfig{
			Title:       "Test Blog",
			Description: "A test blog",
			BaseURL:     "https://example.com",
		},
		Paths: config.PathsConfig{
			Output: "public",
			Posts:  "posts",
			Static: "static",
		},
	}
}

func writePost(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "posts")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func post(title, date string, extra ...string) string {
	lines := []string{"---", "title: " + title, "date: " + date}
	lines = append(lines, extra...)
	lines = append(lines, "---", "", "Body of "+title, "")
	return strings.Join(lines, "\n")
}

func readOut(t *testing.T, base, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(base, "public", name))
	require.NoError(t, err)
	return string(data)
}

func TestBuild_TwoPosts_IndexAndFeedNewestFirst(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("Post A", "2025-12-01"))
	writePost(t, base, "b.md", post("Post B", "2025-12-02"))

	res, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.Equal(t, 2, res.Posts)

	index := readOut(t, base, "index.html")
	require.Less(t, strings.Index(index, "b.html"), strings.Index(index, "a.html"))

	feed := readOut(t, base, "feed.xml")
	require.Less(t, strings.Index(feed, "Post B"), strings.Index(feed, "Post A"))
	require.Contains(t, feed, "<lastBuildDate>Tue, 02 Dec 2025 00:00:00 +0000</lastBuildDate>")
	require.Contains(t, feed, `<guid isPermaLink="true">https://example.com/b.html</guid>`)

	require.FileExists(t, filepath.Join(base, "public", "a.html"))
	require.FileExists(t, filepath.Join(base, "public", "b.html"))
}

func TestBuild_Deterministic_ByteIdenticalOutputs(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("Alpha", "2025-06-01", "description: first"))
	writePost(t, base, "b.md", post("Beta", "2025-06-02", "tags: [x, y]"))

	gen := New(base, testConfig())
	_, err := gen.Build()
	require.NoError(t, err)
	index1 := readOut(t, base, "index.html")
	feed1 := readOut(t, base, "feed.xml")

	_, err = gen.Build()
	require.NoError(t, err)
	require.Equal(t, index1, readOut(t, base, "index.html"))
	require.Equal(t, feed1, readOut(t, base, "feed.xml"))
}

func TestBuild_DraftPost_ProducesNoOutput(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("Published", "2025-01-01"))
	writePost(t, base, "d.md", post("Secret", "2025-01-02", "draft: true"))

	res, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.Equal(t, 1, res.Posts)
	require.Equal(t, 1, res.Drafts)

	require.NoFileExists(t, filepath.Join(base, "public", "d.html"))
	require.NotContains(t, readOut(t, base, "index.html"), "Secret")
	require.NotContains(t, readOut(t, base, "feed.xml"), "Secret")
}

func TestBuild_DuplicateSlugs_FailsNamingBothFiles(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("First", "2025-01-01", "slug: same"))
	writePost(t, base, "b.md", post("Second", "2025-01-02", "slug: same"))

	_, err := New(base, testConfig()).Build()
	require.ErrorIs(t, err, ErrDuplicateSlug)
	require.Contains(t, err.Error(), "a.md")
	require.Contains(t, err.Error(), "b.md")
}

func TestBuild_ExplicitSlug_WinsOverFilename(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "whatever.md", post("Custom", "2025-01-01", "slug: chosen-name"))

	_, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(base, "public", "chosen-name.html"))
}

func TestBuild_DotDotOutputPath_FailsBeforeAnyWrite(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("A", "2025-01-01"))
	sentinel := filepath.Join(base, "..", "sentinel-should-survive")

	cfg := testConfig()
	cfg.Paths.Output = ".."
	_, err := New(base, cfg).Build()
	require.ErrorIs(t, err, config.ErrPathContainsDotDot)

	cfg.Paths.Output = "sub/../../x"
	_, err = New(base, cfg).Build()
	require.ErrorIs(t, err, config.ErrPathContainsDotDot)
	require.NoFileExists(t, sentinel)
}

func TestBuild_OutputOverlappingPostsDir_Fails(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("A", "2025-01-01"))

	cfg := testConfig()
	cfg.Paths.Output = "posts"
	_, err := New(base, cfg).Build()
	require.ErrorIs(t, err, ErrOutDirOverlapsPostsDir)

	cfg.Paths.Output = "posts/out"
	_, err = New(base, cfg).Build()
	require.ErrorIs(t, err, ErrOutDirOverlapsPostsDir)
}

func TestBuild_SymlinkedOutputEscapingBase_Fails(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()
	writePost(t, base, "a.md", post("A", "2025-01-01"))
	require.NoError(t, os.Symlink(outside, filepath.Join(base, "public")))

	_, err := New(base, testConfig()).Build()
	require.ErrorIs(t, err, ErrOutDirEscapesBase)

	// Nothing in the symlink target was deleted or written.
	entries, err := os.ReadDir(outside)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBuild_CleanPreservesGitignore_RemovesEverythingElse(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("A", "2025-01-01"))
	outDir := filepath.Join(base, "public")
	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "old-dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, ".gitignore"), []byte("*\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "stale.html"), []byte("old"), 0o644))

	_, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(outDir, ".gitignore"))
	require.NoFileExists(t, filepath.Join(outDir, "stale.html"))
	require.NoDirExists(t, filepath.Join(outDir, "old-dir"))
}

func TestBuild_CleanRemovesSymlinkEntryWithoutFollowing(t *testing.T) {
	base := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "precious.txt"), []byte("keep"), 0o644))

	writePost(t, base, "a.md", post("A", "2025-01-01"))
	outDir := filepath.Join(base, "public")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, os.Symlink(outside, filepath.Join(outDir, "linked")))

	_, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(outDir, "linked"))
	require.FileExists(t, filepath.Join(outside, "precious.txt"))
}

func TestBuild_StaticTree_CopiedSkippingGitignore(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("A", "2025-01-01"))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "static", "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "static", "css", "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "static", ".gitignore"), []byte("x"), 0o644))

	_, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(base, "public", "css", "style.css"))
	require.NoFileExists(t, filepath.Join(base, "public", ".gitignore"))

	data, err := os.ReadFile(filepath.Join(base, "public", "css", "style.css"))
	require.NoError(t, err)
	require.Equal(t, "body{}", string(data))
}

func TestBuild_TitleWithMarkup_EscapedInIndexAndFeed(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post(`<b>Bold & "quoted"</b>`, "2025-01-01"))

	_, err := New(base, testConfig()).Build()
	require.NoError(t, err)

	index := readOut(t, base, "index.html")
	require.Contains(t, index, "&lt;b&gt;Bold &amp; &quot;quoted&quot;&lt;/b&gt;")
	require.NotContains(t, index, `<b>Bold`)

	feed := readOut(t, base, "feed.xml")
	require.Contains(t, feed, "&lt;b&gt;Bold &amp; &quot;quoted&quot;&lt;/b&gt;")
}

func TestBuild_MalformedPost_AbortsWholeBuild(t *testing.T) {
	base := t.TempDir()
	writePost(t, base, "a.md", post("Good", "2025-01-01"))
	writePost(t, base, "bad.md", "no front matter here\n")

	_, err := New(base, testConfig()).Build()
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.md")
}

func TestBuild_NoPosts_EmitsEmptyIndexAndFeedWithoutBuildDate(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "posts"), 0o755))

	res, err := New(base, testConfig()).Build()
	require.NoError(t, err)
	require.Equal(t, 0, res.Posts)

	feed := readOut(t, base, "feed.xml")
	require.NotContains(t, feed, "lastBuildDate")
	require.Contains(t, feed, "<title>Test Blog</title>")
}
