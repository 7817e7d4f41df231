package site

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvedPaths holds the canonical absolute locations of the build after
// symlink resolution and safety checks.
type resolvedPaths struct {
	base   string
	out    string
	posts  string
	static string
}

// resolvePaths canonicalizes the configured directories and runs the semantic
// safety checks: the output directory must not equal or escape the base
// directory and must not overlap the posts or static directories. All checks
// run before any destructive operation.
func resolvePaths(baseDir, outRel, postsRel, staticRel string) (resolvedPaths, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return resolvedPaths{}, fmt.Errorf("resolve base dir: %w", err)
	}
	base, err := filepath.EvalSymlinks(absBase)
	if err != nil {
		return resolvedPaths{}, fmt.Errorf("resolve base dir: %w", err)
	}

	out, err := resolveLexical(base, outRel)
	if err != nil {
		return resolvedPaths{}, fmt.Errorf("resolve output dir: %w", err)
	}
	posts, err := resolveLexical(base, postsRel)
	if err != nil {
		return resolvedPaths{}, fmt.Errorf("resolve posts dir: %w", err)
	}
	static, err := resolveLexical(base, staticRel)
	if err != nil {
		return resolvedPaths{}, fmt.Errorf("resolve static dir: %w", err)
	}

	switch {
	case out == base:
		return resolvedPaths{}, fmt.Errorf("%w: %s", ErrOutDirEqualsBase, outRel)
	case !isWithin(out, base):
		return resolvedPaths{}, fmt.Errorf("%w: %s resolves to %s", ErrOutDirEscapesBase, outRel, out)
	case overlaps(out, posts):
		return resolvedPaths{}, fmt.Errorf("%w: %s vs %s", ErrOutDirOverlapsPostsDir, outRel, postsRel)
	case overlaps(out, static):
		return resolvedPaths{}, fmt.Errorf("%w: %s vs %s", ErrOutDirOverlapsStaticDir, outRel, staticRel)
	}

	return resolvedPaths{base: base, out: out, posts: posts, static: static}, nil
}

// resolveLexical resolves base/rel through symlinks. Because the target may
// not exist yet (the output dir on a first build), the longest existing
// ancestor is resolved and the remaining components are rejoined lexically;
// components that do not exist cannot be symlinks.
func resolveLexical(base, rel string) (string, error) {
	full := filepath.Join(base, rel)
	existing := full
	var tail []string
	for {
		if _, err := os.Lstat(existing); err == nil {
			break
		}
		tail = append([]string{filepath.Base(existing)}, tail...)
		parent := filepath.Dir(existing)
		if parent == existing {
			break
		}
		existing = parent
	}
	resolved, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{resolved}, tail...)...), nil
}

// isWithin reports whether path lies strictly inside dir.
func isWithin(path, dir string) bool {
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

// overlaps reports whether a and b are equal or one contains the other.
func overlaps(a, b string) bool {
	return a == b || isWithin(a, b) || isWithin(b, a)
}
