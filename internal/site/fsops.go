package site

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// gitignoreName is the single reserved entry that survives cleaning, so an
// output directory checked into git keeps its ignore rule across rebuilds.
const gitignoreName = ".gitignore"

// cleanOutputDir deletes every entry of dir except a root-level .gitignore.
// Symlinked subdirectories are removed as link entries, never traversed, so a
// link into an unrelated tree cannot cause that tree's destruction.
func cleanOutputDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}
	for _, entry := range entries {
		if entry.Name() == gitignoreName {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			// RemoveAll unlinks symlink entries inside without following them.
			if err := os.RemoveAll(full); err != nil {
				return fmt.Errorf("remove %s: %w", full, err)
			}
			continue
		}
		if err := os.Remove(full); err != nil {
			return fmt.Errorf("remove %s: %w", full, err)
		}
	}
	return nil
}

// copyTree copies the static assets tree from src into dst, preserving
// directory structure and recreating symlinks as links. .gitignore files are
// skipped. A missing src is not an error; a site without static assets is
// legal.
func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat static dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static path %s is not a directory", src)
	}
	return copyDir(src, dst)
}

func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dst, err)
	}
	for _, entry := range entries {
		if entry.Name() == gitignoreName {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			target, err := os.Readlink(srcPath)
			if err != nil {
				return fmt.Errorf("readlink %s: %w", srcPath, err)
			}
			if err := os.Symlink(target, dstPath); err != nil {
				return fmt.Errorf("symlink %s: %w", dstPath, err)
			}
		case entry.IsDir():
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", dst, err)
	}
	return nil
}
