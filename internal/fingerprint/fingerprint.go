// Package fingerprint summarizes the state of a set of watched files and
// directories as a single comparable 64-bit value.
//
// The value is built from order-independent accumulators, so directory
// iteration order never causes churn, while any observable change to the
// watched targets' presence, structure, metadata, or (for small files)
// content changes the result with high probability. Callers compare two
// values for equality only.
package fingerprint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrWatchEscapesBase indicates a watched target that resolves outside the
	// base directory, e.g. through a symlink.
	ErrWatchEscapesBase = errors.New("watch target resolves outside the base directory")

	// ErrWatchEqualsBase indicates a watched target that resolves to the base
	// directory itself.
	ErrWatchEqualsBase = errors.New("watch target resolves to the base directory itself")
)

// maxContentBytes caps per-file content hashing. Larger files contribute only
// metadata, bounding fingerprint cost on pathological trees.
const maxContentBytes = 1 << 20

// Targets names the inputs a rebuild depends on, as paths relative to the
// base directory. Empty fields are not watched.
type Targets struct {
	PostsDir     string
	StaticDir    string
	TemplatesDir string
	ConfigFile   string
}

// Compute walks the targets under baseDir and returns their fingerprint.
//
// Each call owns its own accumulators and traversal stack; concurrent calls
// share nothing.
func Compute(baseDir string, targets Targets) (uint64, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return 0, fmt.Errorf("resolve base dir: %w", err)
	}
	resolvedBase, err := filepath.EvalSymlinks(absBase)
	if err != nil {
		return 0, fmt.Errorf("resolve base dir: %w", err)
	}

	var acc accumulator
	for _, dir := range []string{targets.PostsDir, targets.StaticDir, targets.TemplatesDir} {
		if dir == "" {
			continue
		}
		if err := hashDirTree(&acc, resolvedBase, dir); err != nil {
			return 0, err
		}
	}
	if targets.ConfigFile != "" {
		if err := hashConfigFile(&acc, resolvedBase, targets.ConfigFile); err != nil {
			return 0, err
		}
	}
	return acc.final(), nil
}

// hashDirTree fingerprints one watched directory, recursing with an explicit
// stack.
func hashDirTree(acc *accumulator, base, rel string) error {
	root := filepath.Join(base, rel)

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			acc.add(factHash("missing_dir", rel))
			return nil
		}
		return fmt.Errorf("resolve watch dir %s: %w", rel, err)
	}
	if err := ensureContained(base, resolved, rel); err != nil {
		return err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fmt.Errorf("stat watch dir %s: %w", rel, err)
	}
	if !info.IsDir() {
		acc.add(factHash("wrong_kind", rel, info.Mode().Type().String()))
		return nil
	}
	acc.add(factHash("dir_present", rel))

	// relDir entries are relative to the watched root so that moving the base
	// directory as a whole does not change the fingerprint.
	stack := []string{resolved}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read dir %s: %w", dir, err)
		}
		relDir, err := filepath.Rel(resolved, dir)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", dir, err)
		}

		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			switch {
			case entry.Type()&fs.ModeSymlink != 0:
				acc.add(symlinkFact(rel, relDir, entry.Name(), full))
			case entry.IsDir():
				acc.add(factHash("dir", rel, relDir, entry.Name()))
				stack = append(stack, full)
			case entry.Type().IsRegular():
				h, err := fileFact(rel, relDir, entry.Name(), full)
				if err != nil {
					return err
				}
				acc.add(h)
			default:
				acc.add(factHash("other", rel, relDir, entry.Name(), entry.Type().String()))
			}
		}
	}
	return nil
}

// hashConfigFile fingerprints a single watched file.
func hashConfigFile(acc *accumulator, base, rel string) error {
	full := filepath.Join(base, rel)
	info, err := os.Lstat(full)
	if err != nil {
		if os.IsNotExist(err) {
			acc.add(factHash("missing_file", rel))
			return nil
		}
		return fmt.Errorf("stat watch file %s: %w", rel, err)
	}
	if !info.Mode().IsRegular() {
		acc.add(factHash("wrong_kind", rel, info.Mode().Type().String()))
		return nil
	}
	h, err := fileFact(rel, ".", filepath.Base(rel), full)
	if err != nil {
		return err
	}
	acc.add(h)
	return nil
}

func symlinkFact(root, relDir, name, full string) uint64 {
	target, err := os.Readlink(full)
	if err != nil {
		return factHash("symlink_unreadable", root, relDir, name)
	}
	return factHash("symlink", root, relDir, name, target)
}

func fileFact(root, relDir, name, full string) (uint64, error) {
	info, err := os.Lstat(full)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", full, err)
	}

	d := xxhash.New()
	writeField(d, "file")
	writeField(d, root)
	writeField(d, relDir)
	writeField(d, name)
	writeField(d, strconv.FormatInt(info.Size(), 10))
	writeField(d, strconv.FormatInt(info.ModTime().UnixNano(), 10))
	if ino, ctime, ok := statIdentity(info); ok {
		writeField(d, strconv.FormatUint(ino, 10))
		writeField(d, strconv.FormatInt(ctime, 10))
	}
	if info.Size() <= maxContentBytes {
		content, err := os.ReadFile(full)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", full, err)
		}
		writeField(d, strconv.FormatUint(xxhash.Sum64(content), 10))
	}
	return d.Sum64(), nil
}

func ensureContained(base, resolved, rel string) error {
	if resolved == base {
		return fmt.Errorf("%w: %s", ErrWatchEqualsBase, rel)
	}
	if !strings.HasPrefix(resolved, base+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s resolves to %s", ErrWatchEscapesBase, rel, resolved)
	}
	return nil
}

// factHash hashes a sequence of NUL-delimited fields into one 64-bit value.
func factHash(fields ...string) uint64 {
	d := xxhash.New()
	for _, f := range fields {
		writeField(d, f)
	}
	return d.Sum64()
}

func writeField(d *xxhash.Digest, field string) {
	_, _ = d.WriteString(field)
	_, _ = d.Write([]byte{0})
}

// Golden ratio constant used for the multiplicative accumulator, the usual
// 64-bit Fibonacci hashing multiplier.
const goldenRatio = 0x9E3779B97F4A7C15

// accumulator combines per-fact hashes order-independently: a running XOR, a
// running sum of multiplicatively mixed hashes, and a fact count.
type accumulator struct {
	xor   uint64
	sum   uint64
	count uint64
}

func (a *accumulator) add(h uint64) {
	a.xor ^= h
	a.sum += h * goldenRatio
	a.count++
}

// final mixes the three accumulators through xxhash into the fingerprint.
func (a *accumulator) final() uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], a.xor)
	binary.LittleEndian.PutUint64(buf[8:16], a.sum)
	binary.LittleEndian.PutUint64(buf[16:24], a.count)
	return xxhash.Sum64(buf[:])
}
