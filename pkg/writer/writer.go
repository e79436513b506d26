// Package writer puts generated units on disk.
package writer

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/kataras/figma-icons/pkg/codegen"
)

// ErrUnsafeDir is returned for output directories Replace refuses to clear.
var ErrUnsafeDir = errors.Base("refusing to replace directory")

// Stats describes a completed write.
type Stats struct {
	Files int
	Bytes int64
}

// Replace removes dir with everything in it and writes units below it.
// Unit paths are slash separated and relative to dir.
func Replace(dir string, units []codegen.Unit) (Stats, error) {
	var stats Stats
	if err := checkDir(dir); err != nil {
		return stats, err
	}

	if err := os.RemoveAll(dir); err != nil {
		return stats, errors.Errorf("clear %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stats, errors.Errorf("create %s: %w", dir, err)
	}

	for _, u := range units {
		rel := filepath.FromSlash(u.Path())
		if !filepath.IsLocal(rel) {
			return stats, errors.Errorf("unit %q escapes %s", u.Path(), dir)
		}

		target := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return stats, errors.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(u.Text), 0o644); err != nil {
			return stats, errors.Errorf("write %s: %w", target, err)
		}

		stats.Files++
		stats.Bytes += int64(len(u.Text))
	}
	return stats, nil
}

func checkDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.Errorf("%w: empty path", ErrUnsafeDir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return errors.Errorf("resolve %s: %w", dir, err)
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return errors.Errorf("%w: %s is the filesystem root", ErrUnsafeDir, dir)
	}
	if home, err := os.UserHomeDir(); err == nil && contains(abs, home) {
		return errors.Errorf("%w: %s contains the home directory", ErrUnsafeDir, dir)
	}
	if wd, err := os.Getwd(); err == nil && contains(abs, wd) {
		return errors.Errorf("%w: %s contains the working directory", ErrUnsafeDir, dir)
	}
	return nil
}

// contains reports whether path is dir or lies below it.
func contains(dir, path string) bool {
	sep := string(filepath.Separator)
	return strings.HasPrefix(filepath.Clean(path)+sep, strings.TrimSuffix(filepath.Clean(dir), sep)+sep)
}
