package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Walk validates cfg and root, then returns a lazy sequence over the files
// under root that cfg selects. Siblings are visited in lexical order.
//
// A directory or entry that cannot be read is yielded as (path, err) and
// skipped; the walk continues. If root is a regular file it is yielded as
// is, without applying cfg.
func Walk(root string, cfg ScanConfig) (iter.Seq2[string, error], error) {
	if err := validatePatterns(cfg); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &PathNotFoundError{Path: root}
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return func(yield func(string, error) bool) {
			yield(absRoot, nil)
		}, nil
	}

	return func(yield func(string, error) bool) {
		filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				target, err := os.Stat(path)
				if err != nil {
					return errOrSkip(yield(path, err))
				}
				if !target.Mode().IsRegular() {
					return nil
				}
			} else if !d.Type().IsRegular() {
				return nil
			}

			relPath, err := filepath.Rel(absRoot, path)
			if err != nil {
				relPath = path
			}
			if !selected(filepath.ToSlash(relPath), cfg) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

// DiscoverFiles collects Walk into a slice, dropping unreadable entries.
// Returns a sorted slice of absolute file paths.
func DiscoverFiles(root string, cfg ScanConfig) ([]string, error) {
	seq, err := Walk(root, cfg)
	if err != nil {
		return nil, err
	}
	var files []string
	for path, err := range seq {
		if err != nil {
			continue
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// errOrSkip stops the walk once the consumer has stopped iterating.
func errOrSkip(more bool) error {
	if !more {
		return filepath.SkipAll
	}
	return nil
}

func validatePatterns(cfg ScanConfig) error {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	for _, pattern := range cfg.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	return nil
}

func selected(relPath string, cfg ScanConfig) bool {
	for _, pattern := range cfg.Exclude {
		if m, _ := doublestar.Match(pattern, relPath); m {
			return false
		}
	}
	if len(cfg.Include) == 0 {
		return true
	}
	for _, pattern := range cfg.Include {
		if m, _ := doublestar.Match(pattern, relPath); m {
			return true
		}
	}
	return false
}
